package clock

import (
	"testing"
	"time"
)

func TestRealClock_Now_WhenCalled_ThenReturnsCurrentUTCTime(t *testing.T) {
	// Arrange
	realClock := RealClock{}
	beforeCall := time.Now()

	// Act
	result := realClock.Now()

	// Assert
	afterCall := time.Now()
	if result.Before(beforeCall) || result.After(afterCall) {
		t.Errorf("expected time between %v and %v, got %v", beforeCall, afterCall, result)
	}
	if result.Location() != time.UTC {
		t.Errorf("expected UTC location, got %v", result.Location())
	}
}

func TestFixedClock_Now_WhenCalledTwice_ThenReturnsSameTime(t *testing.T) {
	// Arrange
	fixedTime := time.Date(2025, 11, 6, 10, 30, 0, 0, time.UTC)
	fixedClock := NewFixed(fixedTime)

	// Act
	result1 := fixedClock.Now()
	result2 := fixedClock.Now()

	// Assert
	if !result1.Equal(fixedTime) || !result2.Equal(fixedTime) {
		t.Errorf("expected %v twice, got %v and %v", fixedTime, result1, result2)
	}
}

func TestFunc_Now_WhenCalled_ThenDelegatesToFunction(t *testing.T) {
	// Arrange
	calls := 0
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := Func(func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	})

	// Act
	first := c.Now()
	second := c.Now()

	// Assert
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
	if second.Sub(first) != time.Second {
		t.Errorf("expected 1s between calls, got %v", second.Sub(first))
	}
}

func TestSince_WhenFixedClock_ThenReturnsDifference(t *testing.T) {
	// Arrange
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewFixed(start.Add(1500 * time.Millisecond))

	// Act
	elapsed := Since(c, start)

	// Assert
	if elapsed != 1500*time.Millisecond {
		t.Errorf("expected 1.5s, got %v", elapsed)
	}
}
