package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func serve(header string) (seen string, w *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		seen = c.GetString(RequestIDKey)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return seen, w
}

func TestRequestID_WhenClientProvidesRequestID_ThenUsesProvidedID(t *testing.T) {
	// Act
	seen, w := serve("client-request-123")

	// Assert
	assert.Equal(t, "client-request-123", seen)
	assert.Equal(t, "client-request-123", w.Header().Get(RequestIDHeader))
}

func TestRequestID_WhenClientDoesNotProvideRequestID_ThenGeneratesUUID(t *testing.T) {
	// Act
	seen, w := serve("")

	// Assert
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
}

func TestRequestID_WhenMultipleRequests_ThenEachGetsDifferentID(t *testing.T) {
	// Act
	first, _ := serve("")
	second, _ := serve("")

	// Assert
	assert.NotEqual(t, first, second)
}

func TestRequestID_WhenProvidedIDUnacceptable_ThenReplaced(t *testing.T) {
	for name, header := range map[string]string{
		"too long":     strings.Repeat("a", maxRequestIDLength+1),
		"contains tab": "abc\tdef",
		"non ascii":    "id-é",
	} {
		t.Run(name, func(t *testing.T) {
			// Act
			seen, _ := serve(header)

			// Assert
			assert.NotEqual(t, header, seen)
			_, err := uuid.Parse(seen)
			assert.NoError(t, err)
		})
	}
}
