package webhook

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"syscall"
	"testing"

	"github.com/dhima/job-alert-trigger/internal/models"
	"github.com/stretchr/testify/assert"
)

func wrapURL(err error) error {
	return &url.Error{Op: "Post", URL: "http://example.com/hook", Err: err}
}

func TestClassify_WhenResponseReceived_ThenStatusWinsOverError(t *testing.T) {
	cases := []struct {
		status int
		want   models.StatusClass
	}{
		{200, models.StatusSuccess},
		{404, models.StatusWebhookNotFound},
		{201, models.StatusUnexpectedStatus},
		{500, models.StatusUnexpectedStatus},
		{302, models.StatusUnexpectedStatus},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprint(tc.status), func(t *testing.T) {
			got := classify(outcome{responded: true, status: tc.status, err: context.DeadlineExceeded})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassifyError_WhenTransportErrorsVary_ThenMapsToTaxonomy(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want models.StatusClass
	}{
		{"deadline exceeded", wrapURL(context.DeadlineExceeded), models.StatusTimeout},
		{"dial timeout", wrapURL(&net.OpError{Op: "dial", Net: "tcp", Err: timeoutErr{}}), models.StatusTimeout},
		{"connection refused", wrapURL(&net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}), models.StatusConnectionError},
		{"dns failure", wrapURL(&net.OpError{Op: "dial", Net: "tcp", Err: &net.DNSError{Err: "no such host", Name: "x.invalid", IsNotFound: true}}), models.StatusConnectionError},
		{"bare dns failure", &net.DNSError{Err: "no such host", Name: "x.invalid"}, models.StatusConnectionError},
		{"reset by peer", wrapURL(syscall.ECONNRESET), models.StatusConnectionError},
		{"server hung up", wrapURL(io.EOF), models.StatusConnectionError},
		{"unknown authority", wrapURL(x509.UnknownAuthorityError{}), models.StatusConnectionError},
		{"hostname mismatch", wrapURL(x509.HostnameError{Host: "example.com"}), models.StatusConnectionError},
		{"unsupported scheme", wrapURL(errors.New(`unsupported protocol scheme ""`)), models.StatusSystemError},
		{"canceled by caller", wrapURL(context.Canceled), models.StatusSystemError},
		{"nil error", nil, models.StatusSystemError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifyError(tc.err))
		})
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }
