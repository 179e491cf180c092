package webhook

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"net"
	"net/http"
	"syscall"

	"github.com/dhima/job-alert-trigger/internal/models"
)

// classify maps a raw outcome to a status class. Order matters: a received
// response always wins over error inspection.
func classify(out outcome) models.StatusClass {
	if out.responded {
		switch out.status {
		case http.StatusOK:
			return models.StatusSuccess
		case http.StatusNotFound:
			return models.StatusWebhookNotFound
		default:
			return models.StatusUnexpectedStatus
		}
	}
	return classifyError(out.err)
}

func classifyError(err error) models.StatusClass {
	switch {
	case err == nil:
		return models.StatusSystemError
	case isTimeout(err):
		return models.StatusTimeout
	case isTransportFailure(err):
		return models.StatusConnectionError
	default:
		return models.StatusSystemError
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isTransportFailure covers DNS, refused/reset connections, early EOF and TLS.
func isTransportFailure(err error) bool {
	var (
		opErr        *net.OpError
		dnsErr       *net.DNSError
		addrErr      *net.AddrError
		recordErr    tls.RecordHeaderError
		verifyErr    *tls.CertificateVerificationError
		authorityErr x509.UnknownAuthorityError
		hostnameErr  x509.HostnameError
		invalidErr   x509.CertificateInvalidError
	)
	switch {
	case errors.As(err, &opErr), errors.As(err, &dnsErr), errors.As(err, &addrErr):
		return true
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET):
		return true
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return true
	case errors.As(err, &recordErr), errors.As(err, &verifyErr),
		errors.As(err, &authorityErr), errors.As(err, &hostnameErr), errors.As(err, &invalidErr):
		return true
	}
	return false
}
