package metrics

import (
	"context"
	"errors"
	"net"
	"net/textproto"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	uuidPattern = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)
	// GitHub paths carry owner/repo names and numbers
	repoPathPattern = regexp.MustCompile(`/repos/[^/]+/[^/]+`)
	numberPattern   = regexp.MustCompile(`/[0-9]+(/|$)`)
)

// RecordExternalAPICall records one call to GitHub or the mail relay.
// statusCode is an HTTP status for GitHub and an SMTP reply code for mail; 0 means no reply.
func (m *Metrics) RecordExternalAPICall(endpoint, method string, statusCode int, duration time.Duration, err error) {
	m.safeExecute("RecordExternalAPICall", func() {
		endpoint = normalizeEndpoint(endpoint)
		status := strconv.Itoa(statusCode)

		m.ExternalAPIRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
		m.ExternalAPIRequestDuration.WithLabelValues(endpoint, status).Observe(duration.Seconds())

		if err != nil || statusCode >= 400 {
			m.ExternalAPIErrors.WithLabelValues(endpoint, errorClass(statusCode, err)).Inc()
		}
	})
}

// normalizeEndpoint collapses IDs and repository names so label cardinality stays bounded
// Example: https://api.github.com/repos/octo/app/pulls -> https://api.github.com/repos/{owner}/{repo}/pulls
func normalizeEndpoint(endpoint string) string {
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		endpoint = endpoint[:i]
	}
	endpoint = uuidPattern.ReplaceAllString(endpoint, "{id}")
	endpoint = repoPathPattern.ReplaceAllString(endpoint, "/repos/{owner}/{repo}")
	return numberPattern.ReplaceAllString(endpoint, "/{n}$1")
}

// errorClass buckets a failed call for the errors counter
func errorClass(statusCode int, err error) string {
	var smtpErr *textproto.Error
	if errors.As(err, &smtpErr) {
		statusCode = smtpErr.Code
	}

	switch {
	case statusCode == 401:
		return "unauthorized"
	case statusCode == 403:
		return "forbidden"
	case statusCode == 404:
		return "not_found"
	case statusCode == 429:
		return "rate_limited"
	case statusCode >= 400 && statusCode < 500:
		return "client_error"
	case statusCode >= 500:
		return "server_error"
	}

	if err == nil {
		return "unknown"
	}

	var netErr net.Error
	var dnsErr *net.DNSError
	var opErr *net.OpError
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.As(err, &dnsErr):
		return "dns_error"
	case errors.As(err, &opErr) && opErr.Op == "dial":
		return "connection_refused"
	case strings.Contains(err.Error(), "x509"), strings.Contains(err.Error(), "tls"):
		return "tls_error"
	}
	return "network_error"
}
