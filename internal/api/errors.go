package api

import (
	"context"
	"errors"
	"net/http"

	"activity-suggestion-bff/internal/upstream"
)

// upstreamErrorResponse maps a client failure to a status code and a message
// that is safe to return to callers.
func upstreamErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "activity service timed out"
	case errors.Is(err, upstream.ErrMalformedResponse):
		return http.StatusBadGateway, "activity service returned an invalid response"
	case errors.Is(err, upstream.ErrUpstreamUnavailable):
		return http.StatusBadGateway, "activity service unavailable"
	default:
		return http.StatusInternalServerError, "an unexpected error occurred"
	}
}
