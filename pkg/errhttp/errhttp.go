// Package errhttp maps lending errors to HTTP status codes and failure envelopes.
// Add a case to StatusFor for each new envelope code.
package errhttp

import (
	"net/http"

	"github.com/ghuser/libitemsflow/pkg/envelope"
	"github.com/ghuser/libitemsflow/pkg/httpx"
	"github.com/ghuser/libitemsflow/pkg/telemetry"
	"github.com/ghuser/libitemsflow/services/lending/domain"
)

// WriteError classifies err with domain.ErrorCode and writes the matching
// failure envelope. Uses errors.Is() so wrapped sentinel errors are matched
// correctly. Unrecognized errors are INTERNAL_ERROR (500), reported to Sentry,
// and have their message masked when isProduction is set.
func WriteError(w http.ResponseWriter, r *http.Request, err error, isProduction bool) {
	code := domain.ErrorCode(err)
	status := StatusFor(code)
	if code == envelope.CodeInternal {
		telemetry.CaptureError(r.Context(), err)
	}
	httpx.Fail(w, status, code, httpx.SafeError(err, status, isProduction))
}

// StatusFor returns the HTTP status for an envelope code.
func StatusFor(code string) int {
	switch code {
	case envelope.CodeValidation:
		return http.StatusUnprocessableEntity // 422
	case envelope.CodeNotFound:
		return http.StatusNotFound // 404
	case envelope.CodeItemUnavailable, envelope.CodeLoanNotReturnable:
		return http.StatusConflict // 409
	default:
		return http.StatusInternalServerError // 500
	}
}
