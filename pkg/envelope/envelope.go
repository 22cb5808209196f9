// Package envelope defines the uniform response shape every operation returns:
//
//	{"ok": true,  "data": <payload>, "error": null}
//	{"ok": false, "data": null,      "error": {"code": "...", "message": "..."}}
//
// Both data and error are always present on the wire; the absent one is null.
package envelope

// Error codes carried in a failure envelope.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeItemUnavailable   = "ITEM_UNAVAILABLE"
	CodeLoanNotReturnable = "LOAN_NOT_RETURNABLE"
	CodeInternal          = "INTERNAL_ERROR"
)

// Envelope is the uniform operation result.
type Envelope struct {
	OK    bool   `json:"ok"`
	Data  any    `json:"data"`
	Error *Error `json:"error"`
} // @name Envelope

// Error is the structured failure carried by a non-ok Envelope.
type Error struct {
	Code    string `json:"code"    example:"ITEM_UNAVAILABLE"`
	Message string `json:"message" example:"item is already on loan"`
} // @name EnvelopeError

// Success wraps data in an ok Envelope.
func Success(data any) Envelope {
	return Envelope{OK: true, Data: data}
}

// Failure builds a non-ok Envelope with the given code and message.
func Failure(code, message string) Envelope {
	return Envelope{Error: &Error{Code: code, Message: message}}
}
