package ticketing

import (
	"fmt"
	"net/http"
)

type Kind string

const (
	KindNotFound         Kind = "NOT_FOUND"
	KindUnauthorized     Kind = "UNAUTHORIZED"
	KindValidationFailed Kind = "VALIDATION_FAILED"
	KindOther            Kind = "UPSTREAM_ERROR"
)

// Error is a non-2xx answer from the ticketing backend.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

type operation int

const (
	opRead operation = iota
	opAddComment
	opUpload
)

// classify maps an upstream status to an Error. 422 is only meaningful for
// comment posts; elsewhere it is reported as Other.
func classify(op operation, ticketID string, status int, statusText string, body []byte) *Error {
	switch {
	case status == http.StatusNotFound:
		return &Error{Kind: KindNotFound, Status: status, Message: fmt.Sprintf("Ticket %s not found", ticketID)}
	case status == http.StatusUnauthorized:
		return &Error{Kind: KindUnauthorized, Status: status, Message: "Authentication failed"}
	case status == http.StatusUnprocessableEntity && op == opAddComment:
		return &Error{Kind: KindValidationFailed, Status: status, Message: fmt.Sprintf("Validation error: %s", string(body))}
	default:
		return &Error{Kind: KindOther, Status: status, Message: fmt.Sprintf("API error: %s", statusText)}
	}
}
