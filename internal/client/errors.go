package client

import "fmt"

// ErrorKind identifies the single cause of a failed submission. Kinds
// are never combined and never coerced into one another; KindOther is
// reserved for genuinely unanticipated states.
type ErrorKind int

const (
	// KindHTTP is a non-2xx response carrying the status text.
	KindHTTP ErrorKind = iota
	// KindRequestTooLarge is an HTTP 413 from the backend.
	KindRequestTooLarge
	// KindTransport is a connection-level failure before any response.
	KindTransport
	// KindParse is a response body that does not decode.
	KindParse
	// KindEmptyResponse is a 2xx response with an empty body.
	KindEmptyResponse
	// KindRequestKeyCount is a /send response with zero or more than
	// one request key.
	KindRequestKeyCount
	// KindResultFailure is a server-reported structured failure.
	KindResultFailure
	// KindResultFailureText is a server-reported bare-string failure.
	KindResultFailureText
	// KindOther is an internal invariant violation.
	KindOther
)

// BackendError is the terminal outcome of a failed request. The core
// never retries it; the caller decides what to do.
type BackendError struct {
	Kind    ErrorKind
	Message string
	Detail  string
	Err     error // underlying cause, when one exists
}

func (e *BackendError) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	default:
		return e.Message
	}
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// UserMessage renders the error for display. Every kind maps to a
// distinct, non-empty description.
func (e *BackendError) UserMessage() string {
	return "ERROR: " + e.Error()
}

func httpError(statusText string) *BackendError {
	return &BackendError{Kind: KindHTTP, Message: "backend returned " + statusText}
}

func requestTooLargeError() *BackendError {
	return &BackendError{Kind: KindRequestTooLarge, Message: "request too large for backend"}
}

func transportError(err error) *BackendError {
	return &BackendError{Kind: KindTransport, Message: "connection to backend failed", Err: err}
}

func parseError(err error) *BackendError {
	return &BackendError{Kind: KindParse, Message: "could not parse backend response", Err: err}
}

func emptyResponseError() *BackendError {
	return &BackendError{Kind: KindEmptyResponse, Message: "backend returned an empty response"}
}

func requestKeyCountError(n int) *BackendError {
	return &BackendError{
		Kind:    KindRequestKeyCount,
		Message: fmt.Sprintf("expected exactly one request key, got %d", n),
	}
}

func resultFailureError(message, detail string) *BackendError {
	return &BackendError{Kind: KindResultFailure, Message: message, Detail: detail}
}

func resultFailureTextError(text string) *BackendError {
	return &BackendError{Kind: KindResultFailureText, Message: text}
}

func otherError(message string) *BackendError {
	return &BackendError{Kind: KindOther, Message: message}
}
