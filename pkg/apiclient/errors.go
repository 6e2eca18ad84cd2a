package apiclient

import (
	"errors"
	"fmt"
)

var errMissingCode = errors.New("envelope has no code field")

// defaultAppErrorMessage is shown when a failing envelope carries no message.
const defaultAppErrorMessage = "Error"

// ApplicationError is returned when the envelope code is non-zero. Envelope is
// the raw envelope as received.
type ApplicationError struct {
	Code     int
	Message  string
	Envelope Envelope
}

func (e *ApplicationError) Error() string {
	if e.Message == "" {
		return defaultAppErrorMessage
	}
	return e.Message
}

// Unauthorized reports whether the code asks for re-authentication.
func (e *ApplicationError) Unauthorized() bool {
	return isReauthCode(e.Code)
}

// TransportError is a non-2xx HTTP response.
type TransportError struct {
	Status  int
	URL     string
	Message string
	Body    []byte
}

func (e *TransportError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("http response status %d", e.Status)
}

// NetworkError means the request left the client but no response arrived
// (connectivity, timeout, cancelled context).
type NetworkError struct {
	URL     string
	Message string
	Err     error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("%s: %v", e.Message, e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// RequestError means the request could not be built or was aborted before it
// was sent, including errors from the request interceptor.
type RequestError struct {
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Err == nil || e.Err.Error() == e.Message {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}
func (e *RequestError) Unwrap() error { return e.Err }

// DecodeError means a 2xx body was not a valid envelope, or its data did not
// fit the requested type.
type DecodeError struct {
	Status int
	Body   []byte
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response (status %d): %v", e.Status, e.Err)
}
func (e *DecodeError) Unwrap() error { return e.Err }

// constructionError marks failures raised before the request is sent
// (interceptor, payload placement) so they are not classified as network ones.
type constructionError struct {
	err error
}

func (e *constructionError) Error() string { return e.err.Error() }
func (e *constructionError) Unwrap() error { return e.err }
