package fail

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind enumerates every failure the service is allowed to surface.
// All fallible operations return exactly one of these; raw errors are
// converted at their origin and never travel further.
type Kind int

const (
	KindDatabase Kind = iota
	KindInvalidJSON
	KindLoginFailed
	KindRegistrationFailed
	KindNotAuthorized
	KindInvalidToken
	KindExpiredToken
	KindMissingEnvVar
	KindEmailSendFailed
	KindEmailNotFound
	KindInvalidEmail
	KindInvalidPassword
	KindInternal
)

// GenericMessage is what 500-class errors say to clients. The true
// diagnostic is only written to the log.
const GenericMessage = "Something went wrong"

// Error is the single error type crossing package boundaries.
type Error struct {
	Kind    Kind
	Message string
	// Subject carries the token subject for KindExpiredToken so the
	// resend-verification flow can recover it.
	Subject string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Database wraps a storage failure.
func Database(err error) error {
	return &Error{Kind: KindDatabase, Message: "database error", Err: err}
}

// InvalidJSON wraps a request-body decoding failure.
func InvalidJSON(err error) error {
	return &Error{Kind: KindInvalidJSON, Message: "invalid json body", Err: err}
}

// LoginFailed deliberately carries the same message for a missing
// account and a wrong password.
func LoginFailed() error {
	return &Error{Kind: KindLoginFailed, Message: "Login failed: email or password is wrong"}
}

// RegistrationFailed reports a registration that could not complete.
func RegistrationFailed() error {
	return &Error{Kind: KindRegistrationFailed, Message: "Registration failed."}
}

// NotAuthorized rejects a request with no usable session.
func NotAuthorized() error {
	return &Error{Kind: KindNotAuthorized, Message: "Not authorized. Please login"}
}

// InvalidToken rejects a token that is malformed, mis-signed, or
// declares the wrong algorithm.
func InvalidToken() error {
	return &Error{Kind: KindInvalidToken, Message: "Invalid token."}
}

// ExpiredToken keeps the subject so callers can issue a replacement.
func ExpiredToken(subject string) error {
	return &Error{Kind: KindExpiredToken, Message: "Expired token.", Subject: subject}
}

// MissingEnvVar names the configuration value absent at startup.
func MissingEnvVar(name string) error {
	return &Error{Kind: KindMissingEnvVar, Message: fmt.Sprintf("Missing environment variable: %s", name)}
}

// EmailSendFailed hides the mail transport error from clients.
func EmailSendFailed(err error) error {
	return &Error{Kind: KindEmailSendFailed, Message: "Email send failed.", Err: err}
}

// EmailNotFound reports a lookup miss on an email address.
func EmailNotFound() error {
	return &Error{Kind: KindEmailNotFound, Message: "Email not found"}
}

// InvalidEmail rejects a syntactically bad address.
func InvalidEmail() error {
	return &Error{Kind: KindInvalidEmail, Message: "Invalid email."}
}

// InvalidPassword carries the policy violation so the client can act on it.
func InvalidPassword(reason string) error {
	return &Error{Kind: KindInvalidPassword, Message: "Invalid Password: " + reason}
}

// Internal is the catch-all for unexpected failures. The wrapped error
// is for logs only.
func Internal(err error) error {
	return &Error{Kind: KindInternal, Message: GenericMessage, Err: err}
}

// As extracts an *Error from an error chain.
func As(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	if fe, ok := As(err); ok {
		return fe.Kind == kind
	}
	return false
}

// HTTPStatus maps every kind to exactly one status class: 401 for
// identity failures, 400 for client mistakes, 500 for anything
// infrastructure-shaped.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindLoginFailed, KindNotAuthorized:
		return http.StatusUnauthorized
	case KindInvalidJSON, KindRegistrationFailed, KindInvalidToken,
		KindInvalidEmail, KindInvalidPassword, KindExpiredToken:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage returns the text safe to put in a response body. Any
// 500-class kind is replaced by the generic message.
func ClientMessage(err error) string {
	fe, ok := As(err)
	if !ok {
		return GenericMessage
	}
	if HTTPStatus(fe.Kind) >= http.StatusInternalServerError {
		return GenericMessage
	}
	return fe.Message
}

// Coerce guarantees the returned error is an *Error, wrapping anything
// foreign as Internal.
func Coerce(err error) *Error {
	if err == nil {
		return nil
	}
	if fe, ok := As(err); ok {
		return fe
	}
	return &Error{Kind: KindInternal, Message: GenericMessage, Err: err}
}
