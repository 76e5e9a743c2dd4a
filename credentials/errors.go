package credentials

import (
	"errors"
	"fmt"
)

type Kind string

const (
	MissingCredentials Kind = "MissingCredentials"
	MalformedEncoding  Kind = "MalformedEncoding"
	InvalidCredential  Kind = "InvalidCredential"
)

// Error is returned for every resolution failure. None of them are worth retrying.
type Error struct {
	Kind     Kind
	Message  string
	Hint     string
	Required []string
	Err      error
}

var (
	ErrMissingCredentials = &Error{Kind: MissingCredentials}
	ErrMalformedEncoding  = &Error{Kind: MalformedEncoding}
	ErrInvalidCredential  = &Error{Kind: InvalidCredential}
)

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v (%v)", e.Kind, e.Message, e.Err)
	}

	return fmt.Sprintf("%v: %v", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind so that errors.Is(err, ErrMissingCredentials) works for any missing
// credentials error.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Kind == e.Kind
	}

	return false
}

// KindOf returns the Kind of a resolution error, or "" for anything else.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return ""
}

func missing(r Resolver) error {
	return &Error{
		Kind:    MissingCredentials,
		Message: "no service account credentials found",
		Hint:    fmt.Sprintf("Provide either %v or individual env vars", r.Base64Var),
		Required: []string{
			fmt.Sprintf("%v (recommended)", r.Base64Var),
			fmt.Sprintf("OR: %v + %v", r.EmailVar, r.KeyVar),
		},
	}
}

func malformed(msg string, err error) error {
	return &Error{
		Kind:    MalformedEncoding,
		Message: msg,
		Hint:    "The service account must be the JSON key file downloaded from the Google Cloud console, base64 encoded without modification",
		Err:     err,
	}
}

func invalid(msg string) error {
	return &Error{
		Kind:    InvalidCredential,
		Message: "invalid service account: " + msg,
		Hint:    "The service account must have a client_email and a PEM encoded private_key",
	}
}
