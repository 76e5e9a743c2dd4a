package google

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/cryptowatch/crypto-sheets/credentials"
)

const SHEETS = "https://www.googleapis.com/auth/spreadsheets"

// AuthError is returned when the service account is rejected by the token endpoint or its
// private key cannot be used to sign the JWT.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed (%v)", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// TokenSource returns a cached JWT token source for the service account. An empty tokenURL uses
// Google's token endpoint.
func TokenSource(ctx context.Context, sa *credentials.ServiceAccount, tokenURL string, scopes ...string) oauth2.TokenSource {
	if len(scopes) == 0 {
		scopes = []string{SHEETS}
	}

	return sa.JWTConfig(tokenURL, scopes...).TokenSource(ctx)
}

// Authorise fetches a token up front so that a bad key or a revoked account is reported as an
// authentication failure rather than as a failed sheet request.
func Authorise(ts oauth2.TokenSource) error {
	if _, err := ts.Token(); err != nil {
		return &AuthError{Err: err}
	}

	return nil
}

// Context attaches the HTTP client used for token requests and as the transport for
// authenticated clients. A nil client leaves ctx unchanged.
func Context(ctx context.Context, client *http.Client) context.Context {
	if client != nil {
		return context.WithValue(ctx, oauth2.HTTPClient, client)
	}

	return ctx
}

// Client returns an HTTP client that authenticates with ts, on top of the client attached to
// ctx with Context.
func Client(ctx context.Context, ts oauth2.TokenSource) *http.Client {
	return oauth2.NewClient(ctx, ts)
}
