// Package credentials resolves the Google service account used to read the price and alert
// worksheets.
//
// Credentials are looked up, in order, in a local service-account-key.json file, a base64
// encoded JSON blob and a pair of plain environment variables. The first source that yields a
// candidate wins and the candidate is validated before it is returned, so a ServiceAccount is
// either complete or not returned at all.
package credentials

import (
	"fmt"
	"io/fs"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"

	"github.com/cryptowatch/crypto-sheets/log"
)

const (
	BASE64_VAR = "GOOGLE_SERVICE_ACCOUNT_BASE64"
	EMAIL_VAR  = "GOOGLE_SERVICE_ACCOUNT_EMAIL"
	KEY_VAR    = "GOOGLE_PRIVATE_KEY"
	KEY_FILE   = "service-account-key.json"
)

// ServiceAccount is the identity used to sign the JWT for the Sheets API.
type ServiceAccount struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// Resolver holds the names of the credential sources. The zero value is not useful, use
// DefaultResolver or set every field.
type Resolver struct {
	Base64Var string
	EmailVar  string
	KeyVar    string
	File      string
}

var DefaultResolver = Resolver{
	Base64Var: BASE64_VAR,
	EmailVar:  EMAIL_VAR,
	KeyVar:    KEY_VAR,
	File:      KEY_FILE,
}

// Resolve is DefaultResolver.Resolve.
func Resolve(env Environment, fsys fs.FS) (*ServiceAccount, error) {
	return DefaultResolver.Resolve(env, fsys)
}

// Resolve returns the service account from the first source that has one. fsys may be nil, in
// which case the local file is not consulted.
func (r Resolver) Resolve(env Environment, fsys fs.FS) (*ServiceAccount, error) {
	_, sa, err := r.Source(env, fsys)

	return sa, err
}

// Source is Resolve that also returns the name of the source used: "file", "base64" or "env".
func (r Resolver) Source(env Environment, fsys fs.FS) (string, *ServiceAccount, error) {
	if env == nil {
		env = MapEnvironment{}
	}

	for _, s := range r.sources() {
		candidate, ok, err := s.resolve(env, fsys)
		if err != nil {
			return s.name, nil, err
		} else if !ok {
			continue
		}

		if err := candidate.validate(); err != nil {
			return s.name, nil, err
		}

		log.Debugf("credentials: using %v source (%v)", s.name, candidate.Redacted())

		return s.name, candidate, nil
	}

	return "", nil, missing(r)
}

func (sa *ServiceAccount) validate() error {
	switch {
	case strings.TrimSpace(sa.ClientEmail) == "":
		return invalid("missing client_email")

	case strings.TrimSpace(sa.PrivateKey) == "":
		return invalid("missing private_key")

	case !strings.Contains(sa.PrivateKey, PEM_HEADER) || !strings.Contains(sa.PrivateKey, PEM_FOOTER):
		return invalid("private_key is not a PEM encoded PRIVATE KEY")
	}

	return nil
}

// JWTConfig returns the two-legged OAuth2 configuration for the service account. An empty
// tokenURL selects Google's token endpoint.
func (sa *ServiceAccount) JWTConfig(tokenURL string, scopes ...string) *jwt.Config {
	if tokenURL == "" {
		tokenURL = google.JWTTokenURL
	}

	return &jwt.Config{
		Email:      sa.ClientEmail,
		PrivateKey: []byte(sa.PrivateKey),
		Scopes:     scopes,
		TokenURL:   tokenURL,
	}
}

// Redacted summarises the key format without exposing the key.
func (sa *ServiceAccount) Redacted() Diagnostics {
	return diagnose(sa.ClientEmail, sa.PrivateKey)
}

func (sa ServiceAccount) String() string {
	return fmt.Sprintf("%v (private key redacted)", sa.ClientEmail)
}

func (sa ServiceAccount) GoString() string {
	return fmt.Sprintf("credentials.ServiceAccount{ClientEmail:%q, PrivateKey:<redacted>}", sa.ClientEmail)
}

// Diagnostics are the only facts about a private key that are ever logged.
type Diagnostics struct {
	ClientEmail     string `json:"client_email"`
	Length          int    `json:"length"`
	StartsWithBegin bool   `json:"starts_with_begin"`
	ContainsEnd     bool   `json:"contains_end"`
	LiteralNewlines bool   `json:"literal_newlines"`
	LineBreaks      bool   `json:"line_breaks"`
}

func diagnose(email, key string) Diagnostics {
	return Diagnostics{
		ClientEmail:     email,
		Length:          len(key),
		StartsWithBegin: strings.HasPrefix(key, "-----BEGIN"),
		ContainsEnd:     strings.Contains(key, "-----END"),
		LiteralNewlines: strings.Contains(key, `\n`),
		LineBreaks:      strings.Contains(key, "\n"),
	}
}

func (d Diagnostics) String() string {
	return fmt.Sprintf("email:%v length:%v begin:%v end:%v literal-\\n:%v line-breaks:%v",
		d.ClientEmail, d.Length, d.StartsWithBegin, d.ContainsEnd, d.LiteralNewlines, d.LineBreaks)
}
