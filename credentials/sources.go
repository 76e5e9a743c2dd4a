package credentials

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/cryptowatch/crypto-sheets/log"
)

// Environment is the subset of the process environment the resolver reads.
type Environment interface {
	Lookup(key string) (string, bool)
}

// OSEnvironment reads the process environment.
type OSEnvironment struct{}

func (OSEnvironment) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapEnvironment is a fixed environment, mostly for tests and for serverless runtimes that hand
// over their settings as a map.
type MapEnvironment map[string]string

func (m MapEnvironment) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

type source struct {
	name    string
	resolve func(env Environment, fsys fs.FS) (*ServiceAccount, bool, error)
}

func (r Resolver) sources() []source {
	return []source{
		{"file", r.fromFile},
		{"base64", r.fromBase64},
		{"env", r.fromVars},
	}
}

// fromFile uses the key file verbatim: JSON already encodes real line breaks. A key file that
// cannot be read or parsed is skipped in favour of the environment.
func (r Resolver) fromFile(_ Environment, fsys fs.FS) (*ServiceAccount, bool, error) {
	if fsys == nil || r.File == "" {
		return nil, false, nil
	}

	b, err := fs.ReadFile(fsys, r.File)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	} else if err != nil {
		log.Warnf("credentials: unable to read %v (%v)", r.File, err)
		return nil, false, nil
	}

	var sa ServiceAccount
	if err := json.Unmarshal(b, &sa); err != nil {
		log.Warnf("credentials: %v is not a valid JSON service account (%d bytes)", r.File, len(b))
		return nil, false, nil
	}

	return &sa, true, nil
}

func (r Resolver) fromBase64(env Environment, _ fs.FS) (*ServiceAccount, bool, error) {
	blob, ok := lookup(env, r.Base64Var)
	if !ok {
		return nil, false, nil
	}

	b, err := decode(blob)
	if err != nil {
		return nil, false, malformed(fmt.Sprintf("%v is not valid base64", r.Base64Var), err)
	}

	var sa ServiceAccount
	if err := json.Unmarshal(b, &sa); err != nil {
		return nil, false, malformed(fmt.Sprintf("%v does not decode to a JSON service account", r.Base64Var), err)
	}

	if strings.TrimSpace(sa.PrivateKey) != "" {
		sa.PrivateKey = NormaliseKey(sa.PrivateKey)
	}

	return &sa, true, nil
}

func (r Resolver) fromVars(env Environment, _ fs.FS) (*ServiceAccount, bool, error) {
	email, ok := lookup(env, r.EmailVar)
	if !ok {
		return nil, false, nil
	}

	key, ok := lookup(env, r.KeyVar)
	if !ok {
		return nil, false, nil
	}

	sa := ServiceAccount{
		ClientEmail: Unquote(email),
		PrivateKey:  Unquote(key),
	}

	// ... an empty key stays empty so that validation rejects it
	if strings.TrimSpace(sa.PrivateKey) != "" {
		sa.PrivateKey = NormaliseKey(sa.PrivateKey)
	}

	return &sa, true, nil
}

// decode accepts padded and unpadded standard base64. Embedded line breaks, as produced by
// base64(1), are ignored by the decoder.
func decode(blob string) ([]byte, error) {
	if b, err := base64.StdEncoding.DecodeString(blob); err == nil {
		return b, nil
	} else if b, err2 := base64.RawStdEncoding.DecodeString(blob); err2 == nil {
		return b, nil
	} else {
		return nil, err
	}
}

// lookup treats a variable set to blanks as absent.
func lookup(env Environment, key string) (string, bool) {
	if key == "" {
		return "", false
	}

	v, ok := env.Lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}

	return strings.TrimSpace(v), true
}
