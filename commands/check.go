package commands

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/cryptowatch/crypto-sheets/credentials"
	"github.com/cryptowatch/crypto-sheets/google"
)

var CheckCredentialsCmd = CheckCredentials{
	command: command{
		workdir: DEFAULT_WORKDIR,
		env:     "",
		debug:   false,
	},

	authorise: false,
}

// CheckCredentials reports which credential source would be used and what the private key looks
// like, without printing the key.
type CheckCredentials struct {
	command
	authorise bool
}

type report struct {
	Source      string                  `json:"source"`
	Credentials credentials.Diagnostics `json:"credentials"`
	Authorised  *bool                   `json:"authorised,omitempty"`
}

func (cmd *CheckCredentials) Name() string {
	return "check-credentials"
}

func (cmd *CheckCredentials) Description() string {
	return "Checks the Google service account configuration"
}

func (cmd *CheckCredentials) Usage() string {
	return "[--authorise]"
}

func (cmd *CheckCredentials) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] check-credentials [options]\n", APP)
	fmt.Println()
	fmt.Printf("  Resolves the service account from %v, %v or\n", credentials.KEY_FILE, credentials.BASE64_VAR)
	fmt.Printf("  %v + %v and prints the source and key format\n", credentials.EMAIL_VAR, credentials.KEY_VAR)
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    crypto-sheets check-credentials --authorise`)
	fmt.Println()
}

func (cmd *CheckCredentials) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("check-credentials")

	flagset.BoolVar(&cmd.authorise, "authorise", cmd.authorise, "Also requests an access token with the service account")

	return flagset
}

func (cmd *CheckCredentials) Execute(ctx context.Context, options *Options) error {
	cfg, err := cmd.config(options)
	if err != nil {
		return err
	}

	source, sa, err := credentials.DefaultResolver.Source(credentials.OSEnvironment{}, os.DirFS(cmd.keys()))
	if err != nil {
		var e *credentials.Error
		if errors.As(err, &e) {
			fmt.Fprintf(cmd.out(), "  %v: %v\n", e.Kind, e.Message)
			if e.Hint != "" {
				fmt.Fprintf(cmd.out(), "  %v\n", e.Hint)
			}
			for _, v := range e.Required {
				fmt.Fprintf(cmd.out(), "    %v\n", v)
			}
		}

		return err
	}

	r := report{
		Source:      source,
		Credentials: sa.Redacted(),
	}

	var authErr error
	if cmd.authorise {
		ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()

		ok := true
		if authErr = google.Authorise(google.TokenSource(ctx, sa, cfg.TokenURL, google.SHEETS)); authErr != nil {
			ok = false
		}

		r.Authorised = &ok
	}

	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}

	if err := cmd.write("", append(b, '\n')); err != nil {
		return err
	}

	if authErr != nil {
		return fmt.Errorf("%v", google.Explain(authErr))
	}

	return nil
}
