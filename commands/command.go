package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"google.golang.org/api/sheets/v4"

	"github.com/cryptowatch/crypto-sheets/config"
	"github.com/cryptowatch/crypto-sheets/credentials"
	"github.com/cryptowatch/crypto-sheets/google"
	"github.com/cryptowatch/crypto-sheets/log"
)

const APP = "crypto-sheets"

type Options struct {
	Debug bool
}

// Command is implemented by every CLI command.
type Command interface {
	Name() string
	Description() string
	Usage() string
	Help()
	FlagSet() *flag.FlagSet
	Execute(ctx context.Context, options *Options) error
}

// command holds the options common to the commands that read the spreadsheet.
type command struct {
	workdir string
	env     string
	debug   bool
	stdout  io.Writer
}

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.workdir, "workdir", c.workdir, "Directory searched for "+credentials.KEY_FILE)
	flagset.StringVar(&c.env, "env", c.env, "Optional .env file with the service settings")

	return flagset
}

// config loads the service configuration and sets up logging to match.
func (c *command) config(options *Options, opts ...config.Option) (*config.Config, error) {
	if c.env != "" {
		opts = append(opts, config.WithEnvFile(c.env))
	}

	opts = append(opts, config.WithDebug(options.Debug))

	cfg, err := config.NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	c.debug = cfg.Debug

	log.SetDebug(cfg.Debug)
	log.SetJSON(cfg.Production())

	return cfg, nil
}

func (c *command) keys() string {
	if c.workdir == "" {
		return "."
	}

	return c.workdir
}

// connect resolves the service account and returns an authenticated Sheets client.
func (c *command) connect(ctx context.Context, cfg *config.Config) (*sheets.Service, error) {
	sa, err := credentials.Resolve(credentials.OSEnvironment{}, os.DirFS(c.keys()))
	if err != nil {
		return nil, err
	}

	if c.debug {
		debugf("service account %v", sa.Redacted())
	}

	ts := google.TokenSource(ctx, sa, cfg.TokenURL, google.SHEETS)
	if err := google.Authorise(ts); err != nil {
		return nil, fmt.Errorf("%v", google.Explain(err))
	}

	return google.NewSheets(ctx, google.Client(ctx, ts), cfg.SheetsEndpoint)
}

func (c *command) out() io.Writer {
	if c.stdout == nil {
		return os.Stdout
	}

	return c.stdout
}

// write replaces file with b, via a temporary file in the same directory. An empty file name
// writes to stdout.
func (c *command) write(file string, b []byte) error {
	if file == "" {
		_, err := c.out().Write(b)
		return err
	}

	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".crypto-sheets-*")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(b); err != nil {
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), file)
}

func helpOptions(flagset *flag.FlagSet) {
	count := 0
	flagset.VisitAll(func(f *flag.Flag) {
		count++
	})

	if count > 0 {
		fmt.Println("  Options:")
		flagset.VisitAll(func(f *flag.Flag) {
			fmt.Printf("    --%-16s %s\n", f.Name, f.Usage)
		})
	}
}

func debugf(format string, args ...any) {
	log.Debugf(format, args...)
}

func infof(format string, args ...any) {
	log.Infof(format, args...)
}

func warnf(format string, args ...any) {
	log.Warnf(format, args...)
}
