package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/netutil"

	"github.com/cryptowatch/crypto-sheets/config"
	"github.com/cryptowatch/crypto-sheets/handlers"
)

const SHUTDOWN_TIMEOUT = 10 * time.Second

var ServeCmd = Serve{
	command: command{
		workdir: DEFAULT_WORKDIR,
		env:     "",
		debug:   false,
	},

	bind:           "",
	maxConnections: 0,
}

type Serve struct {
	command
	bind           string
	maxConnections int
}

func (cmd *Serve) Name() string {
	return "serve"
}

func (cmd *Serve) Description() string {
	return "Serves the crypto price and alert endpoints"
}

func (cmd *Serve) Usage() string {
	return "[--bind <address>] [--max-connections <N>]"
}

func (cmd *Serve) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] serve [options]\n", APP)
	fmt.Println()
	fmt.Println("  Serves /api/crypto-data, /api/crypto-data-switch and /app/crypto-data until interrupted")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    crypto-sheets serve --bind 127.0.0.1:8080`)
	fmt.Println(`    crypto-sheets --debug serve --workdir /etc/crypto-sheets --max-connections 16`)
	fmt.Println()
}

func (cmd *Serve) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("serve")

	flagset.StringVar(&cmd.bind, "bind", cmd.bind, "Address for the HTTP server. Defaults to BIND_ADDRESS")
	flagset.IntVar(&cmd.maxConnections, "max-connections", cmd.maxConnections, "Maximum concurrent connections. Defaults to MAX_CONNECTIONS")

	return flagset
}

func (cmd *Serve) Execute(ctx context.Context, options *Options) error {
	cfg, err := cmd.config(options, config.WithBind(cmd.bind))
	if err != nil {
		return err
	}

	if cmd.maxConnections > 0 {
		cfg.MaxConnections = cmd.maxConnections
	}

	listener, err := net.Listen("tcp", cfg.Bind)
	if err != nil {
		return err
	}

	h := handlers.New(cfg, handlers.WithFS(os.DirFS(cmd.keys())))

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return serve(ctx, netutil.LimitListener(listener, cfg.MaxConnections), h.Router())
}

// serve runs the HTTP server on listener until ctx is cancelled and then waits for in-flight
// requests to finish.
func serve(ctx context.Context, listener net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)

	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	infof("listening on %v", listener.Addr())

	select {
	case <-ctx.Done():
		infof("shutting down")

	case err := <-errs:
		return err
	}

	shutdown, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer cancel()

	if err := srv.Shutdown(shutdown); err != nil {
		warnf("%v", err)
		return err
	}

	return nil
}
