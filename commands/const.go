package commands

const (
	DEFAULT_WORKDIR = "."
)

// VERSION is set at build time with -ldflags "-X github.com/cryptowatch/crypto-sheets/commands.VERSION=..."
var VERSION = "v0.1.x"
