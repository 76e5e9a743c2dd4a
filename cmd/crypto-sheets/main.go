package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/cryptowatch/crypto-sheets/commands"
	"github.com/cryptowatch/crypto-sheets/log"
)

var cli = []commands.Command{
	&commands.VersionCmd,
	&commands.ServeCmd,
	&commands.GetCmd,
	&commands.CheckCredentialsCmd,
}

var options = commands.Options{
	Debug: false,
}

var help = commands.NewHelp(cli)

func main() {
	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.Parse()

	cmd, err := commands.Parse(cli, help, flag.Args())
	if err != nil {
		fmt.Printf("\nError parsing command line: %v\n\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if cmd == nil {
		help.Execute(ctx, &options)
		os.Exit(1)
	}

	if err = cmd.Execute(ctx, &options); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}
