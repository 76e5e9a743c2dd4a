package commands

import (
	"context"
	"flag"
	"fmt"
)

// VersionCmd is the version entry in the main() command list
var VersionCmd = Version{}

// Version prints the build version of crypto-sheets.
type Version struct {
}

// Returns 'version'
func (v *Version) Name() string {
	return "version"
}

// Description is the one line summary shown in the command list
func (v *Version) Description() string {
	return "Prints the crypto-sheets build version"
}

// Usage is empty: 'version' takes no options
func (v *Version) Usage() string {
	return ""
}

// Help explains the version format
func (v *Version) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s version\n", APP)
	fmt.Println()
	fmt.Println("  Prints the version set at build time, e.g. v0.1.2. Development builds print v0.1.x")
	fmt.Println()
}

func (v *Version) FlagSet() *flag.FlagSet {
	return flag.NewFlagSet("version", flag.ExitOnError)
}

// Execute writes VERSION to stdout
func (v *Version) Execute(context.Context, *Options) error {
	_, err := fmt.Println(VERSION)

	return err
}
