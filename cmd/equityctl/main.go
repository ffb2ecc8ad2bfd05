// Command equityctl checks equity request files and deals test decks.
//
//	equityctl check [-preset name] [-dir ./config] <file.yaml|file.json>
//	equityctl deck [-decks n] [-seed s] [-dead As,Kd]
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
)

var errUsage = errors.New("usage: equityctl <check|deck> [flags]")

func main() {
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdout); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "check":
		return runCheck(args[1:], out)
	case "deck":
		return runDeck(args[1:], out)
	default:
		return fmt.Errorf("unknown command %q; %w", args[0], errUsage)
	}
}
