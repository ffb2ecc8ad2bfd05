package equity

import (
	"fmt"
	"strings"
)

const (
	DefaultBoard      = ""
	DefaultBoardSize  = 5
	DefaultHandSize   = 2
	DefaultNumDecks   = 1
	DefaultIterations = 100000
)

// Defaults are the values substituted for absent fields. The validator uses
// BoardSize and HandSize for its cardinality checks, so the same Defaults must
// be given to both the Validator and the Normalizer.
type Defaults struct {
	Board      string `yaml:"board"`
	BoardSize  int    `yaml:"boardSize"`
	HandSize   int    `yaml:"handSize"`
	NumDecks   int    `yaml:"numDecks"`
	Iterations int    `yaml:"iterations"`
}

// SystemDefaults returns the built-in defaults.
func SystemDefaults() Defaults {
	return Defaults{
		Board:      DefaultBoard,
		BoardSize:  DefaultBoardSize,
		HandSize:   DefaultHandSize,
		NumDecks:   DefaultNumDecks,
		Iterations: DefaultIterations,
	}
}

// Validate checks that d could itself have been supplied by a caller.
// Unlike request validation it reports every problem at once.
func (d Defaults) Validate() error {
	var errs []string

	if d.BoardSize < 0 {
		errs = append(errs, "boardSize must be >= 0")
	}
	if d.HandSize < 0 {
		errs = append(errs, "handSize must be >= 0")
	}
	if d.NumDecks < 1 {
		errs = append(errs, "numDecks must be >= 1")
	}
	if d.Iterations < 1 {
		errs = append(errs, "iterations must be >= 1")
	}
	if d.Board != "" {
		errs = append(errs, "board must be empty; a default board would collide with caller cards")
	}

	if len(errs) > 0 {
		return fmt.Errorf("defaults validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
