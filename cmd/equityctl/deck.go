package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/xtding233/equity-backend/internal/cardgroup"
	"github.com/xtding233/equity-backend/internal/rng"
	"github.com/xtding233/equity-backend/internal/sliceutil"
)

func runDeck(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("deck", flag.ContinueOnError)
	fs.SetOutput(out)
	decks := fs.Int("decks", 1, "number of 52-card decks")
	seed := fs.Uint64("seed", 0, "shuffle seed; 0 picks a random one")
	dead := fs.String("dead", "", "comma-separated cards to remove, e.g. As,Kd")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *decks < 1 {
		return fmt.Errorf("-decks must be at least 1")
	}

	group, err := cardgroup.Parse(*dead)
	if err != nil {
		return fmt.Errorf("-dead: %w", err)
	}

	if *seed == 0 {
		if *seed, err = rng.NewSeed(); err != nil {
			return err
		}
	}

	cards := cardgroup.Remaining(*decks, group.Tokens()...)
	rng.Shuffle(cards, rng.NewSeeded(*seed))
	distinct := sliceutil.DedupBy(cards, func(a, b string) bool { return a == b })

	fmt.Fprintln(out, pterm.Info.Sprintf("seed %d: %d cards, %d distinct", *seed, len(cards), len(distinct)))
	for i := 0; i < len(cards); i += 13 {
		end := min(i+13, len(cards))
		fmt.Fprintln(out, strings.Join(cards[i:end], " "))
	}
	return nil
}
