// Package cardgroup parses delimiter-separated card lists such as "As,Kd,7c".
package cardgroup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paulhankin/poker"
)

// Delimiter separates card tokens in a card list.
const Delimiter = ","

// Rank and suit alphabets of a canonical token, e.g. "Th" or "2c".
const (
	Ranks = "23456789TJQKA"
	Suits = "cdhs"
)

var ErrBadToken = errors.New("invalid card token")

// ParseError reports the first malformed token of a card list.
type ParseError struct {
	Token string
	Index int // position of Token in the list
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("card %d %q: want rank in %s followed by suit in %s", e.Index, e.Token, Ranks, Suits)
}

func (e *ParseError) Unwrap() error { return ErrBadToken }

// Group is an ordered set of parsed cards.
type Group struct {
	tokens []string
	cards  []poker.Card
}

func (g Group) Len() int { return len(g.tokens) }

// Tokens returns the card tokens exactly as they appeared in the list.
func (g Group) Tokens() []string { return append([]string(nil), g.tokens...) }

// Cards returns the parsed cards, in list order.
func (g Group) Cards() []poker.Card { return append([]poker.Card(nil), g.cards...) }

func (g Group) String() string { return strings.Join(g.tokens, Delimiter) }

// Split returns the raw tokens of a card list without trimming or validation.
// The empty list has no tokens.
func Split(list string) []string {
	if list == "" {
		return nil
	}
	return strings.Split(list, Delimiter)
}

// Parse parses a card list. The empty string is the empty group.
// Tokens are matched literally: no whitespace trimming and no case folding.
func Parse(list string) (Group, error) {
	tokens := Split(list)
	g := Group{
		tokens: make([]string, 0, len(tokens)),
		cards:  make([]poker.Card, 0, len(tokens)),
	}
	for i, tok := range tokens {
		c, err := parseToken(tok)
		if err != nil {
			return Group{}, &ParseError{Token: tok, Index: i}
		}
		g.tokens = append(g.tokens, tok)
		g.cards = append(g.cards, c)
	}
	return g, nil
}

func parseToken(tok string) (poker.Card, error) {
	var zero poker.Card
	if len(tok) != 2 {
		return zero, ErrBadToken
	}
	r := strings.IndexByte(Ranks, tok[0])
	s := strings.IndexByte(Suits, tok[1])
	if r < 0 || s < 0 {
		return zero, ErrBadToken
	}
	// poker ranks run ace=1 .. king=13
	rank := r + 2
	if rank == 14 {
		rank = 1
	}
	return poker.MakeCard(poker.Suit(s), poker.Rank(rank))
}

// Parser is the default card-list collaborator for the equity validator.
type Parser struct{}

// CountCards parses list and returns how many cards it holds.
func (Parser) CountCards(list string) (int, error) {
	g, err := Parse(list)
	if err != nil {
		return 0, err
	}
	return g.Len(), nil
}
