package equity

import (
	"fmt"

	"github.com/xtding233/equity-backend/internal/cardgroup"
)

// CardParser parses a card list and reports how many cards it holds.
type CardParser interface {
	CountCards(list string) (int, error)
}

// Validator checks raw requests. It is safe for concurrent use.
type Validator struct {
	parser   CardParser
	defaults Defaults
}

// NewValidator returns a Validator. A nil parser means cardgroup.Parser.
func NewValidator(parser CardParser, defaults Defaults) *Validator {
	if parser == nil {
		parser = cardgroup.Parser{}
	}
	return &Validator{parser: parser, defaults: defaults}
}

// Validate checks raw and returns it as a typed Request. It stops at the first
// failing rule and returns a *ValidationError for it. Rules run in this order,
// which decides which error a request with several problems gets:
//
//  1. numPlayers or hands present
//  2. returnHandStats, returnTieHandStats are booleans
//  3. numPlayers is an integer >= 1 and >= len(hands)
//  4. boardSize is an integer >= 0
//  5. numDecks is an integer >= 1
//  6. board is a card list of at most boardSize cards
//  7. iterations is an integer >= 1
//  8. handSize is an integer >= 0
//  9. hands is a list of card lists of at most handSize cards each
//  10. no card token appears twice across hands and board
//
// raw is never modified.
func (v *Validator) Validate(raw Raw) (Request, error) {
	var req Request

	rawPlayers, hasPlayers := raw[FieldNumPlayers]
	rawHands, hasHands := raw[FieldHands]

	// 1. numPlayers or hands
	if !hasPlayers && !hasHands {
		return Request{}, &ValidationError{
			Field:  FieldNumPlayers,
			Reason: fmt.Sprintf("or %q must be provided", FieldHands),
			absent: true,
		}
	}

	// 2. output flags
	var err error
	if req.ReturnHandStats, err = optionalBool(raw, FieldReturnHandStats); err != nil {
		return Request{}, err
	}
	if req.ReturnTieHandStats, err = optionalBool(raw, FieldReturnTieHandStats); err != nil {
		return Request{}, err
	}

	// 3. numPlayers
	var numPlayers *int
	if hasPlayers {
		n, ok := asInteger(rawPlayers)
		if !ok || n < 1 {
			return Request{}, invalid(FieldNumPlayers, rawPlayers, "must be an integer greater than 0")
		}
		if hands, ok := listLen(rawHands); hasHands && ok && n < hands {
			return Request{}, invalid(FieldNumPlayers, fmt.Sprintf("%d | %v", n, rawHands),
				"must be equal to or greater than number of hands")
		}
		numPlayers = &n
	}

	// 4. boardSize
	if req.BoardSize, err = optionalInt(raw, FieldBoardSize, 0, "must be a non-negative integer"); err != nil {
		return Request{}, err
	}

	// 5. numDecks
	if req.NumDecks, err = optionalInt(raw, FieldNumDecks, 1, "must be an integer greater than 0"); err != nil {
		return Request{}, err
	}

	// 6. board
	if rawBoard, ok := raw[FieldBoard]; ok {
		board, ok := rawBoard.(string)
		if !ok {
			return Request{}, invalid(FieldBoard, rawBoard, "must be a string")
		}
		n, err := v.parser.CountCards(board)
		if err != nil {
			return Request{}, invalidCause(FieldBoard, board, "must be a valid card list", err)
		}
		limit := v.defaults.BoardSize
		if req.BoardSize != nil {
			limit = *req.BoardSize
		}
		if n > limit {
			return Request{}, invalid(FieldBoard, board,
				fmt.Sprintf("cannot contain more than %d cards", limit))
		}
		req.Board = &board
	}

	// 7. iterations
	if req.Iterations, err = optionalInt(raw, FieldIterations, 1, "must be an integer greater than 0"); err != nil {
		return Request{}, err
	}

	// 8. handSize
	if req.HandSize, err = optionalInt(raw, FieldHandSize, 0, "must be a non-negative integer"); err != nil {
		return Request{}, err
	}

	// 9. hands
	var hands []string
	if hasHands {
		var ok bool
		hands, ok = asStringList(rawHands)
		if !ok {
			return Request{}, invalid(FieldHands, rawHands, `must be an array of strings like ["5c,Th"]`)
		}
		limit := v.defaults.HandSize
		if req.HandSize != nil {
			limit = *req.HandSize
		}
		for _, hand := range hands {
			n, err := v.parser.CountCards(hand)
			if err != nil {
				return Request{}, invalidCause(FieldHands, hand, "must hold valid card lists", err)
			}
			if n > limit {
				return Request{}, invalid(FieldHands, hand,
					fmt.Sprintf("must specify at most %d cards each", limit))
			}
		}
	}

	// 10. hands + board must not share a card
	if err := checkUnique(hands, req.Board); err != nil {
		return Request{}, err
	}

	if hasHands {
		req.Seating = ByExplicitHands{Hands: hands, NumPlayers: numPlayers}
	} else {
		req.Seating = ByHandCount{NumPlayers: *numPlayers}
	}
	return req, nil
}

// checkUnique compares raw tokens literally: "As" and "as" are different tokens.
// Empty tokens come from empty lists and are not cards.
func checkUnique(hands []string, board *string) error {
	var all []string
	for _, h := range hands {
		all = append(all, cardgroup.Split(h)...)
	}
	if board != nil {
		all = append(all, cardgroup.Split(*board)...)
	}

	seen := make(map[string]struct{}, len(all))
	for _, tok := range all {
		if tok == "" {
			continue
		}
		if _, dup := seen[tok]; dup {
			return invalid(FieldCards, tok, "must be unique across hands and board")
		}
		seen[tok] = struct{}{}
	}
	return nil
}

func optionalBool(raw Raw, field string) (*bool, error) {
	v, ok := raw[field]
	if !ok {
		return nil, nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil, invalid(field, v, "must be a boolean")
	}
	return &b, nil
}

func optionalInt(raw Raw, field string, min int, reason string) (*int, error) {
	v, ok := raw[field]
	if !ok {
		return nil, nil
	}
	n, ok := asInteger(v)
	if !ok || n < min {
		return nil, invalid(field, v, reason)
	}
	return &n, nil
}
