package equity

import "fmt"

// Normalizer fills absent request fields.
type Normalizer struct {
	Defaults Defaults
}

func NewNormalizer(defaults Defaults) Normalizer {
	return Normalizer{Defaults: defaults}
}

// Normalize resolves a Request produced by Validator.Validate. It does not
// re-validate: a Request that did not come from a successful validation is a
// programming error, and a Request without Seating panics.
//
// numPlayers is the explicit value when given, else len(hands); this matches
// the validator, which only checks numPlayers >= len(hands) when both are set.
func (n Normalizer) Normalize(req Request) Resolved {
	d := n.Defaults
	out := Resolved{
		Board:              valueOr(req.Board, d.Board),
		BoardSize:          valueOr(req.BoardSize, d.BoardSize),
		HandSize:           valueOr(req.HandSize, d.HandSize),
		Iterations:         valueOr(req.Iterations, d.Iterations),
		NumDecks:           valueOr(req.NumDecks, d.NumDecks),
		ReturnHandStats:    valueOr(req.ReturnHandStats, false),
		ReturnTieHandStats: valueOr(req.ReturnTieHandStats, false),
	}

	switch s := req.Seating.(type) {
	case ByHandCount:
		out.Hands = []string{}
		out.NumPlayers = s.NumPlayers
	case ByExplicitHands:
		out.Hands = append([]string{}, s.Hands...)
		out.NumPlayers = valueOr(s.NumPlayers, len(s.Hands))
	default:
		panic(fmt.Sprintf("equity: Normalize called with unvalidated seating %T", req.Seating))
	}
	return out
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// Resolve validates raw and, when it passes, normalizes it.
// Validate and Normalize stay usable on their own; this is the common composition.
func Resolve(v *Validator, n Normalizer, raw Raw) (Resolved, error) {
	req, err := v.Validate(raw)
	if err != nil {
		return Resolved{}, err
	}
	return n.Normalize(req), nil
}
