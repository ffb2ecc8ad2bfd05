// Package equity validates and normalizes equity-simulation requests.
//
// A request arrives loosely typed (Raw, decoded from JSON, YAML or a protobuf
// Struct). Validator.Validate checks it against a fixed, fail-fast rule set and
// returns a typed Request; Normalizer.Normalize fills every absent field and
// returns a Resolved configuration the simulation engine can use as is.
package equity

// Caller-facing field names.
const (
	FieldNumPlayers         = "numPlayers"
	FieldHands              = "hands"
	FieldBoard              = "board"
	FieldBoardSize          = "boardSize"
	FieldNumDecks           = "numDecks"
	FieldHandSize           = "handSize"
	FieldIterations         = "iterations"
	FieldReturnHandStats    = "returnHandStats"
	FieldReturnTieHandStats = "returnTieHandStats"

	// FieldCards names the combined hands+board card pool in uniqueness errors.
	FieldCards = "cards"
)

// Raw is an unvalidated request as decoded from the wire. Unknown keys are ignored.
type Raw map[string]any

// Seating is how the players of a request are specified:
// either ByHandCount or ByExplicitHands.
type Seating interface {
	seating()
}

// ByHandCount seats NumPlayers players with unknown hole cards.
type ByHandCount struct {
	NumPlayers int
}

// ByExplicitHands seats one player per hand. NumPlayers, when set, may add
// players with unknown cards on top of len(Hands).
type ByExplicitHands struct {
	Hands      []string
	NumPlayers *int
}

func (ByHandCount) seating()     {}
func (ByExplicitHands) seating() {}

// Request is a validated but not yet defaulted request. nil pointers mean "absent".
type Request struct {
	Seating Seating

	Board              *string
	BoardSize          *int
	NumDecks           *int
	HandSize           *int
	Iterations         *int
	ReturnHandStats    *bool
	ReturnTieHandStats *bool
}

// Raw renders r back into wire form, so Go callers can run it through the validator.
func (r Request) Raw() Raw {
	out := Raw{}
	switch s := r.Seating.(type) {
	case ByHandCount:
		out[FieldNumPlayers] = s.NumPlayers
	case ByExplicitHands:
		out[FieldHands] = stringsToList(s.Hands)
		if s.NumPlayers != nil {
			out[FieldNumPlayers] = *s.NumPlayers
		}
	}
	if r.Board != nil {
		out[FieldBoard] = *r.Board
	}
	putInt(out, FieldBoardSize, r.BoardSize)
	putInt(out, FieldNumDecks, r.NumDecks)
	putInt(out, FieldHandSize, r.HandSize)
	putInt(out, FieldIterations, r.Iterations)
	putBool(out, FieldReturnHandStats, r.ReturnHandStats)
	putBool(out, FieldReturnTieHandStats, r.ReturnTieHandStats)
	return out
}

// Resolved is a fully populated request, ready for the simulation engine.
type Resolved struct {
	Board              string   `json:"board" yaml:"board"`
	BoardSize          int      `json:"boardSize" yaml:"boardSize"`
	HandSize           int      `json:"handSize" yaml:"handSize"`
	Hands              []string `json:"hands" yaml:"hands"`
	Iterations         int      `json:"iterations" yaml:"iterations"`
	NumDecks           int      `json:"numDecks" yaml:"numDecks"`
	NumPlayers         int      `json:"numPlayers" yaml:"numPlayers"`
	ReturnHandStats    bool     `json:"returnHandStats" yaml:"returnHandStats"`
	ReturnTieHandStats bool     `json:"returnTieHandStats" yaml:"returnTieHandStats"`
}

// Raw renders r in wire form. Hands is a []any so the map can be fed to structpb.
func (r Resolved) Raw() Raw {
	return Raw{
		FieldBoard:              r.Board,
		FieldBoardSize:          r.BoardSize,
		FieldHandSize:           r.HandSize,
		FieldHands:              stringsToList(r.Hands),
		FieldIterations:         r.Iterations,
		FieldNumDecks:           r.NumDecks,
		FieldNumPlayers:         r.NumPlayers,
		FieldReturnHandStats:    r.ReturnHandStats,
		FieldReturnTieHandStats: r.ReturnTieHandStats,
	}
}

func stringsToList(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func putInt(m Raw, key string, v *int) {
	if v != nil {
		m[key] = *v
	}
}

func putBool(m Raw, key string, v *bool) {
	if v != nil {
		m[key] = *v
	}
}
