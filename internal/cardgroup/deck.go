package cardgroup

// NewDeck returns numDecks copies of the 52 canonical tokens, suit-major.
func NewDeck(numDecks int) []string {
	if numDecks < 1 {
		return nil
	}
	deck := make([]string, 0, numDecks*len(Ranks)*len(Suits))
	for d := 0; d < numDecks; d++ {
		for i := 0; i < len(Suits); i++ {
			for j := 0; j < len(Ranks); j++ {
				deck = append(deck, string([]byte{Ranks[j], Suits[i]}))
			}
		}
	}
	return deck
}

// Remaining returns the deck left after removing one copy of every dead token.
// Dead tokens that are not in the deck are ignored.
func Remaining(numDecks int, dead ...string) []string {
	deck := NewDeck(numDecks)
	for _, d := range dead {
		for i, c := range deck {
			if c == d {
				deck = append(deck[:i], deck[i+1:]...)
				break
			}
		}
	}
	return deck
}
