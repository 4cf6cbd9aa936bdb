// Package scoring parses raw tennis set scores and resolves match
// outcomes. Everything here is a pure function over its inputs; the
// surrounding services decide what to persist and broadcast.
package scoring

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrMalformedScore   = errors.New("malformed score")
	ErrGamesOutOfRange  = errors.New("set games must be between 0 and 7")
	ErrTiedSet          = errors.New("a set cannot end with equal games")
	ErrTiebreakNotValid = errors.New("tiebreak points only apply to a 7-6 set")
	ErrBadTiebreak      = errors.New("tiebreak points must be a non-negative integer")
)

// NotPlayed is the sentinel raw score meaning no result has been
// reported yet. Parsing it yields zero sets and a normal terminal
// state; callers must treat that as "match not completed", not 0-0.
const NotPlayed = "Not played"

// Side identifies one of the two sides of a match by position.
type Side int

const (
	SideA Side = iota
	SideB
)

func (s Side) Other() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

// TerminalState records how a match ended.
type TerminalState string

const (
	TerminalNormal    TerminalState = "normal"
	TerminalRetired   TerminalState = "retired"
	TerminalDefaulted TerminalState = "defaulted"
)

// SetScore is one completed (or, on retirement, partial) set.
// Tiebreak carries the loser's tiebreak points for a 7-6 set and is
// nil otherwise.
type SetScore struct {
	GamesA   int  `json:"games_a"`
	GamesB   int  `json:"games_b"`
	Tiebreak *int `json:"tiebreak,omitempty"`
}

// Winner returns the side with more games in this set.
func (s SetScore) Winner() (Side, error) {
	if err := s.Validate(); err != nil {
		return SideA, err
	}
	if s.GamesA > s.GamesB {
		return SideA, nil
	}
	return SideB, nil
}

// Validate checks the 0-7 game range, rejects tied sets and restricts
// tiebreak points to 7-6 / 6-7 sets. Reachability of the game count
// itself (e.g. 6-5) is deliberately not checked; see DESIGN.md.
func (s SetScore) Validate() error {
	if s.GamesA < 0 || s.GamesA > 7 || s.GamesB < 0 || s.GamesB > 7 {
		return ErrGamesOutOfRange
	}
	if s.GamesA == s.GamesB {
		return ErrTiedSet
	}
	if s.Tiebreak != nil {
		if !s.tiebreakEligible() {
			return ErrTiebreakNotValid
		}
		if *s.Tiebreak < 0 {
			return ErrBadTiebreak
		}
	}
	return nil
}

func (s SetScore) tiebreakEligible() bool {
	return (s.GamesA == 7 && s.GamesB == 6) || (s.GamesA == 6 && s.GamesB == 7)
}

// String renders the set as entered, e.g. "6-4" or "7-6(5)".
func (s SetScore) String() string {
	if s.Tiebreak != nil {
		return fmt.Sprintf("%d-%d(%d)", s.GamesA, s.GamesB, *s.Tiebreak)
	}
	return fmt.Sprintf("%d-%d", s.GamesA, s.GamesB)
}

// ParseSets parses a comma-separated list of set scores. The NotPlayed
// sentinel (case-insensitive) and the empty string both yield nil sets
// without error.
func ParseSets(raw string) ([]SetScore, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, NotPlayed) {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	sets := make([]SetScore, 0, len(parts))
	for _, part := range parts {
		set, err := parseSet(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, nil
}

func parseSet(part string) (SetScore, error) {
	var set SetScore

	if open := strings.IndexByte(part, '('); open >= 0 {
		if !strings.HasSuffix(part, ")") {
			return set, fmt.Errorf("%w: unclosed tiebreak in %q", ErrMalformedScore, part)
		}
		tb, err := strconv.Atoi(part[open+1 : len(part)-1])
		if err != nil || tb < 0 {
			return set, fmt.Errorf("%w: %q", ErrBadTiebreak, part)
		}
		set.Tiebreak = &tb
		part = strings.TrimSpace(part[:open])
	}

	a, b, found := strings.Cut(part, "-")
	if !found {
		return set, fmt.Errorf("%w: expected games-games in %q", ErrMalformedScore, part)
	}
	gamesA, errA := strconv.Atoi(strings.TrimSpace(a))
	gamesB, errB := strconv.Atoi(strings.TrimSpace(b))
	if errA != nil || errB != nil {
		return set, fmt.Errorf("%w: non-numeric games in %q", ErrMalformedScore, part)
	}
	set.GamesA = gamesA
	set.GamesB = gamesB

	if err := set.Validate(); err != nil {
		return set, fmt.Errorf("%w: %q", err, part)
	}
	return set, nil
}

// FormatSets is the inverse of ParseSets: formatting and re-parsing a
// valid set list yields an equal list. An empty list formats to the
// NotPlayed sentinel.
func FormatSets(sets []SetScore) string {
	if len(sets) == 0 {
		return NotPlayed
	}
	parts := make([]string, len(sets))
	for i, s := range sets {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}
