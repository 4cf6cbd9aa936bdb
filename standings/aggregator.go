// Package standings computes ranked standings for a phase from its
// roster and resolved match results. All aggregators are pure and
// deterministic: the same roster and match set always produce the same
// ordering, regardless of the order matches are passed in (the ladder
// aggregator is the documented exception — it consumes results in
// challenge-issue order because rank movement depends on it).
package standings

// RosterPlayer is one entered player. Slice order is registration
// order, which is the final tie-break everywhere.
type RosterPlayer struct {
	PlayerID int
	Seed     int
}

// MatchResult is a completed, resolved match. WinnerID is always one
// of P1ID/P2ID; GamesP1/GamesP2 are total games won across sets and
// feed the round-robin tie-break. A Bye result has no P2ID: it credits
// P1 a walkover win but contributes no games and no faced opponent.
type MatchResult struct {
	P1ID     int
	P2ID     int
	WinnerID int
	GamesP1  int
	GamesP2  int
	Round    int
	Bye      bool
}

// Entry is one row of a standings view. Ranks are 1-based; elimination
// views may co-rank players knocked out in the same round, every other
// view assigns distinct ranks.
type Entry struct {
	PlayerID      int `json:"player_id"`
	Rank          int `json:"rank"`
	Points        int `json:"points"`
	Wins          int `json:"wins"`
	Losses        int `json:"losses"`
	MatchesPlayed int `json:"matches_played"`
	GamesWon      int `json:"games_won"`
}

type record struct {
	wins, losses, games int
	regIdx              int
}

// tally folds results into per-player records, ignoring matches whose
// sides are not both on the roster (a withdrawn player's old matches
// must not corrupt the view).
func tally(roster []RosterPlayer, results []MatchResult) map[int]*record {
	records := make(map[int]*record, len(roster))
	for i, p := range roster {
		records[p.PlayerID] = &record{regIdx: i}
	}
	for _, r := range results {
		if r.Bye {
			if p1, ok := records[r.P1ID]; ok {
				p1.wins++
			}
			continue
		}
		p1, ok1 := records[r.P1ID]
		p2, ok2 := records[r.P2ID]
		if !ok1 || !ok2 {
			continue
		}
		p1.games += r.GamesP1
		p2.games += r.GamesP2
		if r.WinnerID == r.P1ID {
			p1.wins++
			p2.losses++
		} else {
			p2.wins++
			p1.losses++
		}
	}
	return records
}
