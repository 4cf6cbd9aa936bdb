package models

import "encoding/json"

// Rule types recognised by the engine. Unknown types are kept verbatim
// so a phase configured by a newer builder still round-trips.
const (
	RuleMatchFormat    = "matchFormat"    // parameters: {"bestOf": 3|5}
	RuleChallengeRange = "challengeRange" // parameters: {"range": n}
	RuleTiebreak       = "tiebreakRule"   // parameters: {"finalSetTiebreak": bool}
)

// Rule is a typed parameter bag attached to a phase.
type Rule struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Parameters json.RawMessage `json:"parameters,omitempty"`
}

type MatchFormatParams struct {
	BestOf int `json:"bestOf"`
}

type ChallengeRangeParams struct {
	Range int `json:"range"`
}

// ParseRules decodes the rules_json column. A nil or empty payload is a
// valid phase with no rules.
func ParseRules(rulesJSON *string) ([]Rule, error) {
	if rulesJSON == nil || *rulesJSON == "" {
		return nil, nil
	}
	var rules []Rule
	if err := json.Unmarshal([]byte(*rulesJSON), &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// BestOf returns the configured set count for the phase, defaulting to 3
// when no matchFormat rule is present or its parameters are invalid.
func BestOf(rules []Rule) int {
	for _, r := range rules {
		if r.Type != RuleMatchFormat || len(r.Parameters) == 0 {
			continue
		}
		var p MatchFormatParams
		if err := json.Unmarshal(r.Parameters, &p); err != nil {
			continue
		}
		if p.BestOf == 3 || p.BestOf == 5 {
			return p.BestOf
		}
	}
	return 3
}

// ChallengeRange returns how many ladder positions up a player may
// challenge, 0 meaning unrestricted.
func ChallengeRange(rules []Rule) int {
	for _, r := range rules {
		if r.Type != RuleChallengeRange || len(r.Parameters) == 0 {
			continue
		}
		var p ChallengeRangeParams
		if err := json.Unmarshal(r.Parameters, &p); err != nil {
			continue
		}
		if p.Range > 0 {
			return p.Range
		}
	}
	return 0
}
