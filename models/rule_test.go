package models

import "testing"

func strPtr(s string) *string { return &s }

func TestParseRules(t *testing.T) {
	rules, err := ParseRules(strPtr(`[{"id":"r1","type":"matchFormat","parameters":{"bestOf":5}}]`))
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}
	if len(rules) != 1 || rules[0].Type != RuleMatchFormat {
		t.Fatalf("unexpected rules: %+v", rules)
	}

	if rules, err := ParseRules(nil); err != nil || rules != nil {
		t.Fatalf("nil payload should yield no rules, got %v, %v", rules, err)
	}
	if rules, err := ParseRules(strPtr("")); err != nil || rules != nil {
		t.Fatalf("empty payload should yield no rules, got %v, %v", rules, err)
	}
	if _, err := ParseRules(strPtr("{not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestBestOf(t *testing.T) {
	rules, err := ParseRules(strPtr(`[{"id":"r1","type":"matchFormat","parameters":{"bestOf":5}}]`))
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}
	if got := BestOf(rules); got != 5 {
		t.Errorf("BestOf = %d, want 5", got)
	}

	if got := BestOf(nil); got != 3 {
		t.Errorf("BestOf with no rules = %d, want default 3", got)
	}

	// Out-of-range values fall back to the default.
	rules, _ = ParseRules(strPtr(`[{"id":"r1","type":"matchFormat","parameters":{"bestOf":7}}]`))
	if got := BestOf(rules); got != 3 {
		t.Errorf("BestOf with bestOf=7 = %d, want default 3", got)
	}
}

func TestChallengeRange(t *testing.T) {
	rules, err := ParseRules(strPtr(`[{"id":"r1","type":"challengeRange","parameters":{"range":2}}]`))
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}
	if got := ChallengeRange(rules); got != 2 {
		t.Errorf("ChallengeRange = %d, want 2", got)
	}
	if got := ChallengeRange(nil); got != 0 {
		t.Errorf("ChallengeRange with no rules = %d, want 0 (unrestricted)", got)
	}
}
