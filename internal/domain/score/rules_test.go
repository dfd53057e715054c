package score

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRules_Score(t *testing.T) {
	t.Parallel()

	stats := Stats{Singles: 2, HomeRuns: 1, RunsBattedIn: 3, StolenBases: 1}
	got := DefaultRules().Score(stats)
	// 2*3 + 1*10 + 3*2 + 1*5
	if got != 27 {
		t.Fatalf("unexpected score: got=%v want=27", got)
	}
}

func TestLoadRules_OverridesOnlyListedWeights(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scoring.yaml")
	if err := os.WriteFile(path, []byte("home_runs: 12\nwalks: 1.5\n"), 0o600); err != nil {
		t.Fatalf("write rules file: %v", err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules error: %v", err)
	}
	if rules.HomeRuns != 12 || rules.Walks != 1.5 {
		t.Fatalf("overrides not applied: %+v", rules)
	}
	if rules.Singles != DefaultRules().Singles {
		t.Fatalf("default singles weight lost: got=%v", rules.Singles)
	}
}

func TestLoadRules_RejectsNegativeWeight(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scoring.yaml")
	if err := os.WriteFile(path, []byte("doubles: -1\n"), 0o600); err != nil {
		t.Fatalf("write rules file: %v", err)
	}
	if _, err := LoadRules(path); err == nil {
		t.Fatalf("expected validation error for negative weight")
	}
}

func TestWindowKeyRoundTrip(t *testing.T) {
	t.Parallel()

	day := DateWindow(time.Date(2021, 6, 1, 23, 0, 0, 0, time.UTC))
	if day.Key() != "date:2021-06-01" {
		t.Fatalf("unexpected date key: %s", day.Key())
	}
	parsed, err := ParseWindowKey(SeasonWindow("2021").Key())
	if err != nil {
		t.Fatalf("ParseWindowKey error: %v", err)
	}
	if parsed != SeasonWindow("2021") {
		t.Fatalf("unexpected parsed window: %+v", parsed)
	}
	if _, err := ParseWindowKey("week:22"); err == nil {
		t.Fatalf("expected error for unknown window kind")
	}
}
