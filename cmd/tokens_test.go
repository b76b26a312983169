package cmd

import (
	"testing"
	"time"
)

func TestParseCutoff(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	got, err := parseCutoff("", now)
	if err != nil || !got.Equal(now) {
		t.Fatalf("expected now, got %v %v", got, err)
	}

	got, err = parseCutoff("2024-01-01T00:00:00Z", now)
	if err != nil || !got.Equal(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected cutoff %v %v", got, err)
	}

	if _, err = parseCutoff("yesterday", now); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err = parseCutoff("2025-01-01T00:00:00Z", now); err == nil {
		t.Fatalf("expected future cutoff to be rejected")
	}
}

func TestTokensCommandsRegistered(t *testing.T) {
	for _, path := range [][]string{{"serve"}, {"migrate"}, {"tokens", "purge"}, {"tokens", "revoke"}} {
		cmd, _, err := rootCmd.Find(path)
		if err != nil || cmd == nil || cmd.Name() != path[len(path)-1] {
			t.Fatalf("command %v not registered: %v", path, err)
		}
	}
}
