package geekfit

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootHelp(t *testing.T) {
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--help"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected help output")
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geekfit.db")
	for i := 0; i < 2; i++ {
		buf := &bytes.Buffer{}
		rootCmd.SetOut(buf)
		rootCmd.SetErr(buf)
		rootCmd.SetArgs([]string{"--db", path, "init"})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("init run %d failed: %v", i+1, err)
		}
	}
}

func TestLogCommandPrintsLevelUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geekfit.db")
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--db", path, "log", "pushups", "20"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute log: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Logged Pushups x 20 (+200 XP)") {
		t.Errorf("missing log line in output:\n%s", out)
	}
	if !strings.Contains(out, "LEVEL UP! Pushups is now level 3") {
		t.Errorf("missing level-up line in output:\n%s", out)
	}
	if !strings.Contains(out, "Achievement unlocked: first-exercise") {
		t.Errorf("missing achievement line in output:\n%s", out)
	}
}

func TestLogCommandUnknownExerciseFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geekfit.db")
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"--db", path, "log", "no-such-exercise", "10"})

	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected unknown exercise to fail")
	}
}

func TestFormatXP(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1500, "1.5K"},
		{2_300_000, "2.3M"},
	}
	for _, tc := range cases {
		if got := formatXP(tc.in); got != tc.want {
			t.Errorf("formatXP(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestProgressBarClamps(t *testing.T) {
	t.Parallel()
	if got := progressBar(-0.5, 10); !strings.Contains(got, "0%") {
		t.Errorf("negative fraction = %q, want clamped to 0%%", got)
	}
	if got := progressBar(2.0, 10); !strings.Contains(got, "100%") {
		t.Errorf("overflowing fraction = %q, want clamped to 100%%", got)
	}
	if got := progressBar(math.NaN(), 10); !strings.Contains(got, "0%") {
		t.Errorf("NaN fraction = %q, want rendered as 0%%", got)
	}
	if got := progressBar(math.Inf(1), 10); !strings.Contains(got, "100%") {
		t.Errorf("infinite fraction = %q, want clamped to 100%%", got)
	}
}
