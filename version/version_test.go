package version

import "testing"

func TestGetFullVersion(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "dev"
	if got := GetFullVersion(); got != "dev" {
		t.Errorf("GetFullVersion() = %q, want %q", got, "dev")
	}

	Version, GitCommit, BuildDate = "1.2.0", "abc123", "2026-01-02"
	want := "1.2.0 (commit abc123, built 2026-01-02)"
	if got := GetFullVersion(); got != want {
		t.Errorf("GetFullVersion() = %q, want %q", got, want)
	}
}
