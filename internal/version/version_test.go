package version

import "testing"

func withBuildInfo(t *testing.T, v, c, b string) {
	t.Helper()
	origVersion, origCommit, origBuildTime := Version, Commit, BuildTime
	t.Cleanup(func() {
		Version, Commit, BuildTime = origVersion, origCommit, origBuildTime
	})
	Version, Commit, BuildTime = v, c, b
}

func TestString(t *testing.T) {
	withBuildInfo(t, "1.2.3", "abc1234", "2026-01-15T10:00:00Z")

	want := "1.2.3 (abc1234) built 2026-01-15T10:00:00Z"
	if got := String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestGet(t *testing.T) {
	withBuildInfo(t, "0.4.0", "deadbee", "2026-03-01T00:00:00Z")

	info := Get()
	if info.Version != "0.4.0" {
		t.Errorf("Version = %q, want %q", info.Version, "0.4.0")
	}
	if info.Commit != "deadbee" {
		t.Errorf("Commit = %q, want %q", info.Commit, "deadbee")
	}
	if info.BuildTime != "2026-03-01T00:00:00Z" {
		t.Errorf("BuildTime = %q, want %q", info.BuildTime, "2026-03-01T00:00:00Z")
	}
}

func TestDefaultValues(t *testing.T) {
	// ldflags may override these in release builds
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if Commit == "" {
		t.Error("Commit should not be empty")
	}
	if BuildTime == "" {
		t.Error("BuildTime should not be empty")
	}
}
