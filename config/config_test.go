package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDir, dir)

	if got := Dir(); got != dir {
		t.Errorf("Dir() = %q, want %q", got, dir)
	}
	if got, want := LayoutFile(), filepath.Join(dir, "layout.toml"); got != want {
		t.Errorf("LayoutFile() = %q, want %q", got, want)
	}
	if got, want := ScriptFile(), filepath.Join(dir, "layout.lua"); got != want {
		t.Errorf("ScriptFile() = %q, want %q", got, want)
	}
}

func TestDirXDG(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" || runtime.GOOS == "ios" || runtime.GOOS == "plan9" {
		t.Skip("XDG_CONFIG_HOME is only consulted on Unix")
	}
	base := t.TempDir()
	t.Setenv(EnvDir, "")
	t.Setenv("XDG_CONFIG_HOME", base)

	if got, want := Dir(), filepath.Join(base, "dwbox"); got != want {
		t.Errorf("Dir() = %q, want %q", got, want)
	}
}

func TestSources(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDir, dir)

	if file, script := Sources(); file != "" || script != "" {
		t.Errorf("Sources() = %q, %q in an empty dir", file, script)
	}

	if err := os.WriteFile(filepath.Join(dir, "layout.lua"), []byte("-- empty\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// A directory named like the layout file is not a source.
	if err := os.Mkdir(filepath.Join(dir, "layout.toml"), 0o755); err != nil {
		t.Fatal(err)
	}

	file, script := Sources()
	if file != "" {
		t.Errorf("file = %q, want none", file)
	}
	if want := filepath.Join(dir, "layout.lua"); script != want {
		t.Errorf("script = %q, want %q", script, want)
	}
}
