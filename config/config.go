// Package config locates dwbox configuration and loads layout files.
package config

import (
	"os"
	"path/filepath"
)

// EnvDir names the variable that overrides the configuration directory.
const EnvDir = "DWBOX_CONFIG"

// Dir returns the directory default layouts are read from: $DWBOX_CONFIG
// when set, otherwise dwbox under the user configuration directory. It
// returns "" when no home directory is known.
func Dir() string {
	if dir := os.Getenv(EnvDir); dir != "" {
		return dir
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "dwbox")
}

// LayoutFile returns the path of the default TOML layout.
func LayoutFile() string { return inDir("layout.toml") }

// ScriptFile returns the path of the default Lua layout script.
func ScriptFile() string { return inDir("layout.lua") }

func inDir(name string) string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, name)
}

// Sources returns the default layout file and script that exist on disk.
// Either is "" when missing.
func Sources() (file, script string) {
	if p := LayoutFile(); isFile(p) {
		file = p
	}
	if p := ScriptFile(); isFile(p) {
		script = p
	}
	return file, script
}

func isFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
