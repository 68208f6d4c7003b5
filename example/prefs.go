package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

const maxRecentFiles = 8

// preferences persist between runs as YAML under the user config dir.
type preferences struct {
	Window struct {
		Width  float32 `yaml:"width"`
		Height float32 `yaml:"height"`
	} `yaml:"window"`
	RecentFiles  []string `yaml:"recent_files,omitempty"`
	RowLimit     int64    `yaml:"row_limit"`
	MissingValue string   `yaml:"missing_value,omitempty"`
}

func defaultPreferences() *preferences {
	p := &preferences{RowLimit: 1000}
	p.Window.Width = 1000
	p.Window.Height = 700
	return p
}

func prefsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "rowtable-browser", "prefs.yaml"), nil
}

// loadPreferences reads the preferences file, falling back to defaults
// when it is missing or malformed.
func loadPreferences() *preferences {
	p := defaultPreferences()
	path, err := prefsPath()
	if err != nil {
		return p
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return p
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return defaultPreferences()
	}
	return p
}

func (p *preferences) save() error {
	path, err := prefsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// rememberRecent moves path to the front of the recent file list.
func (p *preferences) rememberRecent(path string) {
	out := make([]string, 0, maxRecentFiles)
	out = append(out, path)
	for _, f := range p.RecentFiles {
		if f != path && len(out) < maxRecentFiles {
			out = append(out, f)
		}
	}
	p.RecentFiles = out
}
