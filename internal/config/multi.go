package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const DefaultLabel = "Default"

var (
	ErrNoConfig   = errors.New("no config selected")
	ErrEmptyLabel = errors.New("label cannot be empty")
)

// ConfigRoot resolves the per-user settings folder: %APPDATA%\sanpid,
// $XDG_CONFIG_HOME/sanpid or ~/.config/sanpid.
func ConfigRoot() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, "sanpid")
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sanpid")
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "sanpid")
}

func ConfigsDir() string {
	return filepath.Join(ConfigRoot(), "configs")
}

func CurrentLabelFile() string {
	return filepath.Join(ConfigRoot(), "current_config")
}

func profilePath(label string) string {
	return filepath.Join(ConfigsDir(), label+".yaml")
}

func checkLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return ErrEmptyLabel
	}
	if strings.ContainsAny(label, `/\`) {
		return fmt.Errorf("label %q must not contain path separators", label)
	}

	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func ensureDirs() error {
	return os.MkdirAll(ConfigsDir(), 0755)
}

func CurrentLabel() (string, error) {
	if err := ensureDirs(); err != nil {
		return "", err
	}

	b, err := os.ReadFile(CurrentLabelFile())
	if os.IsNotExist(err) {
		return "", ErrNoConfig
	}
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(b)), nil
}

func ConfigPathByLabel(label string) (string, error) {
	if err := checkLabel(label); err != nil {
		return "", err
	}

	path := profilePath(label)
	if !exists(path) {
		return "", fmt.Errorf("config %q does not exist", label)
	}

	return path, nil
}

func ActiveConfigPath() (string, error) {
	label, err := CurrentLabel()
	if err != nil {
		return "", err
	}
	if label == "" {
		return "", ErrNoConfig
	}

	return profilePath(label), nil
}

type ConfigInfo struct {
	Label  string
	Path   string
	Active bool
}

func ListConfigs() ([]ConfigInfo, error) {
	if err := ensureDirs(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(ConfigsDir())
	if err != nil {
		return nil, err
	}

	activeLabel, _ := CurrentLabel()
	var out []ConfigInfo

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}

		label := strings.TrimSuffix(name, ".yaml")
		out = append(out, ConfigInfo{
			Label:  label,
			Path:   filepath.Join(ConfigsDir(), name),
			Active: label == activeLabel,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func SwitchConfig(label string) error {
	if err := checkLabel(label); err != nil {
		return err
	}
	if err := ensureDirs(); err != nil {
		return err
	}

	if !exists(profilePath(label)) {
		return fmt.Errorf("config %q does not exist", label)
	}

	return os.WriteFile(CurrentLabelFile(), []byte(label), 0644)
}

// ImportConfig copies a YAML file in as a new profile after checking that it
// parses and validates.
func ImportConfig(label, srcPath string) (string, error) {
	if err := checkLabel(label); err != nil {
		return "", err
	}
	if err := ensureDirs(); err != nil {
		return "", err
	}

	dst := profilePath(label)
	if exists(dst) {
		return "", fmt.Errorf("config %q already exists", label)
	}

	cfg, err := loadYAML(srcPath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", srcPath, err)
	}
	normalizeDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("%s: %w", srcPath, err)
	}

	return dst, SaveYAML(cfg, dst)
}

func CreateEmptyConfig(label string) (string, error) {
	if err := checkLabel(label); err != nil {
		return "", err
	}
	if err := ensureDirs(); err != nil {
		return "", err
	}

	path := profilePath(label)
	if exists(path) {
		return "", fmt.Errorf("config %q already exists", label)
	}

	if err := SaveYAML(DefaultConfig(), path); err != nil {
		return "", err
	}

	return path, nil
}

func RenameConfig(oldLabel, newLabel string) error {
	if err := checkLabel(newLabel); err != nil {
		return err
	}
	if err := ensureDirs(); err != nil {
		return err
	}

	oldPath := profilePath(oldLabel)
	newPath := profilePath(newLabel)

	if !exists(oldPath) {
		return fmt.Errorf("config %q does not exist", oldLabel)
	}
	if exists(newPath) {
		return fmt.Errorf("config %q already exists", newLabel)
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return err
	}

	active, _ := CurrentLabel()
	if active == oldLabel {
		return os.WriteFile(CurrentLabelFile(), []byte(newLabel), 0644)
	}

	return nil
}

// RemoveConfig deletes a profile. Removing the active one switches back to
// Default and reports that through switched.
func RemoveConfig(label string) (switched bool, err error) {
	if err := checkLabel(label); err != nil {
		return false, err
	}
	if label == DefaultLabel {
		return false, errors.New("cannot remove the Default config")
	}
	if err := ensureDirs(); err != nil {
		return false, err
	}

	path := profilePath(label)
	if !exists(path) {
		return false, fmt.Errorf("config %q does not exist", label)
	}

	active, _ := CurrentLabel()
	if active == label {
		if err := SwitchConfig(DefaultLabel); err != nil {
			return false, fmt.Errorf("failed switching to Default: %w", err)
		}
		switched = true
	}

	return switched, os.Remove(path)
}

// InitDefaultConfig writes Default.yaml and makes it active. If it already
// exists it is only re-activated and os.ErrExist is returned.
func InitDefaultConfig() (string, error) {
	if err := ensureDirs(); err != nil {
		return "", err
	}

	defPath := profilePath(DefaultLabel)

	if exists(defPath) {
		_ = os.WriteFile(CurrentLabelFile(), []byte(DefaultLabel), 0644)
		return defPath, os.ErrExist
	}

	if err := SaveYAML(DefaultConfig(), defPath); err != nil {
		return "", err
	}

	return defPath, os.WriteFile(CurrentLabelFile(), []byte(DefaultLabel), 0644)
}
