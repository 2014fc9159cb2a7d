package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault_ShouldDeriveConfigDirFromHome(t *testing.T) {
	old := userHomeDirFunc
	defer func() { userHomeDirFunc = old }()
	userHomeDirFunc = func() (string, error) { return "/home/hue", nil }

	cfg, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if cfg.ConfigDir != filepath.Join("/home/hue", ".openhue") {
		t.Errorf("ConfigDir: got %q", cfg.ConfigDir)
	}
	if cfg.Runtime != "docker" || cfg.Image != "openhue/cli" || cfg.MountPath != "/.openhue" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestDefault_WhenHomeUnresolvable_ShouldFail(t *testing.T) {
	old := userHomeDirFunc
	defer func() { userHomeDirFunc = old }()
	userHomeDirFunc = func() (string, error) { return "", fmt.Errorf("no home") }

	if _, err := Default(); err == nil {
		t.Error("expected error when home directory is unresolvable")
	}
}

func TestLoad_ShouldOverlayFileOnDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "huemcp.yaml")
	content := "image: openhue/cli:v2\nconfigDir: /srv/hue/.openhue\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Image != "openhue/cli:v2" {
		t.Errorf("Image override lost: %q", cfg.Image)
	}
	if cfg.ConfigDir != "/srv/hue/.openhue" {
		t.Errorf("ConfigDir override lost: %q", cfg.ConfigDir)
	}
	// Unset keys keep their defaults.
	if cfg.Runtime != "docker" || cfg.MountPath != "/.openhue" {
		t.Errorf("defaults clobbered: %+v", cfg)
	}
}

func TestLoad_WhenFileMissing_ShouldFail(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil || !strings.Contains(err.Error(), "config load") {
		t.Errorf("expected load error, got %v", err)
	}
}

func TestLoad_WhenFileNotYAML_ShouldFail(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("{{nope"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "config parse") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestLoad_ShouldCleanTraversalInConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "huemcp.yaml")
	if err := os.WriteFile(path, []byte("configDir: /srv/hue/../hue2/.openhue\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ConfigDir != "/srv/hue2/.openhue" {
		t.Errorf("expected cleaned path, got %q", cfg.ConfigDir)
	}
}

func TestCleanPaths_WhenNil_ShouldNotPanic(t *testing.T) {
	CleanPaths(nil)
}
