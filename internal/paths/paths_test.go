package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
)

func TestResolveHome(t *testing.T) {
	got, err := ResolveHome()
	want, wantErr := os.UserHomeDir()
	if wantErr != nil {
		if err == nil {
			t.Error("ResolveHome() error = nil, want error")
		}
		return
	}
	if err != nil {
		t.Fatalf("ResolveHome() error = %v", err)
	}
	if got != want {
		t.Errorf("ResolveHome() = %q, want %q", got, want)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/opts.yaml", filepath.Join(home, "opts.yaml")},
		{"/etc/opts.yaml", "/etc/opts.yaml"},
		{"relative/opts.toml", "relative/opts.toml"},
		{"~other/opts.yaml", "~other/opts.yaml"},
	}
	for _, tt := range tests {
		got, err := ExpandHome(tt.in)
		if err != nil {
			t.Errorf("ExpandHome(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConfigLocations(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()

	if got := ConfigHome(); got != dir {
		t.Errorf("ConfigHome() = %q, want %q", got, dir)
	}
	if got, want := ConfigDir(), filepath.Join(dir, "mongo-toolkit"); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
	if got, want := ConfigFile(), filepath.Join(dir, "mongo-toolkit", "config.yaml"); got != want {
		t.Errorf("ConfigFile() = %q, want %q", got, want)
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := EnsureDir(dir, 0); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !info.IsDir() {
		t.Error("EnsureDir() did not create a directory")
	}
	if err := EnsureDir(dir, 0); err != nil {
		t.Errorf("EnsureDir() on existing dir error = %v", err)
	}
}
