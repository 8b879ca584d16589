package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chatty/visual"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("CHATTY_MODEL", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Setenv("CHATTY_MODEL", "")
	path := writeConfig(t, `
model: /models/ggml-base.en.bin
visual: wave
auto_type: false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model != "/models/ggml-base.en.bin" || cfg.AutoType || cfg.Mode() != visual.ModeWave {
		t.Errorf("got %+v", cfg)
	}
	if cfg.Language != "en" || !cfg.Beep {
		t.Errorf("unset keys lost their defaults: %+v", cfg)
	}
}

func TestLoadEnvModel(t *testing.T) {
	t.Setenv("CHATTY_MODEL", "/env/model.bin")
	cfg, err := Load(writeConfig(t, "model: /file/model.bin\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model != "/env/model.bin" {
		t.Errorf("model = %q", cfg.Model)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	for name, body := range map[string]string{
		"visual":   "visual: bars\n",
		"language": "language: \"\"\n",
		"syntax":   "model: [unclosed\n",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	t.Setenv("HOME", "/tmp/home")
	p, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(p, filepath.Join("chatty", "config.yaml")) {
		t.Errorf("path = %q", p)
	}
}
