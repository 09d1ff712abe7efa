package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MrSnakeDoc/docnav/internal/render"
	"github.com/MrSnakeDoc/docnav/internal/sources/declared"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DOCNAV_SOURCE", "")
	t.Setenv("DOCNAV_PRETTY_LOG", "false")

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestBuildDeclaredToStdout(t *testing.T) {
	out, err := run(t, "build")
	if err != nil {
		t.Fatalf("build error = %v", err)
	}

	got, err := render.Decode("stdout", []byte(out), render.FormatJSON)
	if err != nil {
		t.Fatalf("Decode() error = %v\n%s", err, out)
	}
	want, _ := declared.Load()
	if !got.Equal(want) {
		t.Errorf("build output differs from the declared sidebars:\n%s", out)
	}
}

func TestBuildToFile(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "site", "sidebars.js")

	if _, err := run(t, "build", "--out", outPath); err != nil {
		t.Fatalf("build error = %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "module.exports = sidebars;") {
		t.Errorf("format not inferred from .js extension:\n%s", data)
	}
}

func TestBuildFromFileSource(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sidebars.yaml", "docs:\n  - intro\n  - Guides: [guides/a]\n")

	out, err := run(t, "build", "--file", path, "--format", "yaml")
	if err != nil {
		t.Fatalf("build error = %v", err)
	}
	if !strings.Contains(out, "label: Guides") {
		t.Errorf("build output = %s", out)
	}
}

func TestBuildInvalidSource(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sidebars.yaml", "docs:\n  - Empty: []\n")

	if _, err := run(t, "build", "--file", path); err == nil {
		t.Error("build error = nil, want validation failure")
	}
	if _, err := run(t, "build", "--format", "toml"); err == nil {
		t.Error("build error = nil, want unknown format")
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	docs := filepath.Join(dir, "docs")
	writeFile(t, docs, "intro.md", "# Intro\n")
	writeFile(t, docs, "guides/a.md", "# A\n")
	sidebars := writeFile(t, dir, "sidebars.yaml", "docs:\n  - intro\n  - Guides: [guides/a]\n")

	t.Run("valid", func(t *testing.T) {
		out, err := run(t, "check", "--file", sidebars, "--verify-refs", docs)
		if err != nil {
			t.Fatalf("check error = %v\n%s", err, out)
		}
		if !strings.Contains(out, "all references resolve") {
			t.Errorf("check output = %s", out)
		}
	})

	t.Run("unknown reference", func(t *testing.T) {
		bad := writeFile(t, dir, "bad.yaml", "docs:\n  - intro\n  - guides/missing\n")
		out, err := run(t, "check", "--file", bad, "--verify-refs", docs)
		if !errors.Is(err, errCheckFailed) {
			t.Fatalf("check error = %v, want errCheckFailed", err)
		}
		if !strings.Contains(out, "guides/missing") {
			t.Errorf("check output does not name the missing doc:\n%s", out)
		}
	})

	t.Run("up to date", func(t *testing.T) {
		rendered := filepath.Join(dir, "sidebars.json")
		if _, err := run(t, "build", "--file", sidebars, "--out", rendered); err != nil {
			t.Fatalf("build error = %v", err)
		}
		if out, err := run(t, "check", "--file", sidebars, "--against", rendered); err != nil {
			t.Errorf("check error = %v\n%s", err, out)
		}
	})

	t.Run("drift", func(t *testing.T) {
		stale := writeFile(t, dir, "stale.json", `{"docs": ["intro"]}`)
		out, err := run(t, "check", "--file", sidebars, "--against", stale)
		if !errors.Is(err, errCheckFailed) {
			t.Fatalf("check error = %v, want errCheckFailed", err)
		}
		if !strings.Contains(out, "out of date") || !strings.Contains(out, "guides/a") {
			t.Errorf("check output has no diff:\n%s", out)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		bad := writeFile(t, dir, "dup.yaml", "docs:\n  - a\ndocs:\n  - b\n")
		if _, err := run(t, "check", "--file", bad); !errors.Is(err, errCheckFailed) {
			t.Errorf("check error = %v, want errCheckFailed", err)
		}
	})
}

func TestSourceFlagsValidated(t *testing.T) {
	if _, err := run(t, "build", "--source", "autogen"); err == nil {
		t.Error("autogen without docs dir should fail")
	}
	if _, err := run(t, "build", "--source", "remote"); err == nil {
		t.Error("unknown source should fail")
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "docnav ") {
		t.Errorf("version output = %q", out)
	}
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		format, out string
		want        render.Format
	}{
		{"", "", render.FormatJSON},
		{"", "-", render.FormatJSON},
		{"", "sidebars.yml", render.FormatYAML},
		{"js", "sidebars.json", render.FormatJS},
	}
	for _, tt := range tests {
		got, err := resolveFormat(tt.format, tt.out)
		if err != nil || got != tt.want {
			t.Errorf("resolveFormat(%q, %q) = %q, %v, want %q", tt.format, tt.out, got, err, tt.want)
		}
	}
}
