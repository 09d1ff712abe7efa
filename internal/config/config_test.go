package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"DOCNAV_SOURCE", "DOCNAV_SIDEBAR_FILE", "DOCNAV_DOCS_DIR", "DOCNAV_SIDEBAR_NAME",
		"DOCNAV_LISTEN_PORT", "DOCNAV_RELOAD_INTERVAL", "DOCNAV_WATCH", "DOCNAV_REDIS_ADDR",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Source != SourceDeclared {
		t.Errorf("Source = %q, want %q", cfg.Source, SourceDeclared)
	}
	if cfg.SidebarName != "tutorialSidebar" {
		t.Errorf("SidebarName = %q, want tutorialSidebar", cfg.SidebarName)
	}
	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %q, want :8080", cfg.ListenPort)
	}
	if cfg.ReloadInterval != 0 {
		t.Errorf("ReloadInterval = %v, want 0", cfg.ReloadInterval)
	}
	if cfg.RedisEnabled() {
		t.Error("RedisEnabled() = true without DOCNAV_REDIS_ADDR")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DOCNAV_SOURCE", "AutoGen")
	t.Setenv("DOCNAV_DOCS_DIR", "./docs")
	t.Setenv("DOCNAV_RELOAD_INTERVAL", "30s")
	t.Setenv("DOCNAV_WATCH", "true")
	t.Setenv("DOCNAV_REDIS_ADDR", "localhost:6379")
	t.Setenv("DOCNAV_ALLOWED_CIDRS", "10.0.0.0/8, 192.168.1.1")

	cfg := Load()

	if cfg.Source != SourceAutogen {
		t.Errorf("Source = %q, want %q", cfg.Source, SourceAutogen)
	}
	if cfg.DocsDir != "./docs" {
		t.Errorf("DocsDir = %q, want ./docs", cfg.DocsDir)
	}
	if cfg.ReloadInterval != 30*time.Second {
		t.Errorf("ReloadInterval = %v, want 30s", cfg.ReloadInterval)
	}
	if !cfg.Watch {
		t.Error("Watch = false, want true")
	}
	if !cfg.RedisEnabled() {
		t.Error("RedisEnabled() = false, want true")
	}
	want := []string{"10.0.0.0/8", "192.168.1.1"}
	if !reflect.DeepEqual(cfg.AllowedCIDRS, want) {
		t.Errorf("AllowedCIDRS = %v, want %v", cfg.AllowedCIDRS, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "declared",
			cfg:  Config{Source: SourceDeclared},
		},
		{
			name: "file with path",
			cfg:  Config{Source: SourceFile, SidebarFile: "sidebars.yaml"},
		},
		{
			name:    "file without path",
			cfg:     Config{Source: SourceFile},
			wantErr: "DOCNAV_SIDEBAR_FILE",
		},
		{
			name: "autogen with dir",
			cfg:  Config{Source: SourceAutogen, DocsDir: "docs", SidebarName: "docs"},
		},
		{
			name:    "autogen without dir",
			cfg:     Config{Source: SourceAutogen, SidebarName: "docs"},
			wantErr: "DOCNAV_DOCS_DIR",
		},
		{
			name:    "autogen without sidebar name",
			cfg:     Config{Source: SourceAutogen, DocsDir: "docs"},
			wantErr: "DOCNAV_SIDEBAR_NAME",
		},
		{
			name:    "unknown source",
			cfg:     Config{Source: "remote"},
			wantErr: "invalid DOCNAV_SOURCE",
		},
		{
			name:    "negative interval",
			cfg:     Config{Source: SourceDeclared, ReloadInterval: -time.Second},
			wantErr: "DOCNAV_RELOAD_INTERVAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestRedacted(t *testing.T) {
	cfg := &Config{RedisUser: "admin", RedisPassword: "secret", RedisAddr: "db:6379"}

	r := cfg.Redacted()

	if r.RedisPassword == "secret" || r.RedisUser == "admin" {
		t.Errorf("Redacted() leaked credentials: %+v", r)
	}
	if r.RedisAddr != "db:6379" {
		t.Errorf("Redacted() RedisAddr = %q, want db:6379", r.RedisAddr)
	}
	if cfg.RedisPassword != "secret" {
		t.Error("Redacted() modified the receiver")
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{name: "valid duration", value: "5s", def: time.Second, expected: 5 * time.Second},
		{name: "invalid duration falls back", value: "soon", def: time.Second, expected: time.Second},
		{name: "unset uses default", value: "", def: 2 * time.Minute, expected: 2 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			if got := mustDuration("TEST_DURATION", tt.def); got != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      bool
		expected bool
	}{
		{name: "true", value: "true", def: false, expected: true},
		{name: "numeric false", value: "0", def: true, expected: false},
		{name: "invalid falls back", value: "maybe", def: true, expected: true},
		{name: "unset uses default", value: "", def: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)
			if got := mustBool("TEST_BOOL", tt.def); got != tt.expected {
				t.Errorf("mustBool() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "single", input: "docs.example.com", expected: []string{"docs.example.com"}},
		{name: "spaces and quotes", input: ` "a.com" , 'b.com',c.com `, expected: []string{"a.com", "b.com", "c.com"}},
		{name: "blank items dropped", input: "a,, ,b", expected: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitAndTrim(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("splitAndTrim(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
