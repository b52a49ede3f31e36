package internal

import (
	"strings"
	"testing"
	"time"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
	if cfg.OwnerID != "local" {
		t.Errorf("owner id = %q, want local", cfg.OwnerID)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestEditorConfig_Durations(t *testing.T) {
	cfg := EditorConfig{DebounceMS: 400, SSERefreshMS: 2000}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid editor config should pass: %v", err)
	}
	if cfg.Debounce() != 400*time.Millisecond {
		t.Errorf("debounce = %v", cfg.Debounce())
	}
	if cfg.SSERefresh() != 2*time.Second {
		t.Errorf("sse refresh = %v", cfg.SSERefresh())
	}
}

func TestEditorConfig_RejectsZeroDebounce(t *testing.T) {
	cfg := EditorConfig{DebounceMS: 0}
	if err := cfg.Validate(); err == nil {
		t.Fatal("zero debounce should fail validation")
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Editor.Debounce() != 400*time.Millisecond {
		t.Errorf("default debounce = %v", cfg.Editor.Debounce())
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full validation should reach auth section")
	}
}
