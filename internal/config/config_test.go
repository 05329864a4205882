package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.LibreTranslate.BaseURL != "https://libretranslate.de" {
		t.Errorf("libretranslate url = %q", cfg.LibreTranslate.BaseURL)
	}
	if cfg.LibreTranslate.Timeout != 10*time.Second {
		t.Errorf("libretranslate timeout = %v", cfg.LibreTranslate.Timeout)
	}
	if cfg.Relay.DetectDefaultLang != "en" || cfg.Relay.STTDefaultLang != "en" {
		t.Errorf("default langs = %q/%q, want en/en", cfg.Relay.DetectDefaultLang, cfg.Relay.STTDefaultLang)
	}
	if cfg.Upload.MaxBytes != 10<<20 {
		t.Errorf("max upload = %d, want 10MiB", cfg.Upload.MaxBytes)
	}
	if len(cfg.Relay.SupportedLangs) != 0 {
		t.Errorf("whitelist = %v, want disabled by default", cfg.Relay.SupportedLangs)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SUPPORTED_LANGS", "en, fr ,de")
	t.Setenv("LIBRETRANSLATE_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	want := []string{"en", "fr", "de"}
	if len(cfg.Relay.SupportedLangs) != len(want) {
		t.Fatalf("langs = %v, want %v", cfg.Relay.SupportedLangs, want)
	}
	for i, l := range want {
		if cfg.Relay.SupportedLangs[i] != l {
			t.Errorf("langs[%d] = %q, want %q", i, cfg.Relay.SupportedLangs[i], l)
		}
	}
	if cfg.LibreTranslate.Timeout != 3*time.Second {
		t.Errorf("timeout = %v, want 3s", cfg.LibreTranslate.Timeout)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid SERVER_PORT")
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("WHISPER_BASE_URL", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error without any speech-to-text backend")
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}
