package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "3001" {
		t.Errorf("Expected default port 3001, got %s", cfg.Port)
	}
	if cfg.MaxToolRounds != 8 {
		t.Errorf("Expected default max tool rounds 8, got %d", cfg.MaxToolRounds)
	}
	if cfg.MaxTokens != 4096 {
		t.Errorf("Expected default max tokens 4096, got %d", cfg.MaxTokens)
	}
	if cfg.DuesCheckInterval != 24*time.Hour {
		t.Errorf("Expected default dues interval 24h, got %v", cfg.DuesCheckInterval)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ARTHUR_MAX_TOOL_ROUNDS", "4")
	t.Setenv("DUES_SCHEDULER_ENABLED", "true")
	t.Setenv("DUES_CHECK_INTERVAL", "1h")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("PORT override ignored, got %s", cfg.Port)
	}
	if cfg.MaxToolRounds != 4 {
		t.Errorf("ARTHUR_MAX_TOOL_ROUNDS override ignored, got %d", cfg.MaxToolRounds)
	}
	if !cfg.DuesSchedulerEnabled {
		t.Error("DUES_SCHEDULER_ENABLED override ignored")
	}
	if cfg.DuesCheckInterval != time.Hour {
		t.Errorf("DUES_CHECK_INTERVAL override ignored, got %v", cfg.DuesCheckInterval)
	}
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("ARTHUR_MAX_TOKENS", "lots")
	t.Setenv("DUES_SCHEDULER_ENABLED", "definitely")

	cfg := Load()
	if cfg.MaxTokens != 4096 {
		t.Errorf("Unparseable int should fall back to default, got %d", cfg.MaxTokens)
	}
	if cfg.DuesSchedulerEnabled {
		t.Error("Unparseable bool should fall back to default")
	}
}

func TestApplyModelFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	content := "model: claude-3-5-sonnet-20241022\nmax_tokens: 2048\nmax_tool_rounds: 6\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Load()
	if err := cfg.ApplyModelFile(path); err != nil {
		t.Fatalf("ApplyModelFile failed: %v", err)
	}
	if cfg.Model != "claude-3-5-sonnet-20241022" {
		t.Errorf("Model not applied: %s", cfg.Model)
	}
	if cfg.MaxTokens != 2048 || cfg.MaxToolRounds != 6 {
		t.Errorf("Limits not applied: %d tokens, %d rounds", cfg.MaxTokens, cfg.MaxToolRounds)
	}
	if cfg.AnthropicBaseURL != "https://api.anthropic.com" {
		t.Errorf("Unset file fields must not clobber config, got %s", cfg.AnthropicBaseURL)
	}
}

func TestApplyModelFile_MissingAndEmpty(t *testing.T) {
	cfg := Load()
	if err := cfg.ApplyModelFile(""); err != nil {
		t.Errorf("Empty path should be a no-op, got %v", err)
	}
	if err := cfg.ApplyModelFile(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Errorf("Missing file should be a no-op, got %v", err)
	}
}

func TestApplyModelFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	if err := os.WriteFile(path, []byte("max_tokens: lots\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Load()
	if err := cfg.ApplyModelFile(path); err == nil {
		t.Error("Malformed YAML should be reported")
	}
}
