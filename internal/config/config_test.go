package config

import (
	"os"
	"path/filepath"
	"testing"

	"undercover-local/internal/service/game"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "app_config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"host": "0.0.0.0",
		"port": 9000,
		"log_level": "debug",
		"locale": "en-US",
		"default_settings": {"player_count": 8, "undercover_count": 2, "mr_white_count": 1},
		"word_pairs": [
			{"civilian": "猫", "undercover": "狗"},
			{"civilian": "茶", "undercover": "咖啡"}
		]
	}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Addr() != "0.0.0.0:9000" {
		t.Fatalf("unexpected addr %q", cfg.Addr())
	}
	if cfg.LogLevel != "debug" || cfg.Locale != "en-US" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	want := game.Settings{PlayerCount: 8, UndercoverCount: 2, MrWhiteCount: 1}
	if cfg.DefaultSettings != want {
		t.Fatalf("want settings %+v, got %+v", want, cfg.DefaultSettings)
	}

	if len(cfg.WordPairs) != 2 || cfg.WordPairs[1] != (game.WordPair{Civilian: "茶", Undercover: "咖啡"}) {
		t.Fatalf("unexpected word pairs %+v", cfg.WordPairs)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{}`))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Addr() != "127.0.0.1:8080" || cfg.LogLevel != "info" || cfg.Locale != "zh-CN" || cfg.StaticDir != "" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.DefaultSettings != game.DefaultSettings() {
		t.Fatalf("want default settings, got %+v", cfg.DefaultSettings)
	}
	if len(cfg.WordPairs) != 0 {
		t.Fatalf("want no custom word pairs, got %d", len(cfg.WordPairs))
	}
}

func TestLoadConfig_ClampsDefaultSettings(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{
		"default_settings": {"player_count": 40, "undercover_count": 0, "mr_white_count": 3}
	}`))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	want := game.Settings{PlayerCount: game.MAX_PLAYERS, UndercoverCount: game.MIN_UNDERCOVER, MrWhiteCount: game.MAX_MR_WHITE}
	if cfg.DefaultSettings != want {
		t.Fatalf("want %+v, got %+v", want, cfg.DefaultSettings)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.json") },
		},
		{
			name: "malformed json",
			path: func(t *testing.T) string { return writeConfig(t, `{"port": `) },
		},
		{
			name: "port out of range",
			path: func(t *testing.T) string { return writeConfig(t, `{"port": 70000}`) },
		},
		{
			name: "port zero",
			path: func(t *testing.T) string { return writeConfig(t, `{"port": 0}`) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(tt.path(t)); err == nil {
				t.Fatalf("want error")
			}
		})
	}
}
