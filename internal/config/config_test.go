package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"PORT", "GIN_MODE", "LOG_LEVEL", "LOG_JSON", "LOG_FILE", "TOKEN_API", "TOKEN_API_HASH",
		"WORKBOOK_PATH", "LAYOUT_FILE", "UPLOAD_RATE_PER_MINUTE", "UPLOAD_BURST", "REPORT_CACHE_TTL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_API", "segredo")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.GinMode != "debug" || cfg.LogLevel != "info" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.UploadRatePerMinute != 10 || cfg.UploadBurst != 3 {
		t.Errorf("unexpected rate defaults: %d/%d", cfg.UploadRatePerMinute, cfg.UploadBurst)
	}
	if cfg.ReportCacheTTL != 10*time.Minute {
		t.Errorf("ReportCacheTTL = %v", cfg.ReportCacheTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_API_HASH", "$2a$10$abc")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_JSON", "true")
	t.Setenv("UPLOAD_RATE_PER_MINUTE", "30")
	t.Setenv("REPORT_CACHE_TTL", "90s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || !cfg.LogJSON || cfg.UploadRatePerMinute != 30 || cfg.ReportCacheTTL != 90*time.Second {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("sem token", func(t *testing.T) {
		clearEnv(t)
		_, err := Load()
		if !errors.Is(err, ErrMissingToken) {
			t.Errorf("expected ErrMissingToken, got %v", err)
		}
	})

	t.Run("inteiro inválido", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TOKEN_API", "x")
		t.Setenv("UPLOAD_BURST", "muitos")
		if _, err := Load(); err == nil {
			t.Error("expected error for invalid UPLOAD_BURST")
		}
	})

	t.Run("duração inválida", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TOKEN_API", "x")
		t.Setenv("REPORT_CACHE_TTL", "-1m")
		if _, err := Load(); err == nil {
			t.Error("expected error for negative REPORT_CACHE_TTL")
		}
	})
}

func TestLoadLayout(t *testing.T) {
	t.Run("caminho vazio usa padrão", func(t *testing.T) {
		l, err := LoadLayout("")
		if err != nil {
			t.Fatalf("LoadLayout: %v", err)
		}
		if l.Sheets.Matriz != "Matriz_Horas" || l.Capacity.HoursColumn != 9 || !l.Stages.ResourceCapacity {
			t.Errorf("unexpected default layout: %+v", l)
		}
	})

	t.Run("arquivo parcial mantém padrões", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "layout.yaml")
		content := `
sheets:
  horas: Capacidad
matrix:
  max_resource_columns: 8
stages:
  resource_capacity: true
  team_capacity: false
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		l, err := LoadLayout(path)
		if err != nil {
			t.Fatalf("LoadLayout: %v", err)
		}
		if l.Sheets.Horas != "Capacidad" || l.Sheets.Proyectos != "Proyectos" {
			t.Errorf("sheets = %+v", l.Sheets)
		}
		if l.Matrix.MaxResourceColumns != 8 || l.Matrix.FirstResourceColumn != 2 {
			t.Errorf("matrix = %+v", l.Matrix)
		}
		if l.Stages.TeamCapacity {
			t.Error("team stage should be disabled")
		}
		if opts := l.MatrixOptions(); opts.MaxResourceColumns != 8 {
			t.Errorf("MatrixOptions = %+v", opts)
		}
	})

	t.Run("campo desconhecido", func(t *testing.T) {
		_, err := ParseLayout([]byte("sheetz:\n  horas: x\n"))
		if !errors.Is(err, ErrInvalidLayout) {
			t.Errorf("expected ErrInvalidLayout, got %v", err)
		}
	})

	t.Run("regra de validação", func(t *testing.T) {
		_, err := ParseLayout([]byte("capacity:\n  hours_column: 0\n"))
		if !errors.Is(err, ErrInvalidLayout) {
			t.Errorf("expected ErrInvalidLayout, got %v", err)
		}
		_, err = ParseLayout([]byte("sheets:\n  matriz: \"\"\n"))
		if !errors.Is(err, ErrInvalidLayout) {
			t.Errorf("expected ErrInvalidLayout for empty sheet name, got %v", err)
		}
	})

	t.Run("arquivo inexistente", func(t *testing.T) {
		_, err := LoadLayout(filepath.Join(t.TempDir(), "nao-existe.yaml"))
		if !errors.Is(err, ErrInvalidLayout) {
			t.Errorf("expected ErrInvalidLayout, got %v", err)
		}
	})
}
