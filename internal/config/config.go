package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config armazena as configurações da aplicação
type Config struct {
	Port    string
	GinMode string

	LogLevel string
	LogJSON  bool
	LogFile  string

	// TokenAPI protege os endpoints de carga; TokenAPIHash é a alternativa em bcrypt
	TokenAPI     string
	TokenAPIHash string

	// WorkbookPath é carregado na inicialização e em /workbooks/reload
	WorkbookPath string
	LayoutFile   string

	UploadRatePerMinute int
	UploadBurst         int
	ReportCacheTTL      time.Duration
}

// ErrMissingToken indica que um token obrigatório não foi configurado
var ErrMissingToken = errors.New("token obrigatório não configurado")

// Load carrega as configurações do ambiente
func Load() (*Config, error) {
	// Tenta carregar .env de múltiplos locais
	_ = godotenv.Load()          // ./.env
	_ = godotenv.Load("../.env") // ../.env (rodando de cmd/)

	cfg := &Config{
		Port:         os.Getenv("PORT"),
		GinMode:      os.Getenv("GIN_MODE"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
		LogFile:      os.Getenv("LOG_FILE"),
		TokenAPI:     os.Getenv("TOKEN_API"),
		TokenAPIHash: os.Getenv("TOKEN_API_HASH"),
		WorkbookPath: os.Getenv("WORKBOOK_PATH"),
		LayoutFile:   os.Getenv("LAYOUT_FILE"),
	}

	// Validações obrigatórias
	if cfg.TokenAPI == "" && cfg.TokenAPIHash == "" {
		return nil, fmt.Errorf("%w: TOKEN_API ou TOKEN_API_HASH", ErrMissingToken)
	}

	var err error
	if cfg.LogJSON, err = envBool("LOG_JSON", false); err != nil {
		return nil, err
	}
	if cfg.UploadRatePerMinute, err = envInt("UPLOAD_RATE_PER_MINUTE", 10); err != nil {
		return nil, err
	}
	if cfg.UploadBurst, err = envInt("UPLOAD_BURST", 3); err != nil {
		return nil, err
	}
	if cfg.ReportCacheTTL, err = envDuration("REPORT_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}

	// Defaults
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if cfg.GinMode == "" {
		cfg.GinMode = "debug"
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

func envBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s inválido: %w", key, err)
	}
	return b, nil
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s deve ser um inteiro positivo: %q", key, v)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s deve ser uma duração positiva (ex: 10m): %q", key, v)
	}
	return d, nil
}
