package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr       string
	Port             string
	DBType           string
	DatabasePath     string
	DatabaseURL      string
	SessionSecret    string
	GinMode          string
	TemplateDir      string
	StaticDir        string
	UploadDir        string
	UploadURLPath    string
	MaxUploadBytes   int64
	AdminInitAllowed bool
	AutoInit         bool
	AdminUsername    string
	AdminPassword    string
	SiteBaseURL      string
}

// LoadDotEnv 读取 .env 文件（如果存在），已有环境变量优先。
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	existing := make([]string, 0, len(paths))
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := envOr("PORT", "5000")

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	dbType := strings.ToLower(strings.TrimSpace(os.Getenv("DB_TYPE")))
	if dbType == "" {
		dbType = dbTypeFromURL(databaseURL)
	}

	maxUploadMB := envInt("MAX_UPLOAD_MB", 16)
	if maxUploadMB <= 0 {
		maxUploadMB = 16
	}

	return AppConfig{
		ListenAddr:       listenAddr,
		Port:             port,
		DBType:           dbType,
		DatabasePath:     envOr("DATABASE_PATH", "data/bellari.db"),
		DatabaseURL:      databaseURL,
		SessionSecret:    envOr("SESSION_SECRET", "bellari-dev-secret"),
		GinMode:          envOr("GIN_MODE", "release"),
		TemplateDir:      envOr("TEMPLATE_DIR", "web/template"),
		StaticDir:        envOr("STATIC_DIR", "web/static"),
		UploadDir:        envOr("UPLOAD_DIR", "web/static/uploads"),
		UploadURLPath:    strings.TrimRight(envOr("UPLOAD_URL_PATH", "/static/uploads"), "/"),
		MaxUploadBytes:   int64(maxUploadMB) * 1024 * 1024,
		AdminInitAllowed: envBool("ADMIN_INIT_ALLOWED", false),
		AutoInit:         envBool("AUTO_INIT", true),
		AdminUsername:    strings.TrimSpace(os.Getenv("ADMIN_USERNAME")),
		AdminPassword:    strings.TrimSpace(os.Getenv("ADMIN_PASSWORD")),
		SiteBaseURL:      strings.TrimRight(envOr("SITE_BASE_URL", "https://bellariconcept.com"), "/"),
	}
}

func dbTypeFromURL(databaseURL string) string {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return "postgres"
	case strings.HasPrefix(databaseURL, "sqlserver://"):
		return "sqlserver"
	case strings.HasPrefix(databaseURL, "mysql://"):
		return "mysql"
	default:
		return "sqlite"
	}
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envBool(key string, fallback bool) bool {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}
