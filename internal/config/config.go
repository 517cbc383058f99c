package config

import (
	"os"
	"strconv"
)

type Config struct {
	Addr       string
	CORSOrigin string
	// Storage backend selection: RedisURL wins, then DatabaseURL, then
	// the local SQLite file.
	DBPath      string
	RedisURL    string
	DatabaseURL string
	// Search Configuration - empty URL disables Meilisearch
	MeiliURL       string
	MeiliMasterKey string
	// Revision archive - empty dir disables git history
	ArchiveDir string
	// Asset storage - empty endpoint disables uploads
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

func Load() Config {
	return Config{
		Addr:           getenv("API_ADDR", ":8686"),
		CORSOrigin:     getenv("QUOTEFOLIO_CORS_ORIGIN", "*"),
		DBPath:         getenv("QUOTEFOLIO_DB_PATH", "./data/quotefolio.db"),
		RedisURL:       getenv("REDIS_URL", ""),
		DatabaseURL:    getenv("DATABASE_URL", ""),
		MeiliURL:       getenv("MEILI_URL", ""),
		MeiliMasterKey: getenv("MEILI_MASTER_KEY", ""),
		ArchiveDir:     getenv("QUOTEFOLIO_ARCHIVE_DIR", ""),
		MinioEndpoint:  getenv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getenv("MINIO_BUCKET", "quotefolio-assets"),
		MinioUseSSL:    getenvBool("MINIO_USE_SSL", false),
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
