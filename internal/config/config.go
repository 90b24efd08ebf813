package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	DatabaseURL string // LINGOD_DATABASE_URL (required)
	HTTPAddr    string // LINGOD_HTTP_ADDR (default ":8080")
	NATSURL     string // LINGOD_NATS_URL (optional, empty = no events)
	AuthToken   string // LINGOD_AUTH_TOKEN (optional, empty = auth disabled)
	RoutePrefix string // LINGOD_ROUTE_PREFIX (default "/translations")

	CacheTTL time.Duration // LINGOD_CACHE_TTL (default 24h; 0 = default)

	// UseDatabaseLoader selects the runtime read path: the database-backed
	// loader (default) or the generated snapshot files.
	UseDatabaseLoader bool // LINGOD_USE_DATABASE_LOADER (default true)

	// Snapshot settings
	SnapshotDir        string // LINGOD_SNAPSHOT_DIR (default "./lang")
	GenerateFiles      bool   // LINGOD_GENERATE_JSON_FILES (default false)
	SnapshotS3Bucket   string // LINGOD_SNAPSHOT_S3_BUCKET (enables S3 mirror when set)
	SnapshotS3Prefix   string // LINGOD_SNAPSHOT_S3_PREFIX (default "lang")
	SnapshotS3Region   string // LINGOD_SNAPSHOT_S3_REGION (default "us-east-1")
	SnapshotS3Endpoint string // LINGOD_SNAPSHOT_S3_ENDPOINT (custom endpoint for MinIO)
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:        os.Getenv("LINGOD_DATABASE_URL"),
		HTTPAddr:           envOrDefault("LINGOD_HTTP_ADDR", ":8080"),
		NATSURL:            os.Getenv("LINGOD_NATS_URL"),
		AuthToken:          os.Getenv("LINGOD_AUTH_TOKEN"),
		RoutePrefix:        envOrDefault("LINGOD_ROUTE_PREFIX", "/translations"),
		SnapshotDir:        envOrDefault("LINGOD_SNAPSHOT_DIR", "./lang"),
		SnapshotS3Bucket:   os.Getenv("LINGOD_SNAPSHOT_S3_BUCKET"),
		SnapshotS3Prefix:   envOrDefault("LINGOD_SNAPSHOT_S3_PREFIX", "lang"),
		SnapshotS3Region:   envOrDefault("LINGOD_SNAPSHOT_S3_REGION", "us-east-1"),
		SnapshotS3Endpoint: os.Getenv("LINGOD_SNAPSHOT_S3_ENDPOINT"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("LINGOD_DATABASE_URL is required")
	}
	if !strings.HasPrefix(c.RoutePrefix, "/") {
		c.RoutePrefix = "/" + c.RoutePrefix
	}
	c.RoutePrefix = strings.TrimRight(c.RoutePrefix, "/")

	var err error
	if c.GenerateFiles, err = envBool("LINGOD_GENERATE_JSON_FILES", false); err != nil {
		return nil, err
	}
	if c.UseDatabaseLoader, err = envBool("LINGOD_USE_DATABASE_LOADER", true); err != nil {
		return nil, err
	}

	ttlStr := envOrDefault("LINGOD_CACHE_TTL", "24h")
	d, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("LINGOD_CACHE_TTL: %w", err)
	}
	if d < 0 {
		return nil, fmt.Errorf("LINGOD_CACHE_TTL: must not be negative")
	}
	c.CacheTTL = d

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true, nil
	case "0", "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("%s: invalid value %q", key, v)
}
