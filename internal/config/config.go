package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port         string
	DatabaseURL  string
	DBMaxConns   int
	AllowOrigins []string
	AdminOrigin  string

	JWTSecret       string
	AdminJWTSecret  string
	SessionTTL      time.Duration
	AdminSessionTTL time.Duration
	GoogleAudience  string

	LogLevel        string
	LogFormat       string
	LogFile         string
	LogstashTCPAddr string

	MinIOEndpoint      string
	MinIOAccessKey     string
	MinIOSecretKey     string
	MinIOUseSSL        bool
	MinIOBucketMedia   string
	MinIOBucketProfile string
	MediaPublicURL     string
	UploadMaxBytes     int64
	VideoMaxBytes      int64
	ImageMaxDimension  int
	FFMPEGPath         string

	RatingReconcileInterval time.Duration

	AdminSeedUsername string
	AdminSeedPassword string
	AdminSeedRole     string
}

// Load reads .env (when present) and the environment. Missing required values
// panic, matching how the server refuses to start half configured.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Debug(".env file not loaded")
	}

	jwtSecret := must("JWT_SECRET")

	return Config{
		Port:         getenv("PORT", "3000"),
		DatabaseURL:  must("DATABASE_URL"),
		DBMaxConns:   getint("DB_MAX_CONNS", 20),
		AllowOrigins: splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		AdminOrigin:  getenv("ADMIN_ORIGIN", ""),

		JWTSecret:       jwtSecret,
		AdminJWTSecret:  getenv("ADMIN_JWT_SECRET", jwtSecret),
		SessionTTL:      getduration("SESSION_TTL", 7*24*time.Hour),
		AdminSessionTTL: getduration("ADMIN_SESSION_TTL", 8*time.Hour),
		GoogleAudience:  getenv("GOOGLE_AUDIENCE", ""),

		LogLevel:        getenv("LOG_LEVEL", "info"),
		LogFormat:       getenv("LOG_FORMAT", "json"),
		LogFile:         getenv("LOG_FILE", ""),
		LogstashTCPAddr: getenv("LOGSTASH_TCP_ADDR", ""),

		MinIOEndpoint:      getenv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey:     getenv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:     getenv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:        getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketMedia:   getenv("MINIO_BUCKET_MEDIA", "motour-media"),
		MinIOBucketProfile: getenv("MINIO_BUCKET_PROFILE", "motour-profile"),
		MediaPublicURL:     getenv("MEDIA_PUBLIC_URL", ""),
		UploadMaxBytes:     getint64("UPLOAD_MAX_BYTES", 5*1024*1024),
		VideoMaxBytes:      getint64("VIDEO_MAX_BYTES", 50*1024*1024),
		ImageMaxDimension:  getint("IMAGE_MAX_DIMENSION", 2048),
		FFMPEGPath:         getenv("FFMPEG_PATH", "ffmpeg"),

		RatingReconcileInterval: getduration("RATING_RECONCILE_INTERVAL", 0),

		AdminSeedUsername: getenv("ADMIN_SEED_USERNAME", ""),
		AdminSeedPassword: getenv("ADMIN_SEED_PASSWORD", ""),
		AdminSeedRole:     getenv("ADMIN_SEED_ROLE", "superadmin"),
	}
}

// CORSOrigins merges the admin dashboard origin into the allow list.
func (c Config) CORSOrigins() []string {
	origins := append([]string{}, c.AllowOrigins...)
	if c.AdminOrigin == "" {
		return origins
	}
	for _, o := range origins {
		if o == "*" || o == c.AdminOrigin {
			return origins
		}
	}
	return append(origins, c.AdminOrigin)
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v, err := strconv.Atoi(getenv(k, "")); err == nil && v > 0 {
		return v
	}
	return d
}

func getint64(k string, d int64) int64 {
	if v, err := strconv.ParseInt(getenv(k, ""), 10, 64); err == nil && v > 0 {
		return v
	}
	return d
}

func getduration(k string, d time.Duration) time.Duration {
	raw := getenv(k, "")
	if raw == "" {
		return d
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		logrus.WithField("key", k).WithError(err).Warn("invalid duration, using default")
		return d
	}
	return v
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
