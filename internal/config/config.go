package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config aggregates application settings that may be sourced from files or environment variables.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Oracle   OracleConfig   `mapstructure:"oracle"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Mail     MailConfig     `mapstructure:"mail"`
	Hiring   HiringConfig   `mapstructure:"hiring"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Port int `mapstructure:"port"`
	// AllowedOrigins is a comma-separated list for WebSocket origin checks.
	// Empty means same-host only.
	AllowedOrigins string `mapstructure:"allowed_origins"`
}

// DatabaseConfig contains connection options for PostgreSQL.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig contains Redis connection options.
type RedisConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// MinIOConfig contains connection options for MinIO/S3-compatible storage.
type MinIOConfig struct {
	Endpoint         string `mapstructure:"endpoint"`
	PublicEndpoint   string `mapstructure:"public_endpoint"`
	AccessKeyID      string `mapstructure:"access_key_id"`
	SecretAccessKey  string `mapstructure:"secret_access_key"`
	UseSSL           bool   `mapstructure:"use_ssl"`
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	BucketLookup     string `mapstructure:"bucket_lookup"`
	AutoCreateBucket bool   `mapstructure:"auto_create_bucket"`
}

// AuthConfig contains JWT signing material, token lifetimes and login
// throttling settings.
type AuthConfig struct {
	PrivateKeyPath        string `mapstructure:"private_key_path"`
	PublicKeyPath         string `mapstructure:"public_key_path"`
	AccessTTLMinute       int    `mapstructure:"access_ttl_minute"`
	RefreshTTLHour        int    `mapstructure:"refresh_ttl_hour"`
	LoginRateLimitPerHour int    `mapstructure:"login_rate_limit_per_hour"`
	LoginLockThreshold    int    `mapstructure:"login_lock_threshold"`
	LoginLockMinutes      int    `mapstructure:"login_lock_minutes"`
	CookieDomain          string `mapstructure:"cookie_domain"`
}

// OracleConfig contains the Gemini assessment model settings.
type OracleConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// CalendarConfig contains Google Calendar credentials and scheduling limits.
type CalendarConfig struct {
	CredentialsPath          string `mapstructure:"credentials_path"`
	CalendarID               string `mapstructure:"calendar_id"`
	WorkingHourStart         int    `mapstructure:"working_hour_start"`
	WorkingHourEnd           int    `mapstructure:"working_hour_end"`
	InterviewDurationMinutes int    `mapstructure:"interview_duration_minutes"`
}

// MailConfig contains AWS SES sender settings.
type MailConfig struct {
	Region      string `mapstructure:"region"`
	FromEmail   string `mapstructure:"from_email"`
	FromName    string `mapstructure:"from_name"`
	CompanyName string `mapstructure:"company_name"`
}

// HiringConfig contains resume pipeline limits.
type HiringConfig struct {
	MaxCandidates     int    `mapstructure:"max_candidates"`
	MinScoreThreshold int    `mapstructure:"min_score_threshold"`
	MaxUploadBytes    int64  `mapstructure:"max_upload_bytes"`
	MonthlyBatchLimit int    `mapstructure:"monthly_batch_limit"`
	ClamdAddr         string `mapstructure:"clamd_addr"`
}

// AccessTTL returns the access token lifetime as a duration.
func (a AuthConfig) AccessTTL() time.Duration {
	return time.Duration(a.AccessTTLMinute) * time.Minute
}

// RefreshTTL returns the refresh token lifetime as a duration.
func (a AuthConfig) RefreshTTL() time.Duration {
	return time.Duration(a.RefreshTTLHour) * time.Hour
}

// DSN builds a lib/pq compatible connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

// Load reads configuration solely from environment variables (with optional defaults).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", 8080)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "hireflow")
	v.SetDefault("database.user", "hireflow")
	v.SetDefault("database.password", "hireflow")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.public_endpoint", "http://localhost:9000")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket", "resumes")
	v.SetDefault("minio.bucket_lookup", "auto")
	v.SetDefault("minio.auto_create_bucket", true)
	v.SetDefault("auth.private_key_path", "keys/jwt_private.pem")
	v.SetDefault("auth.public_key_path", "keys/jwt_public.pem")
	v.SetDefault("auth.access_ttl_minute", 15)
	v.SetDefault("auth.refresh_ttl_hour", 168)
	v.SetDefault("auth.login_rate_limit_per_hour", 10)
	v.SetDefault("auth.login_lock_threshold", 5)
	v.SetDefault("auth.login_lock_minutes", 15)
	v.SetDefault("oracle.model", "gemini-2.5-flash")
	v.SetDefault("calendar.calendar_id", "primary")
	v.SetDefault("calendar.working_hour_start", 9)
	v.SetDefault("calendar.working_hour_end", 17)
	v.SetDefault("calendar.interview_duration_minutes", 60)
	v.SetDefault("mail.region", "us-east-1")
	v.SetDefault("mail.from_name", "HR Team")
	v.SetDefault("mail.company_name", "Our Company")
	v.SetDefault("hiring.max_candidates", 10)
	v.SetDefault("hiring.min_score_threshold", 50)
	v.SetDefault("hiring.max_upload_bytes", 10*1024*1024)
	v.SetDefault("hiring.monthly_batch_limit", 0)
	v.SetDefault("hiring.clamd_addr", "")
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"api.port":                            "API_PORT",
		"api.allowed_origins":                 "API_ALLOWED_ORIGINS",
		"database.host":                       "DATABASE_HOST",
		"database.port":                       "DATABASE_PORT",
		"database.name":                       "POSTGRES_DB",
		"database.user":                       "POSTGRES_USER",
		"database.password":                   "POSTGRES_PASSWORD",
		"database.sslmode":                    "DATABASE_SSLMODE",
		"redis.host":                          "REDIS_HOST",
		"redis.port":                          "REDIS_PORT",
		"minio.endpoint":                      "MINIO_ENDPOINT",
		"minio.public_endpoint":               "MINIO_PUBLIC_ENDPOINT",
		"minio.region":                        "MINIO_REGION",
		"minio.bucket_lookup":                 "MINIO_BUCKET_LOOKUP",
		"minio.auto_create_bucket":            "MINIO_AUTO_CREATE_BUCKET",
		"minio.access_key_id":                 "MINIO_ACCESS_KEY_ID",
		"minio.secret_access_key":             "MINIO_SECRET_ACCESS_KEY",
		"minio.use_ssl":                       "MINIO_USE_SSL",
		"minio.bucket":                        "MINIO_BUCKET",
		"auth.private_key_path":               "JWT_PRIVATE_KEY_PATH",
		"auth.public_key_path":                "JWT_PUBLIC_KEY_PATH",
		"auth.access_ttl_minute":              "JWT_ACCESS_TTL_MINUTE",
		"auth.refresh_ttl_hour":               "JWT_REFRESH_TTL_HOUR",
		"auth.login_rate_limit_per_hour":      "AUTH_LOGIN_RATE_LIMIT_PER_HOUR",
		"auth.login_lock_threshold":           "AUTH_LOGIN_LOCK_THRESHOLD",
		"auth.login_lock_minutes":             "AUTH_LOGIN_LOCK_MINUTES",
		"auth.cookie_domain":                  "AUTH_COOKIE_DOMAIN",
		"oracle.api_key":                      "GEMINI_API_KEY",
		"oracle.model":                        "GEMINI_MODEL",
		"calendar.credentials_path":           "GOOGLE_CALENDAR_CREDENTIALS_PATH",
		"calendar.calendar_id":                "GOOGLE_CALENDAR_ID",
		"calendar.working_hour_start":         "CALENDAR_WORKING_HOUR_START",
		"calendar.working_hour_end":           "CALENDAR_WORKING_HOUR_END",
		"calendar.interview_duration_minutes": "INTERVIEW_DURATION_MINUTES",
		"mail.region":                         "AWS_SES_REGION",
		"mail.from_email":                     "MAIL_FROM_EMAIL",
		"mail.from_name":                      "MAIL_FROM_NAME",
		"mail.company_name":                   "COMPANY_NAME",
		"hiring.max_candidates":               "HIRING_MAX_CANDIDATES",
		"hiring.min_score_threshold":          "HIRING_MIN_SCORE_THRESHOLD",
		"hiring.max_upload_bytes":             "HIRING_MAX_UPLOAD_BYTES",
		"hiring.monthly_batch_limit":          "HIRING_MONTHLY_BATCH_LIMIT",
		"hiring.clamd_addr":                   "CLAMD_ADDR",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

func validate(cfg Config) error {
	if cfg.API.Port <= 0 {
		return errors.New("api port must be positive")
	}
	if cfg.Database.Host == "" {
		return errors.New("database host is required")
	}
	if cfg.Database.Port <= 0 {
		return errors.New("database port must be positive")
	}
	if cfg.Database.Name == "" {
		return errors.New("database name is required")
	}
	if cfg.Database.User == "" {
		return errors.New("database user is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("database password is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("database sslmode is required")
	}
	if cfg.Redis.Host == "" {
		return errors.New("redis host is required")
	}
	if cfg.Redis.Port <= 0 {
		return errors.New("redis port must be positive")
	}
	if cfg.MinIO.Endpoint == "" {
		return errors.New("minio endpoint is required")
	}
	if cfg.MinIO.AccessKeyID == "" {
		return errors.New("minio access key id is required")
	}
	if cfg.MinIO.SecretAccessKey == "" {
		return errors.New("minio secret access key is required")
	}
	if cfg.MinIO.Bucket == "" {
		return errors.New("minio bucket is required")
	}
	if cfg.MinIO.PublicEndpoint == "" {
		return errors.New("minio public endpoint is required")
	}
	if cfg.Auth.AccessTTLMinute <= 0 {
		return errors.New("access token ttl must be positive")
	}
	if cfg.Auth.RefreshTTLHour <= 0 {
		return errors.New("refresh token ttl must be positive")
	}
	if cfg.Auth.LoginRateLimitPerHour <= 0 {
		return errors.New("login rate limit must be positive")
	}
	if cfg.Auth.LoginLockThreshold <= 0 {
		return errors.New("login lock threshold must be positive")
	}
	if cfg.Auth.LoginLockMinutes <= 0 {
		return errors.New("login lock duration must be positive")
	}
	if cfg.Oracle.APIKey == "" {
		return errors.New("gemini api key is required")
	}
	if cfg.Calendar.WorkingHourStart < 0 || cfg.Calendar.WorkingHourStart > 23 {
		return errors.New("calendar working hour start out of range")
	}
	if cfg.Calendar.WorkingHourEnd <= cfg.Calendar.WorkingHourStart || cfg.Calendar.WorkingHourEnd > 24 {
		return errors.New("calendar working hour end out of range")
	}
	if cfg.Calendar.InterviewDurationMinutes <= 0 {
		return errors.New("interview duration must be positive")
	}
	if cfg.Hiring.MaxCandidates <= 0 {
		return errors.New("max candidates must be positive")
	}
	if cfg.Hiring.MinScoreThreshold < 0 || cfg.Hiring.MinScoreThreshold > 100 {
		return errors.New("min score threshold must be within 0-100")
	}
	if cfg.Hiring.MaxUploadBytes <= 0 {
		return errors.New("max upload bytes must be positive")
	}
	return nil
}
