package config

type App struct {
	Port        string `yaml:"port" env:"APP_PORT" default:"8080"`
	DatabaseURL string `yaml:"databaseURL" env:"DATABASE_URL,required"`
	JWTSecret   string `yaml:"jwtSecret" env:"JWT_SECRET" default:"local_dev_secret"`
	Env         string `yaml:"env" env:"APP_ENV" default:"dev"`
	LogLevel    string `yaml:"logLevel" env:"LOG_LEVEL" default:"info"`

	RedisAddr     string `yaml:"redisAddr" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"redisPassword" env:"REDIS_PASSWORD"`

	Minio Minio `yaml:"minio"`
	SMTP  SMTP  `yaml:"smtp"`

	// PricingTierPolicy is smallest-covering or largest-reached.
	PricingTierPolicy string `yaml:"pricingTierPolicy" env:"PRICING_TIER_POLICY" default:"smallest-covering"`
	ResetBaseURL      string `yaml:"resetBaseURL" env:"RESET_BASE_URL" default:"http://localhost:8080/reset-password/"`
	ResetTokenMinutes int    `yaml:"resetTokenMinutes" env:"RESET_TOKEN_MINUTES" default:"30"`
}

type Minio struct {
	Endpoint  string `yaml:"endpoint" env:"MINIO_ENDPOINT"`
	AccessKey string `yaml:"accessKey" env:"MINIO_ACCESS_KEY"`
	SecretKey string `yaml:"secretKey" env:"MINIO_SECRET_KEY"`
	Bucket    string `yaml:"bucket" env:"MINIO_BUCKET" default:"bookrental-statements"`
	UseSSL    bool   `yaml:"useSSL" env:"MINIO_USE_SSL"`
}

// Enabled reports whether statement archiving should be wired.
func (m Minio) Enabled() bool { return m.Endpoint != "" && m.AccessKey != "" && m.SecretKey != "" }

type SMTP struct {
	Host     string `yaml:"host" env:"SMTP_HOST"`
	Port     int    `yaml:"port" env:"SMTP_PORT" default:"587"`
	Username string `yaml:"username" env:"SMTP_USERNAME"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
	From     string `yaml:"from" env:"SMTP_FROM" default:"noreply@bookrental.local"`
}

func (s SMTP) Enabled() bool { return s.Host != "" }
