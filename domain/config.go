package domain

// Config represents project config
type Config struct {
	PostgresConfig
	S3Config

	EnableCPUProfiler bool `env:"ENABLE_CPU_PROFILER"`
	EnablePostgres    bool `env:"ENABLE_POSTGRES"`
	EnableS3          bool `env:"ENABLE_S3"`

	CPUProfileFile string `env:"CPU_PROFILE_FILE" envDefault:"profile_cpu.prof"`

	GraphiteHost string `env:"GRAPHITE_HOST"`

	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	CacheTTLSeconds int `env:"CACHE_TTL_SECONDS" envDefault:"300"`

	DefaultQuantum int `env:"DEFAULT_QUANTUM" envDefault:"2"`

	CertFile    string `env:"CERT_FILE"`
	CertKeyFile string `env:"CERT_KEY_FILE"`
}

// PostgresConfig represents config for PostgreSQL Database
type PostgresConfig struct {
	PsqlUser string `env:"POSTGRES_USER"`
	PsqlPass string `env:"POSTGRES_PASSWORD"`
	DbName   string `env:"POSTGRES_DB"`
	DbHost   string `env:"POSTGRES_HOST" envDefault:"localhost"`
	DbPort   int    `env:"POSTGRES_PORT" envDefault:"5432"`
}

// S3Config represents config for S3 Client
type S3Config struct {
	AccessKey string `env:"AWS_ACCESS_KEY"`
	SecretKey string `env:"AWS_SECRET_KEY"`
	Region    string `env:"AWS_S3_REGION"`
	Bucket    string `env:"AWS_S3_BUCKET"`
}
