package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Store    StoreConfig
	DB       DBConfig
	Email    EmailConfig
	Business BusinessConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string // lista separada por comas
	SwaggerFile string // vacío = sin /docs
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Store drivers soportados.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// StoreConfig selección del almacenamiento.
type StoreConfig struct {
	Driver string // postgres | memory
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// Email providers soportados.
const (
	EmailProviderResend = "resend"
	EmailProviderSMTP   = "smtp"
	EmailProviderNone   = "none"
)

// EmailConfig proveedor de correo saliente.
type EmailConfig struct {
	Provider      string // resend | smtp | none
	From          string
	ResendAPIKey  string
	ResendBaseURL string
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPassword  string
	RateLimit     string // formato ulule/limiter, ej. "20-M"
}

// BusinessConfig datos del negocio que aparecen en documentos.
type BusinessConfig struct {
	Name string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// .env se carga primero en el entorno del proceso sin pisar variables ya definidas.
func Load() (*Config, error) {
	_ = godotenv.Load() // ignoramos error si no existe

	v := viper.New()

	// Opcional: config.env en . o ./config
	v.SetConfigName("config")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "clientdesk-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "PORT", 4000),
			CORSOrigins: getString(v, "CORS_ORIGINS", "http://localhost:5173"),
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getString(v, "STORE_DRIVER", StoreDriverPostgres)),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "clientdesk"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
		},
		Email: EmailConfig{
			Provider:      strings.ToLower(getString(v, "EMAIL_PROVIDER", EmailProviderResend)),
			From:          getString(v, "EMAIL_FROM", ""),
			ResendAPIKey:  getString(v, "RESEND_API_KEY", ""),
			ResendBaseURL: getString(v, "RESEND_BASE_URL", "https://api.resend.com"),
			SMTPHost:      getString(v, "SMTP_HOST", ""),
			SMTPPort:      getInt(v, "SMTP_PORT", 587),
			SMTPUser:      getString(v, "SMTP_USER", ""),
			SMTPPassword:  getString(v, "SMTP_PASSWORD", ""),
			RateLimit:     getString(v, "EMAIL_RATE_LIMIT", "20-M"),
		},
		Business: BusinessConfig{
			Name: getString(v, "BUSINESS_NAME", "Tax & Financial Services"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER %q no soportado (postgres|memory)", c.Store.Driver)
	}
	switch c.Email.Provider {
	case EmailProviderResend, EmailProviderSMTP, EmailProviderNone:
	default:
		return fmt.Errorf("EMAIL_PROVIDER %q no soportado (resend|smtp|none)", c.Email.Provider)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("PORT %d fuera de rango", c.HTTP.Port)
	}
	if c.DB.MaxConns <= 0 {
		c.DB.MaxConns = 10
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
