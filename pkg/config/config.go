package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación. Se construye una sola vez al arrancar
// y se pasa explícitamente a los componentes que la necesitan.
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
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
	AutoMigrate bool // aplica las migraciones embebidas al arrancar
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

// JWTConfig configuración de JWT. Con PrivateKeyPath/PublicKeyPath se firma RS256;
// sin llaves se usa HS256 con Secret.
type JWTConfig struct {
	Secret         string
	PrivateKeyPath string
	PublicKeyPath  string
	Issuer         string
	Audience       string
	Expiration     int // minutos
}

// UsesRSA indica si hay par de llaves configurado.
func (c JWTConfig) UsesRSA() bool {
	return c.PrivateKeyPath != "" || c.PublicKeyPath != ""
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host         string
	Port         int
	AllowOrigins string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig configuración del caché de catálogos. Addr vacío desactiva el caché.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
}

// Enabled indica si hay Redis configurado.
func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.Addr) != ""
}

// RateLimitConfig límites del endpoint de login (por IP).
type RateLimitConfig struct {
	LoginPerMinute int
	LoginBurst     int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// .env se carga primero con godotenv; las variables ya definidas en el entorno no se pisan.
func Load() (*Config, error) {
	_ = godotenv.Load() // ignoramos error si no existe

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "presales-crm"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "presales_crm"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", false),
		},
		JWT: JWTConfig{
			Secret:         getString(v, "JWT_SECRET", ""),
			PrivateKeyPath: getString(v, "JWT_PRIVATE_KEY_PATH", ""),
			PublicKeyPath:  getString(v, "JWT_PUBLIC_KEY_PATH", ""),
			Issuer:         getString(v, "JWT_ISSUER", ""),
			Audience:       getString(v, "JWT_AUDIENCE", ""),
			Expiration:     getInt(v, "JWT_EXPIRATION_MINUTES", 120),
		},
		HTTP: HTTPConfig{
			Host:         getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:         getInt(v, "HTTP_PORT", 5000),
			AllowOrigins: getString(v, "HTTP_ALLOW_ORIGINS", "*"),
		},
		Redis: RedisConfig{
			Addr:       getString(v, "REDIS_ADDR", ""),
			Password:   getString(v, "REDIS_PASSWORD", ""),
			DB:         getInt(v, "REDIS_DB", 0),
			TTLSeconds: getInt(v, "REDIS_TTL_SECONDS", 300),
		},
		RateLimit: RateLimitConfig{
			LoginPerMinute: getInt(v, "LOGIN_RATE_PER_MINUTE", 10),
			LoginBurst:     getInt(v, "LOGIN_RATE_BURST", 5),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if !c.JWT.UsesRSA() && c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET o JWT_PRIVATE_KEY_PATH/JWT_PUBLIC_KEY_PATH requeridos")
	}
	if c.JWT.UsesRSA() && (c.JWT.PrivateKeyPath == "" || c.JWT.PublicKeyPath == "") {
		return fmt.Errorf("config: se requieren ambas llaves JWT (privada y pública)")
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

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
