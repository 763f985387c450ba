package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	Upload   UploadConfig
	Storage  StorageConfig
	Security SecurityConfig
	Redis    RedisConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// IsDev indica si la app corre en modo desarrollo.
func (c AppConfig) IsDev() bool { return c.Env == "development" }

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
	AutoMigrate bool // ejecuta migraciones goose al arrancar
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

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string // lista separada por comas
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// UploadConfig límites del pipeline de archivos (fotos y firmas).
type UploadConfig struct {
	Dir          string // directorio en disco
	PublicPath   string // prefijo estático, ej. /uploads
	MaxFileBytes int64
	MaxFiles     int
}

// StorageConfig backend de almacenamiento de archivos: "disk" (por defecto) o "s3".
type StorageConfig struct {
	Driver        string
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
	UsePathStyle  bool
}

// SecurityConfig parámetros de hashing de contraseñas.
type SecurityConfig struct {
	BcryptCost int
}

// RedisConfig conexión opcional a Redis (limitador de intentos de login).
// URL vacío deshabilita el limitador.
type RedisConfig struct {
	URL              string
	LoginMaxAttempts int
	LoginWindow      time.Duration
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, DB_PORT, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "taller-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "taller"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", false),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "taller-api"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			CORSOrigins: getString(v, "CORS_ORIGINS", "http://localhost:5173"),
		},
		Upload: UploadConfig{
			Dir:          getString(v, "UPLOAD_DIR", "./uploads"),
			PublicPath:   getString(v, "UPLOAD_PUBLIC_PATH", "/uploads"),
			MaxFileBytes: int64(getInt(v, "UPLOAD_MAX_FILE_MB", 10)) << 20,
			MaxFiles:     getInt(v, "UPLOAD_MAX_FILES", 20),
		},
		Storage: StorageConfig{
			Driver:        getString(v, "STORAGE_DRIVER", "disk"),
			Bucket:        getString(v, "STORAGE_BUCKET", ""),
			Region:        getString(v, "STORAGE_REGION", "us-east-1"),
			Endpoint:      getString(v, "STORAGE_ENDPOINT", ""),
			AccessKey:     getString(v, "STORAGE_ACCESS_KEY", ""),
			SecretKey:     getString(v, "STORAGE_SECRET_KEY", ""),
			PublicBaseURL: getString(v, "STORAGE_PUBLIC_BASE_URL", ""),
			UsePathStyle:  getBool(v, "STORAGE_USE_PATH_STYLE", true),
		},
		Security: SecurityConfig{
			BcryptCost: getInt(v, "BCRYPT_COST", 10),
		},
		Redis: RedisConfig{
			URL:              getString(v, "REDIS_URL", ""),
			LoginMaxAttempts: getInt(v, "LOGIN_MAX_ATTEMPTS", 10),
			LoginWindow:      time.Duration(getInt(v, "LOGIN_WINDOW_SECONDS", 900)) * time.Second,
		},
	}
}

// Validate aplica las reglas de arranque: si falta un secreto o un límite es inválido, la app no inicia.
func (c *Config) Validate() error {
	var problems []string
	if c.JWT.Secret == "" {
		problems = append(problems, "JWT_SECRET es requerido")
	}
	if c.JWT.Expiration <= 0 {
		problems = append(problems, "JWT_EXPIRATION_MINUTES debe ser mayor que 0")
	}
	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		problems = append(problems, "BCRYPT_COST debe estar entre 4 y 31")
	}
	if c.Upload.MaxFileBytes <= 0 || c.Upload.MaxFiles <= 0 {
		problems = append(problems, "límites de carga inválidos")
	}
	switch c.Storage.Driver {
	case "disk":
		if c.Upload.Dir == "" {
			problems = append(problems, "UPLOAD_DIR es requerido")
		}
	case "s3":
		if c.Storage.Bucket == "" || c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
			problems = append(problems, "STORAGE_BUCKET, STORAGE_ACCESS_KEY y STORAGE_SECRET_KEY son requeridos con STORAGE_DRIVER=s3")
		}
	default:
		problems = append(problems, fmt.Sprintf("STORAGE_DRIVER desconocido: %q", c.Storage.Driver))
	}
	if len(problems) > 0 {
		return fmt.Errorf("configuración inválida: %s", strings.Join(problems, "; "))
	}
	return nil
}

// CORSOriginList devuelve los orígenes permitidos ya recortados.
func (c HTTPConfig) CORSOriginList() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
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
			n, err := strconv.Atoi(v.GetString(key))
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
