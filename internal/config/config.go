package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingJWTSecret indica que o servidor subiria em produção sem segredo de assinatura
var ErrMissingJWTSecret = errors.New("JWT_SECRET é obrigatório em modo release")

// Config agrupa as configurações da aplicação
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Business BusinessConfig `mapstructure:"business"`
	Export   ExportConfig   `mapstructure:"export"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig contém as configurações do servidor HTTP
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Address retorna host:porta para o listener
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig contém as configurações para conexão com o PostgreSQL
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConnections  int32         `mapstructure:"max_connections"`
	MinConnections  int32         `mapstructure:"min_connections"`
	MaxConnLifetime time.Duration `mapstructure:"max_lifetime"`
}

// ConnectionString retorna a URL de conexão. DB_URL tem precedência sobre os campos individuais.
func (c DatabaseConfig) ConnectionString() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// AuthConfig contém o segredo e a validade dos tokens
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// BusinessConfig define o fuso horário fixo da operação
type BusinessConfig struct {
	UTCOffsetHours int `mapstructure:"utc_offset_hours"`
}

// ExportConfig contém os limites da exportação de relatórios
type ExportConfig struct {
	Timeout    time.Duration `mapstructure:"timeout"`
	PageHeight float64       `mapstructure:"page_height"`
	PageMargin float64       `mapstructure:"page_margin"`
}

// LogConfig contém o nível e o formato dos logs
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("db.url", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "erp_fluvial")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_connections", 10)
	v.SetDefault("db.min_connections", 1)
	v.SetDefault("db.max_lifetime", time.Hour)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 8*time.Hour)

	v.SetDefault("business.utc_offset_hours", -4)

	v.SetDefault("export.timeout", 30*time.Second)
	v.SetDefault("export.page_height", 792)
	v.SetDefault("export.page_margin", 50)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
}

// Load carrega o arquivo .env (quando existir) e lê a configuração das variáveis de ambiente.
// As chaves seguem o padrão SECAO_CAMPO, por exemplo SERVER_PORT, DB_HOST e AUTH_JWT_SECRET.
func Load(envFiles ...string) (*Config, []error) {
	var warnings []error
	if err := godotenv.Load(envFiles...); err != nil {
		warnings = append(warnings, fmt.Errorf("arquivo .env não encontrado: %w", err))
	}

	cfg, err := FromViper(viper.New())
	if err != nil {
		return nil, append(warnings, err)
	}
	return cfg, warnings
}

// FromViper lê a configuração de uma instância de viper já preparada
func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// aliases aceitos por compatibilidade com instalações existentes
	_ = v.BindEnv("auth.jwt_secret", "AUTH_JWT_SECRET", "JWT_SECRET")
	_ = v.BindEnv("db.url", "DB_URL", "DATABASE_URL")
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("erro ao interpretar configuração: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate verifica combinações inválidas
func (c *Config) Validate() error {
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("modo de servidor inválido: %q", c.Server.Mode)
	}
	if c.Server.Mode == "release" && c.Auth.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	if c.Auth.JWTSecret == "" {
		c.Auth.JWTSecret = "erp-fluvial-dev-secret"
	}
	if c.Business.UTCOffsetHours < -12 || c.Business.UTCOffsetHours > 14 {
		return fmt.Errorf("deslocamento de fuso inválido: %d", c.Business.UTCOffsetHours)
	}
	if c.Export.PageHeight <= 2*c.Export.PageMargin {
		return fmt.Errorf("altura de página %.0f incompatível com margem %.0f", c.Export.PageHeight, c.Export.PageMargin)
	}
	return nil
}
