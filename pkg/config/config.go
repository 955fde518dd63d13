package config

import (
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/iancoleman/strcase"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// Config holds the process-wide settings. Values are layered: the defaults
// below, then the YAML file at $CONFIG_FILE, then environment variables
// (DATABASE_FILE_PATH, JWT_SECRET, ...).
type Config struct {
	DatabaseBusyTimeout       time.Duration `koanf:"database_busy_timeout"`
	DatabaseConnectRetryCount int           `koanf:"database_connect_retry_count"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database_connect_retry_delay"`
	DatabaseDebug             bool          `koanf:"database_debug"`
	DatabaseFilePath          string        `koanf:"database_file_path" validate:"required"`
	Environment               string        `koanf:"environment"`
	JWTSecret                 string        `koanf:"jwt_secret" validate:"required"`
	ServerHost                string        `koanf:"server_host"`
	ServerPort                int           `koanf:"server_port"`
	StaticDir                 string        `koanf:"static_dir"`
	TokenExpiry               time.Duration `koanf:"token_expiry"`
}

const (
	configFileENV     = "CONFIG_FILE"
	defaultConfigFile = "config.yaml"
)

func defaults() *Config {
	return &Config{
		DatabaseBusyTimeout:       5 * time.Second,
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		Environment:               "development",
		ServerHost:                "0.0.0.0",
		ServerPort:                3689,
		TokenExpiry:               24 * time.Hour,
	}
}

func New() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load defaults")
	}

	path := os.Getenv(configFileENV)
	if path == "" {
		path = defaultConfigFile
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file %s", path)
		}
	}

	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load environment variables")
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewForTest returns a config suitable for tests: an in-memory database and a
// fixed signing secret.
func NewForTest() *Config {
	cfg := defaults()
	cfg.DatabaseBusyTimeout = time.Second
	cfg.DatabaseConnectRetryCount = 1
	cfg.DatabaseConnectRetryDelay = 0
	cfg.DatabaseFilePath = ":memory:"
	cfg.Environment = "test"
	cfg.JWTSecret = "test-secret"
	cfg.ServerHost = "127.0.0.1"
	return cfg
}

func (cfg *Config) validate() error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.WithStack(err)
	}

	missing := make([]string, 0, len(verrs))
	t := reflect.TypeOf(*cfg)
	for _, fe := range verrs {
		key := toSnakeCase(fe.StructField())
		if f, ok := t.FieldByName(fe.StructField()); ok {
			key = f.Tag.Get("koanf")
		}
		missing = append(missing, strings.ToUpper(key)+" ("+key+")")
	}
	return errors.Errorf("missing required config: %s", strings.Join(missing, ", "))
}

func toSnakeCase(s string) string {
	return strcase.ToSnake(s)
}
