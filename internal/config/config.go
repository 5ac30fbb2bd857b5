package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Dictionaries DictionariesConfig `mapstructure:"dictionaries"`
	Sessions     SessionsConfig     `mapstructure:"sessions"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Translation  TranslationConfig  `mapstructure:"translation"`
	Templates    TemplatesConfig    `mapstructure:"templates"`
	Outputs      OutputsConfig      `mapstructure:"outputs"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DictionariesConfig lists the dictionary files. When Sources is empty,
// every JSON file in Directory is used.
type DictionariesConfig struct {
	Directory string                   `mapstructure:"directory"`
	Default   string                   `mapstructure:"default"`
	Sources   []DictionarySourceConfig `mapstructure:"sources" validate:"dive"`
}

type DictionarySourceConfig struct {
	Name string `mapstructure:"name" yaml:"name,omitempty"`
	Path string `mapstructure:"path" yaml:"path" validate:"required"`
}

type SessionsConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds" validate:"min=1"`
}

func (c SessionsConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

type DatabaseConfig struct {
	Enabled         bool              `mapstructure:"enabled"`
	Host            string            `mapstructure:"host" validate:"required_if=Enabled true"`
	Port            int               `mapstructure:"port" validate:"min=0,max=65535"`
	Database        string            `mapstructure:"database" validate:"required_if=Enabled true"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds" validate:"min=0"`
}

type TranslationConfig struct {
	Endpoint          string `mapstructure:"endpoint" validate:"required,url"`
	SourceLanguage    string `mapstructure:"source_language" validate:"required,language_tag"`
	TargetLanguage    string `mapstructure:"target_language" validate:"required,language_tag"`
	MaxRetryAttempts  int    `mapstructure:"max_retry_attempts" validate:"min=0"`
	RequestIntervalMs int    `mapstructure:"request_interval_ms" validate:"min=0"`
}

type TemplatesConfig struct {
	VocabularyTemplate string `mapstructure:"vocabulary_template" validate:"omitempty,file"`
}

type OutputsConfig struct {
	ExportDirectory string `mapstructure:"export_directory"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/kotoba")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("dictionaries.directory", "dictionaries")
	v.SetDefault("dictionaries.default", "")
	v.SetDefault("sessions.ttl_seconds", 65)
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "kotoba")
	v.SetDefault("database.username", "user")
	v.SetDefault("translation.endpoint", "https://translate.googleapis.com")
	v.SetDefault("translation.source_language", "en")
	v.SetDefault("translation.target_language", "zh-CN")
	v.SetDefault("translation.max_retry_attempts", 4)
	v.SetDefault("translation.request_interval_ms", 200)
	// Template is optional - if not specified, will use embedded fallback template
	v.SetDefault("templates.vocabulary_template", "")
	v.SetDefault("outputs.export_directory", "outputs")

	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("translation.endpoint", "KOTOBA_TRANSLATION_ENDPOINT"); err != nil {
		return nil, fmt.Errorf("failed to bind KOTOBA_TRANSLATION_ENDPOINT environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("validator.Struct() > %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
