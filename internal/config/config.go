package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config agrupa toda la configuración del servicio.
// Prioridad: ENV > YAML > defaults (tags env-default).
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Questions QuestionsConfig `yaml:"questions"`
	Media     MediaConfig     `yaml:"media"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host            string `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int    `yaml:"port"             env:"PORT"                    env-default:"8080"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec"  env:"SERVER_READ_TIMEOUT_SEC"  env-default:"5"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec" env:"SERVER_WRITE_TIMEOUT_SEC" env-default:"10"`
}

type DatabaseConfig struct {
	// DSN vacío => repos in-memory (modo dev, igual que siempre).
	DSN string `yaml:"dsn" env:"DB_DSN"`
}

// AuthConfig describe el user pool de Cognito.
// Issuer vacío => sin verifier (modo dev con X-Debug-User-ID).
type AuthConfig struct {
	CognitoIssuer       string `yaml:"cognito_issuer"        env:"COGNITO_ISSUER"`
	CognitoClientID     string `yaml:"cognito_client_id"     env:"COGNITO_CLIENT_ID"`
	CognitoClientSecret string `yaml:"cognito_client_secret" env:"COGNITO_CLIENT_SECRET"`
	AWSRegion           string `yaml:"aws_region"            env:"AWS_REGION"`
}

type QuestionsConfig struct {
	// BankURL vacío => banco de preguntas embebido.
	BankURL string `yaml:"bank_url" env:"QUESTION_BANK_URL"`
}

type MediaConfig struct {
	// S3Bucket vacío => store in-memory.
	S3Bucket string `yaml:"s3_bucket" env:"MEDIA_S3_BUCKET"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
	App    string `yaml:"app"    env:"APP_NAME"   env-default:"cat-care-diary"`
}

// Load lee configuración desde YAML (CONFIG_PATH, opcional) + env vars.
// Si no hay archivo y CONFIG_PATH no fue seteado explícitamente,
// se carga solo de ENV + defaults.
func Load() (Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicit := path != ""
	if !explicit {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		return cfg, nil
	} else if explicit {
		return Config{}, fmt.Errorf("config: file %s: %w", path, err)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: read env: %w", err)
	}
	return cfg, nil
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
