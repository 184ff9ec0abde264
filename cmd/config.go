package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	NotifierLog   = "log"
	NotifierRedis = "redis"
)

// Config is read from the environment. The default tag holds the value used
// when a variable is not set.
type Config struct {
	AppEnv   string `mapstructure:"APP_ENV" default:"development"`
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	HTTPPort int    `mapstructure:"HTTP_PORT" default:"8080"`

	Storage    string `mapstructure:"STORAGE" default:"memory"`
	DBHost     string `mapstructure:"DB_HOST" default:"localhost"`
	DBPort     string `mapstructure:"DB_PORT" default:"5432"`
	DBUser     string `mapstructure:"DB_USER" default:"postgres"`
	DBPassword string `mapstructure:"DB_PASSWORD" default:""`
	DBName     string `mapstructure:"DB_NAME" default:"fastfeet"`
	DBSslMode  string `mapstructure:"DB_SSLMODE" default:"disable"`

	Notifier       string `mapstructure:"NOTIFIER" default:"log"`
	RedisURL       string `mapstructure:"REDIS_URL" default:"redis://localhost:6379/0"`
	RedisChannel   string `mapstructure:"REDIS_CHANNEL" default:"fastfeet.notifications"`
	RedisOutboxKey string `mapstructure:"REDIS_OUTBOX_KEY" default:"fastfeet:notifications:outbox"`

	NotificationSchedule  string `mapstructure:"NOTIFICATION_SCHEDULE" default:"*/5 * * * * *"`
	NotificationBatchSize int    `mapstructure:"NOTIFICATION_BATCH_SIZE" default:"50"`
}

// LoadConfig loads envFile into the process environment when it exists, then
// reads every Config key from the environment. Variables already set win over
// the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	var config Config
	if err := setDefaults(v, &config); err != nil {
		return Config{}, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks the values that have a closed set of choices or a range.
func (c Config) Validate() error {
	var errs []error
	if c.Storage != StorageMemory && c.Storage != StoragePostgres {
		errs = append(errs, fmt.Errorf("STORAGE must be %q or %q, got %q", StorageMemory, StoragePostgres, c.Storage))
	}
	if c.Notifier != NotifierLog && c.Notifier != NotifierRedis {
		errs = append(errs, fmt.Errorf("NOTIFIER must be %q or %q, got %q", NotifierLog, NotifierRedis, c.Notifier))
	}
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT must be in 1..65535, got %d", c.HTTPPort))
	}
	if c.NotificationBatchSize <= 0 {
		errs = append(errs, fmt.Errorf("NOTIFICATION_BATCH_SIZE must be positive, got %d", c.NotificationBatchSize))
	}
	return errors.Join(errs...)
}

// setDefaults registers every mapstructure key of config with v so that
// Unmarshal sees environment values and defaults alike.
func setDefaults(v *viper.Viper, config any) error {
	t := reflect.TypeOf(config).Elem()
	for i := range t.NumField() {
		field := t.Field(i)
		key := field.Tag.Get("mapstructure")
		if key == "" {
			continue
		}
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
		v.SetDefault(key, field.Tag.Get("default"))
	}
	return nil
}
