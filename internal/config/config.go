package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Query       Query       `mapstructure:",squash"`
	Profiles    Profiles    `mapstructure:",squash"`
	Markets     Markets     `mapstructure:",squash"`
	DailyDigest DailyDigest `mapstructure:",squash"`
	SecretKey   string      `mapstructure:"secret_key"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Query limita as consultas às tabelas de transações
type Query struct {
	Timeout time.Duration `mapstructure:"query_timeout"`
	MaxRows uint64        `mapstructure:"query_max_rows"`
}

// Profiles contém os limites de atraso por tipo de transação, em segundos
type Profiles struct {
	DepositOverdueThreshold  float64 `mapstructure:"deposit_overdue_threshold_seconds"`
	WithdrawOverdueThreshold float64 `mapstructure:"withdraw_overdue_threshold_seconds"`
}

// Markets lista as moedas com tabelas de transações disponíveis
type Markets struct {
	Currencies []string `mapstructure:"supported_currencies"`
}

type DailyDigest struct {
	CronSchedule string `mapstructure:"daily_digest_cron"`
	LookbackDays int    `mapstructure:"daily_digest_lookback_days"`
	Enabled      bool   `mapstructure:"daily_digest_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/finops?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("QUERY_TIMEOUT", "15s")
	viper.SetDefault("QUERY_MAX_ROWS", 50000)

	viper.SetDefault("DEPOSIT_OVERDUE_THRESHOLD_SECONDS", 60)
	viper.SetDefault("WITHDRAW_OVERDUE_THRESHOLD_SECONDS", 300)

	viper.SetDefault("SUPPORTED_CURRENCIES", "MYR,SGD,THB")

	viper.SetDefault("DAILY_DIGEST_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("DAILY_DIGEST_LOOKBACK_DAYS", 1)
	viper.SetDefault("DAILY_DIGEST_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	if err := decode(viper.AllSettings(), config); err != nil {
		return nil, err
	}

	config.Markets.Currencies = normalizeCurrencies(config.Markets.Currencies)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// decode converte as configurações lidas pelo viper usando os mesmos hooks do viper.Unmarshal
func decode(settings map[string]any, config *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		Result:           config,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(settings)
}

func normalizeCurrencies(currencies []string) []string {
	normalized := make([]string, 0, len(currencies))
	seen := make(map[string]struct{}, len(currencies))

	for _, currency := range currencies {
		currency = strings.ToUpper(strings.TrimSpace(currency))
		if currency == "" {
			continue
		}
		if _, exists := seen[currency]; exists {
			continue
		}
		seen[currency] = struct{}{}
		normalized = append(normalized, currency)
	}

	return normalized
}

// HasCurrency verifica se a moeda está configurada
func (m Markets) HasCurrency(currency string) bool {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	for _, supported := range m.Currencies {
		if supported == currency {
			return true
		}
	}
	return false
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
