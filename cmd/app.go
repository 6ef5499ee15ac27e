// Package cmd implements the CLI application to manage a wheel ledger.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/wheel"
	"github.com/etnz/wheel/logging"
	"github.com/etnz/wheel/quote"
	"github.com/etnz/wheel/store"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&summaryCmd{}, "reports")
	c.Register(&symbolCmd{}, "reports")
	c.Register(&payoffCmd{}, "reports")
	c.Register(&txCmd{}, "reports")

	c.Register(&addCmd{}, "transactions")
	c.Register(&fmtCmd{}, "transactions")
	c.Register(&importCmd{}, "transactions")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the wheel.toml configuration file")

// Settings is the application configuration, read from wheel.toml and WHEEL_* environment variables.
type Settings struct {
	Ledger     string             `mapstructure:"ledger"`
	DB         string             `mapstructure:"db"`
	Currency   string             `mapstructure:"currency"`
	Multiplier float64            `mapstructure:"multiplier"`
	Dividends  map[string]float64 `mapstructure:"dividends"` // annual dividend per share
	Quote      QuoteSettings      `mapstructure:"quote"`
	Log        LogSettings        `mapstructure:"log"`
}

// QuoteSettings configures the quote fetcher. An empty URL disables quotes.
type QuoteSettings struct {
	URL      string        `mapstructure:"url"`
	Path     string        `mapstructure:"path"`
	TTL      time.Duration `mapstructure:"ttl"`
	CacheDir string        `mapstructure:"cache_dir"`
}

// LogSettings configures the application logger.
type LogSettings struct {
	Level string `mapstructure:"level"`
	File  bool   `mapstructure:"file"`
	Path  string `mapstructure:"path"`
}

// LoadSettings reads the configuration file, if any, and applies environment overrides.
// When path is empty wheel.toml is searched in the current directory and in ~/.config/wheel.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetDefault("ledger", "transactions.jsonl")
	v.SetDefault("db", "")
	v.SetDefault("currency", "USD")
	v.SetDefault("multiplier", 100)
	v.SetDefault("dividends", map[string]float64{})
	v.SetDefault("quote.url", "")
	v.SetDefault("quote.path", "$.price")
	v.SetDefault("quote.ttl", 15*time.Minute)
	v.SetDefault("quote.cache_dir", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", false)
	v.SetDefault("log.path", logging.DefaultLogConfig().FilePath)

	v.SetEnvPrefix("WHEEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("wheel")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "wheel"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if s.Multiplier <= 0 {
		return nil, fmt.Errorf("invalid multiplier %v: must be positive", s.Multiplier)
	}
	return s, nil
}

// settings loads the application settings from the global -config flag.
func settings() (*Settings, error) { return LoadSettings(*configFile) }

// Logger builds the application logger.
func (s *Settings) Logger() zerolog.Logger {
	cfg := logging.DefaultLogConfig()
	cfg.Level = s.Log.Level
	cfg.File = s.Log.File
	if s.Log.Path != "" {
		cfg.FilePath = s.Log.Path
	}
	return logging.NewLoggerWithConfig(cfg)
}

// Config returns the engine configuration evaluated on a given day.
func (s *Settings) Config(on wheel.Date, logger zerolog.Logger) wheel.Config {
	cfg := wheel.DefaultConfig()
	cfg.Multiplier = wheel.Q(s.Multiplier)
	cfg.AsOf = on
	cfg.Logger = logger
	return cfg
}

// currencyOf returns the currency of amounts typed for ledger: the ledger
// currency, the configured one for an empty ledger.
func (s *Settings) currencyOf(ledger *wheel.Ledger) string {
	if cur := ledger.Currency(); cur != "" {
		return cur
	}
	return s.Currency
}

// DividendRates returns the configured annual dividends per share.
func (s *Settings) DividendRates() wheel.DividendRates {
	rates := make(wheel.DividendRates, len(s.Dividends))
	for symbol, rate := range s.Dividends {
		rates[strings.ToUpper(symbol)] = wheel.M(rate, s.Currency)
	}
	return rates
}

// Fetcher returns the quote fetcher, nil when no quote URL is configured.
// Responses are cached on disk for the day when a cache directory is configured.
func (s *Settings) Fetcher(logger zerolog.Logger) *quote.Fetcher {
	if s.Quote.URL == "" {
		return nil
	}
	f := &quote.Fetcher{
		URL:      s.Quote.URL,
		Path:     s.Quote.Path,
		Currency: s.Currency,
		Cache:    quote.NewMemoryCache(s.Quote.TTL),
		Logger:   logger,
	}
	// end of day quotes can be kept on disk for the day.
	if s.Quote.CacheDir != "" {
		f.Client = quote.Daily(s.Quote.CacheDir, logger)
	}
	return f
}

// DecodeLedger loads the ledger from the database when one is configured, from the JSONL ledger file otherwise.
// A missing ledger file is an empty ledger.
func (s *Settings) DecodeLedger(ctx context.Context) (*wheel.Ledger, error) {
	if s.DB != "" {
		db, err := store.NewSQLiteStore(s.DB)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return db.Ledger(ctx)
	}

	f, err := os.Open(s.Ledger)
	if errors.Is(err, fs.ErrNotExist) {
		return wheel.NewLedger()
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %q: %w", s.Ledger, err)
	}
	defer f.Close()
	ledger, err := wheel.DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("decoding ledger %q: %w", s.Ledger, err)
	}
	return ledger, nil
}

// fetchQuotes returns the quotes of symbols. Failures are logged, those symbols stay unpriced.
func (s *Settings) fetchQuotes(ctx context.Context, logger zerolog.Logger, symbols ...string) wheel.Quotes {
	fetcher := s.Fetcher(logger)
	if fetcher == nil || len(symbols) == 0 {
		return nil
	}
	quotes, err := fetcher.Fetch(ctx, symbols...)
	if err != nil {
		logger.Warn().Err(err).Msg("some quotes are not available")
	}
	return quotes
}

// printMarkdown renders markdown for the terminal, raw markdown when it cannot.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
