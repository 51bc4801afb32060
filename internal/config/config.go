package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Instrument identifies one monitored contract.
type Instrument struct {
	Code         string `yaml:"code"`
	Name         string `yaml:"name"`
	ContractName string `yaml:"contract_name"`
	CFTCCode     string `yaml:"cftc_code"`
}

// Config holds all application configuration.
type Config struct {
	Webhook struct {
		URL string `yaml:"url"`
	} `yaml:"webhook"`
	DataSource struct {
		BaseURL  string `yaml:"base_url"`
		AppToken string `yaml:"app_token"`
	} `yaml:"data_source"`
	Instruments []Instrument `yaml:"instruments"`
	Lookback    struct {
		DivergenceWeeks int `yaml:"divergence_weeks"`
		ExtremeWeeks    int `yaml:"extreme_weeks"`
	} `yaml:"lookback"`
	Schedule struct {
		WeeklyCron string `yaml:"weekly_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Report struct {
		Dir string `yaml:"dir"`
	} `yaml:"report"`
	Proxy string `yaml:"proxy"`
}

// defaultInstruments covers the six contracts monitored out of the box.
var defaultInstruments = []Instrument{
	{Code: "NQ", Name: "Nasdaq 100", ContractName: "NASDAQ MINI", CFTCCode: "209742"},
	{Code: "SPX", Name: "S&P 500", ContractName: "E-MINI S&P 500", CFTCCode: "13874A"},
	{Code: "BTC", Name: "Bitcoin", ContractName: "BITCOIN", CFTCCode: "133741"},
	{Code: "ETH", Name: "Ethereum", ContractName: "ETHER CASH SETTLED", CFTCCode: "ETH"},
	{Code: "EUR", Name: "Euro FX", ContractName: "EURO FX", CFTCCode: "099741"},
	{Code: "USD", Name: "US Dollar Index", ContractName: "USD INDEX", CFTCCode: "098662"},
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("COT_WEBHOOK_URL"); v != "" {
		cfg.Webhook.URL = v
	}
	if v := os.Getenv("CFTC_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("SOCRATA_APP_TOKEN"); v != "" {
		cfg.DataSource.AppToken = v
	}
	if v := os.Getenv("CRON_WEEKLY"); v != "" {
		cfg.Schedule.WeeklyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("REPORT_DIR"); v != "" {
		cfg.Report.Dir = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("DIVERGENCE_WEEKS"); v != "" {
		if weeks, err := strconv.Atoi(v); err == nil {
			cfg.Lookback.DivergenceWeeks = weeks
		}
	}
	if v := os.Getenv("EXTREME_WEEKS"); v != "" {
		if weeks, err := strconv.Atoi(v); err == nil {
			cfg.Lookback.ExtremeWeeks = weeks
		}
	}

	// Defaults
	if cfg.Lookback.DivergenceWeeks == 0 {
		cfg.Lookback.DivergenceWeeks = 52
	}
	if cfg.Lookback.ExtremeWeeks == 0 {
		cfg.Lookback.ExtremeWeeks = 156
	}
	if cfg.Schedule.WeeklyCron == "" {
		// Friday 18:00, after the weekly CFTC release on Friday afternoon
		cfg.Schedule.WeeklyCron = "0 0 18 * * 5"
	}
	if cfg.Report.Dir == "" {
		cfg.Report.Dir = "data/reports"
	}
	if len(cfg.Instruments) == 0 {
		cfg.Instruments = defaultInstruments
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Lookback.DivergenceWeeks <= 0 {
		return fmt.Errorf("lookback.divergence_weeks must be positive")
	}
	if c.Lookback.ExtremeWeeks <= 0 {
		return fmt.Errorf("lookback.extreme_weeks must be positive")
	}
	if len(c.Instruments) == 0 {
		return fmt.Errorf("at least one instrument is required")
	}
	for i, inst := range c.Instruments {
		if inst.Code == "" {
			return fmt.Errorf("instruments[%d].code is required", i)
		}
		if inst.ContractName == "" {
			return fmt.Errorf("instruments[%d].contract_name is required", i)
		}
	}
	return nil
}
