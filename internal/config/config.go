package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/quicktill/quicktill/internal/invoice"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Config carries the till settings: the fixed tax rate, the pricing
// currency, the seller block printed on invoices and the sink directory.
type Config struct {
	TaxRate     decimal.Decimal `envconfig:"TAX_RATE" default:"0.05"`
	Currency    string          `envconfig:"CURRENCY" default:"USD"`
	OutputDir   string          `envconfig:"OUTPUT_DIR" default:"invoices"`
	RowsPerPage int             `envconfig:"ROWS_PER_PAGE" default:"20"`

	BusinessName    string `envconfig:"BUSINESS_NAME" default:"Quicktill Store"`
	BusinessAddress string `envconfig:"BUSINESS_ADDRESS" default:""`
	BusinessPhone   string `envconfig:"BUSINESS_PHONE" default:""`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("POS", &cfg); err != nil {
		return Config{}, fmt.Errorf("envconfig.Process: %w", err)
	}

	if _, err := cfg.CurrencyUnit(); err != nil {
		return Config{}, err
	}
	if cfg.TaxRate.IsNegative() || cfg.TaxRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return Config{}, fmt.Errorf("tax rate %s: must be in [0, 1)", cfg.TaxRate)
	}

	return cfg, nil
}

func (c Config) CurrencyUnit() (currency.Unit, error) {
	unit, err := currency.ParseISO(c.Currency)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", c.Currency, err)
	}

	return unit, nil
}

func (c Config) Business() invoice.BusinessInfo {
	return invoice.BusinessInfo{
		Name:    c.BusinessName,
		Address: c.BusinessAddress,
		Phone:   c.BusinessPhone,
	}
}
