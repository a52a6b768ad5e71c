// Package converter provides conversion from ledger transactions to Beancount format.
package converter

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default accounts used when no mapping file is configured.
const (
	DefaultCurrency       = "BRL"
	DefaultAssetAccount   = "Assets:Conta"
	DefaultIncomeAccount  = "Income:Receitas"
	DefaultExpenseAccount = "Expenses:Despesas"
)

// AccountRule maps descriptions containing Match to a Beancount account.
type AccountRule struct {
	Match   string `yaml:"match"`
	Account string `yaml:"account"`
}

// AccountMappingConfig represents the complete account mapping configuration.
type AccountMappingConfig struct {
	Currency       string        `yaml:"currency"`
	AssetAccount   string        `yaml:"asset_account"`
	IncomeAccount  string        `yaml:"income_account"`
	ExpenseAccount string        `yaml:"expense_account"`
	Rules          []AccountRule `yaml:"rules"`
}

// Mapper maps ledger descriptions to Beancount account names.
type Mapper struct {
	config AccountMappingConfig
}

// NewMapper creates a new Mapper from a YAML configuration file.
// An empty path yields a mapper with the default accounts and no rules.
func NewMapper(configPath string) (*Mapper, error) {
	var config AccountMappingConfig

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	return NewMapperFromConfig(config)
}

// NewMapperFromConfig creates a Mapper from an in-memory configuration,
// filling unset accounts with defaults.
func NewMapperFromConfig(config AccountMappingConfig) (*Mapper, error) {
	if config.Currency == "" {
		config.Currency = DefaultCurrency
	}
	if config.AssetAccount == "" {
		config.AssetAccount = DefaultAssetAccount
	}
	if config.IncomeAccount == "" {
		config.IncomeAccount = DefaultIncomeAccount
	}
	if config.ExpenseAccount == "" {
		config.ExpenseAccount = DefaultExpenseAccount
	}

	for i, rule := range config.Rules {
		if rule.Match == "" || rule.Account == "" {
			return nil, fmt.Errorf("rule %d: match and account are required", i)
		}
	}

	return &Mapper{config: config}, nil
}

// Currency returns the currency code used for postings.
func (m *Mapper) Currency() string {
	return m.config.Currency
}

// AssetAccount returns the account that receives income and pays expenses.
func (m *Mapper) AssetAccount() string {
	return m.config.AssetAccount
}

// GetCounterAccount returns the income or expense account for a description.
// Rules are matched case-insensitively in order; the first match wins.
func (m *Mapper) GetCounterAccount(description string, income bool) string {
	lower := strings.ToLower(description)
	for _, rule := range m.config.Rules {
		if strings.Contains(lower, strings.ToLower(rule.Match)) {
			return rule.Account
		}
	}

	if income {
		return m.config.IncomeAccount
	}
	return m.config.ExpenseAccount
}
