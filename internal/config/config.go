// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"

	"github.com/iwvelando/mortgage-plan/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for mortgage-plan.
type Configuration struct {
	Loan    LoanInput
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	CPI     CPIConfig     `yaml:"cpi,omitempty"`
}

// LoanInput holds the loan parameters as quoted. QuotedRate is a percentage
// (e.g. 5.5 for 5.5%); conversion to a decimal fraction happens when the
// terms are constructed for the engine.
type LoanInput struct {
	Principal         float64
	QuotedRate        float64
	AmortizationYears int
	TermYears         int
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format     string `yaml:"format,omitempty"`     // pretty, csv
	Workbook   string `yaml:"workbook,omitempty"`   // optional xlsx export target
	ChartWidth int    `yaml:"chartWidth,omitempty"` // terminal chart width in columns
}

// CPIConfig points at the price-index and wage source files for the
// statistics pass.
type CPIConfig struct {
	SeriesGlob       string  `yaml:"seriesGlob,omitempty"`
	WagesFile        string  `yaml:"wagesFile,omitempty"`
	BaseJurisdiction string  `yaml:"baseJurisdiction,omitempty"`
	BaseSalary       float64 `yaml:"baseSalary,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ValidateConfiguration checks for conditions worth warning about. Hard
// input errors (non-positive principal or horizon, negative rate) surface
// from the engine itself before any computation.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if conf.Loan.TermYears > conf.Loan.AmortizationYears {
		warnings = append(warnings, fmt.Sprintf("Term of %d years exceeds the %d-year amortization period",
			conf.Loan.TermYears, conf.Loan.AmortizationYears))
	}
	if conf.Loan.QuotedRate == 0 {
		warnings = append(warnings, "Quoted rate is zero; payments will be straight-line principal division")
	}
	if conf.Loan.QuotedRate > 0 && conf.Loan.QuotedRate < 1 {
		warnings = append(warnings, fmt.Sprintf("Quoted rate %.4f is below 1%%; the rate is expected as a percentage (e.g. 5.5 for 5.5%%)",
			conf.Loan.QuotedRate))
	}
	if conf.Loan.QuotedRate >= 25 {
		warnings = append(warnings, fmt.Sprintf("Quoted rate %.2f%% is unusually high for a fixed mortgage", conf.Loan.QuotedRate))
	}
	if conf.Output.Format != "" &&
		conf.Output.Format != constants.OutputFormatPretty &&
		conf.Output.Format != constants.OutputFormatCSV {
		warnings = append(warnings, fmt.Sprintf("Unknown output format %q; falling back to %s",
			conf.Output.Format, constants.OutputFormatPretty))
	}

	return warnings
}
