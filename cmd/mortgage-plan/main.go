package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/iwvelando/mortgage-plan/internal/config"
	"github.com/iwvelando/mortgage-plan/internal/cpi"
	"github.com/iwvelando/mortgage-plan/internal/schedule"
	"github.com/iwvelando/mortgage-plan/internal/server"
	"github.com/iwvelando/mortgage-plan/pkg/chart"
	"github.com/iwvelando/mortgage-plan/pkg/constants"
	"github.com/iwvelando/mortgage-plan/pkg/export"
	"github.com/iwvelando/mortgage-plan/pkg/output"
	"github.com/iwvelando/mortgage-plan/pkg/rates"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	workbookFlag := flag.String("workbook", "", fmt.Sprintf("xlsx export target override (e.g. %s)", constants.DefaultWorkbookFile))
	chartFlag := flag.Bool("chart", false, "render a terminal balance decline chart")
	cpiMode := flag.Bool("cpi", false, "run the price-index analysis instead of the amortization engine")
	serveAddr := flag.String("serve", "", fmt.Sprintf("listen address for the quote API (e.g. %s); empty runs the CLI once", constants.DefaultServerAddress))
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *serveAddr != "" {
		logger.Info("serving quote API",
			zap.String("op", "main"),
			zap.String("address", *serveAddr),
		)
		handler := server.NewHandler(logger, constants.DefaultMaxUploadSizeBytes, version)
		if err := http.ListenAndServe(*serveAddr, handler); err != nil {
			logger.Fatal("server stopped",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	if *cpiMode {
		runCPI(logger, conf)
		return
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	terms, err := rates.NewLoanTerms(conf.Loan.QuotedRate, conf.Loan.AmortizationYears, conf.Loan.TermYears)
	if err != nil {
		logger.Fatal("invalid loan terms",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Compute all six schedules before any output side effect.
	schedules, quote, err := schedule.GenerateAll(logger, conf.Loan.Principal, terms)
	if err != nil {
		logger.Fatal("failed to compute amortization schedules",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}

	switch outputFormat {
	case constants.OutputFormatCSV:
		output.CsvFormat(schedules)
	default:
		output.PrettyFormat(conf.Loan.Principal, quote, schedules)
	}

	if *chartFlag {
		fmt.Printf("\n%s", chart.BalanceDecline(schedules, conf.Output.ChartWidth))
	}

	workbook := conf.Output.Workbook
	if *workbookFlag != "" {
		workbook = *workbookFlag
	}
	if workbook != "" {
		if err := export.Workbook(workbook, schedules); err != nil {
			// Schedules are already rendered above; report and exit nonzero.
			logger.Error("failed to export workbook",
				zap.String("op", "main"),
				zap.Error(err),
			)
			os.Exit(1)
		}
		logger.Info("exported workbook",
			zap.String("op", "main"),
			zap.String("path", workbook),
		)
	}
}

func runCPI(logger *zap.Logger, conf *config.Configuration) {
	if conf.CPI.SeriesGlob == "" {
		logger.Fatal("cpi.seriesGlob must be configured for the price-index analysis",
			zap.String("op", "main"),
		)
	}
	baseJurisdiction := conf.CPI.BaseJurisdiction
	if baseJurisdiction == "" {
		baseJurisdiction = "ON"
	}
	baseSalary := conf.CPI.BaseSalary
	if baseSalary == 0 {
		baseSalary = 100000
	}

	report, err := cpi.Analyze(logger, conf.CPI.SeriesGlob, conf.CPI.WagesFile, baseJurisdiction, baseSalary)
	if err != nil {
		logger.Fatal("failed to run price-index analysis",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	output.PrettyCPI(report)
}
