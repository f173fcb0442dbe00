// Package server exposes the payment quote engine over HTTP.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/iwvelando/mortgage-plan/internal/schedule"
	"github.com/iwvelando/mortgage-plan/pkg/constants"
	"github.com/iwvelando/mortgage-plan/pkg/mathutil"
	"github.com/iwvelando/mortgage-plan/pkg/payments"
	"github.com/iwvelando/mortgage-plan/pkg/rates"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

// quoteRequest is the YAML request body for /api/quote.
type quoteRequest struct {
	Principal         float64 `yaml:"principal"`
	QuotedRate        float64 `yaml:"quotedRate"` // percentage, e.g. 5.5
	AmortizationYears int     `yaml:"amortizationYears"`
	TermYears         int     `yaml:"termYears"`
	IncludeSchedules  bool    `yaml:"includeSchedules"`
}

type scheduleRow struct {
	Period           int     `json:"period"`
	BeginningBalance float64 `json:"beginningBalance"`
	Payment          float64 `json:"payment"`
	PrincipalPaid    float64 `json:"principalPaid"`
	InterestPaid     float64 `json:"interestPaid"`
	EndingBalance    float64 `json:"endingBalance"`
}

type schemeResult struct {
	Payment       float64       `json:"payment"`
	Periods       int           `json:"periods"`
	TotalInterest float64       `json:"totalInterest"`
	Schedule      []scheduleRow `json:"schedule,omitempty"`
}

type quoteResponse struct {
	Principal         float64                 `json:"principal"`
	QuotedRate        float64                 `json:"quotedRate"`
	AmortizationYears int                     `json:"amortizationYears"`
	TermYears         int                     `json:"termYears"`
	Schemes           map[string]schemeResult `json:"schemes"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewHandler constructs the HTTP handler that serves the quote API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/quote", h.handleQuote)
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

func (h *handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxUploadSize))
	if err != nil {
		h.writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}

	var req quoteRequest
	if err := yaml.Unmarshal(body, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse request: %v", err))
		return
	}

	terms, err := rates.NewLoanTerms(req.QuotedRate, req.AmortizationYears, req.TermYears)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	schedules, quote, err := schedule.GenerateAll(h.logger, req.Principal, terms)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := quoteResponse{
		Principal:         req.Principal,
		QuotedRate:        req.QuotedRate,
		AmortizationYears: req.AmortizationYears,
		TermYears:         req.TermYears,
		Schemes:           make(map[string]schemeResult, len(payments.AllSchemes)),
	}
	for _, scheme := range payments.AllSchemes {
		ledger := schedules[scheme]
		result := schemeResult{
			Payment:       mathutil.Round(quote[scheme]),
			Periods:       len(ledger),
			TotalInterest: mathutil.Round(ledger.TotalInterest()),
		}
		if req.IncludeSchedules {
			result.Schedule = make([]scheduleRow, len(ledger))
			for i, row := range ledger {
				result.Schedule[i] = scheduleRow{
					Period:           row.Period,
					BeginningBalance: mathutil.Round(row.BeginningBalance),
					Payment:          mathutil.Round(row.Payment),
					PrincipalPaid:    mathutil.Round(row.PrincipalPaid),
					InterestPaid:     mathutil.Round(row.InterestPaid),
					EndingBalance:    mathutil.Round(row.EndingBalance),
				}
			}
		}
		resp.Schemes[string(scheme)] = result
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}

func (h *handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}
