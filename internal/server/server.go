// Package server exposes the plan calculator and lifecycle manager over a
// JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/iwvelando/sip-planner/internal/metrics"
	"github.com/iwvelando/sip-planner/internal/plan"
	"github.com/iwvelando/sip-planner/pkg/calculator"
	"github.com/iwvelando/sip-planner/pkg/constants"
	"github.com/iwvelando/sip-planner/pkg/output"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const formatJSON = "json"

type handler struct {
	logger      *zap.Logger
	store       *plan.Store
	validate    *validator.Validate
	translator  ut.Translator
	maxBodySize int64
	version     string
}

// planRequest is the body accepted by the quote and create endpoints.
type planRequest struct {
	Token              string           `json:"token" validate:"required,alphanum,max=16"`
	TotalAmount        *decimal.Decimal `json:"totalAmount" validate:"required"`
	Frequency          string           `json:"frequency"`
	MaturityMonths     int              `json:"maturityMonths"`
	CustomIntervalDays int              `json:"customIntervalDays"`
}

func (req planRequest) input() calculator.PlanInput {
	return calculator.PlanInput{
		Token:              strings.ToUpper(req.Token),
		TotalAmount:        *req.TotalAmount,
		Frequency:          calculator.ParseFrequency(req.Frequency),
		MaturityMonths:     req.MaturityMonths,
		CustomIntervalDays: req.CustomIntervalDays,
	}
}

type gasResponse struct {
	Operation string          `json:"operation"`
	Fee       decimal.Decimal `json:"fee"`
	Known     bool            `json:"known"`
}

// NewHandler constructs the HTTP handler that serves the plan API.
func NewHandler(logger *zap.Logger, store *plan.Store, maxBodySize int64, version string) (http.Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = plan.NewStore(logger)
	}
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register validation translations: %w", err)
	}

	h := &handler{
		logger:      logger,
		store:       store,
		validate:    validate,
		translator:  trans,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
	}

	r := chi.NewRouter()
	r.Use(h.requestLogger)
	r.Use(h.recoverer)

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)
		r.Get("/version", h.handleVersion)
		r.Post("/quote", h.handleQuote)
		r.Get("/gas/{operation}", h.handleGasFee)
		r.Get("/summary", h.handleSummary)

		r.Route("/plans", func(r chi.Router) {
			r.Get("/", h.handleListPlans)
			r.Post("/", h.handleCreatePlan)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handleGetPlan)
				r.Post("/execute", h.planTransition("server.handleExecute", h.store.Execute))
				r.Post("/finalize", h.planTransition("server.handleFinalize", h.store.Finalize))
				r.Post("/pause", h.planTransition("server.handlePause", h.store.Pause))
				r.Post("/resume", h.planTransition("server.handleResume", h.store.Resume))
			})
		})
	})

	return r, nil
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

func (h *handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleQuote"

	req, ok := h.decodePlanRequest(w, r, op)
	if !ok {
		return
	}

	quote, err := calculator.NewQuote(h.logger, req.input())
	if err != nil {
		h.respondPlanError(w, err, op)
		return
	}
	if !quote.Validation.IsValid {
		h.writeJSON(w, http.StatusUnprocessableEntity, quote)
		return
	}
	h.writeJSON(w, http.StatusOK, quote)
}

func (h *handler) handleGasFee(w http.ResponseWriter, r *http.Request) {
	operation := calculator.Operation(chi.URLParam(r, "operation"))
	_, known := calculator.LookupGasFee(operation)
	h.writeJSON(w, http.StatusOK, gasResponse{
		Operation: string(operation),
		Fee:       calculator.EstimateGasFee(h.logger, operation),
		Known:     known,
	})
}

func (h *handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.Summary())
}

// handleListPlans serves the plans as JSON, or as CSV with ?format=csv.
func (h *handler) handleListPlans(w http.ResponseWriter, r *http.Request) {
	switch format := r.URL.Query().Get("format"); format {
	case "", formatJSON:
		h.writeJSON(w, http.StatusOK, h.store.List())
	case constants.OutputFormatCSV:
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(output.CsvString(h.store.List()))); err != nil {
			h.logger.Error("failed to write CSV response",
				zap.String("op", "server.handleListPlans"),
				zap.Error(err),
			)
		}
	default:
		h.respondErrorWithOp(w, http.StatusBadRequest,
			fmt.Sprintf("unsupported format %q: must be json or csv", format), "server.handleListPlans")
	}
}

func (h *handler) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCreatePlan"

	req, ok := h.decodePlanRequest(w, r, op)
	if !ok {
		return
	}

	input := req.input()
	if result := calculator.Validate(input); !result.IsValid {
		h.writeJSON(w, http.StatusUnprocessableEntity, result)
		return
	}

	created, err := h.store.Create(input)
	if err != nil {
		h.respondPlanError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *handler) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, ok := h.store.Get(id)
	if !ok {
		h.respondErrorWithOp(w, http.StatusNotFound, fmt.Sprintf("plan %s not found", id), "server.handleGetPlan")
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}

func (h *handler) planTransition(op string, apply func(id string) (plan.Plan, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		updated, err := apply(chi.URLParam(r, "id"))
		if err != nil {
			h.respondPlanError(w, err, op)
			return
		}
		h.writeJSON(w, http.StatusOK, updated)
	}
}

func (h *handler) decodePlanRequest(w http.ResponseWriter, r *http.Request, op string) (planRequest, bool) {
	var req planRequest

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return req, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return req, false
	}

	if err := h.validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			h.respondErrorWithOp(w, http.StatusBadRequest, validationErrors[0].Translate(h.translator), op)
			return req, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return req, false
	}

	if err := calculator.CheckAmount(*req.TotalAmount); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid totalAmount: %v", err), op)
		return req, false
	}

	return req, true
}

func (h *handler) respondPlanError(w http.ResponseWriter, err error, op string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, plan.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, plan.ErrPreconditionFailed):
		status = http.StatusConflict
	case errors.Is(err, calculator.ErrComputation):
		status = http.StatusUnprocessableEntity
	}
	h.respondErrorWithOp(w, status, err.Error(), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	level := h.logger.Warn
	if status >= http.StatusInternalServerError {
		level = h.logger.Error
	}
	level("plan request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}

func (h *handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.ObserveHTTPRequest(r.Method, strconv.Itoa(status))
		h.logger.Debug("request handled",
			zap.String("op", "server.requestLogger"),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (h *handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.logger.Error("panic while handling request",
					zap.String("op", "server.recoverer"),
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)
				h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": http.StatusText(http.StatusInternalServerError)})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
