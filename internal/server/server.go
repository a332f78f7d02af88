package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/iwvelando/loss-mitigation/internal/composite"
	"github.com/iwvelando/loss-mitigation/pkg/calcerr"
	"github.com/iwvelando/loss-mitigation/pkg/calculator"
	"github.com/iwvelando/loss-mitigation/pkg/constants"
)

// Evaluator runs composite workout evaluations.
type Evaluator interface {
	Evaluate(ctx context.Context, req composite.Request) (calculator.Result[composite.Outcome], error)
}

type handler struct {
	logger      *zap.Logger
	evaluator   Evaluator
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the calculator and
// workout evaluation API.
func NewHandler(logger *zap.Logger, evaluator Evaluator, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if evaluator == nil {
		evaluator = composite.NewEvaluator(logger, nil)
	}
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, evaluator: evaluator, maxBodySize: maxBodySize, version: trimmedVersion}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", h.handleVersion)
		r.Get("/calculators", h.handleCalculators)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			r.Post("/calculators/{name}", h.handleCalculate)
			r.Post("/evaluate", h.handleEvaluate)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: http.StatusText(http.StatusNotFound)})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w,
			http.StatusText(http.StatusMethodNotAllowed),
			http.StatusMethodNotAllowed)
	})

	return r
}

type errorResponse struct {
	Error string       `json:"error"`
	Code  calcerr.Code `json:"code,omitempty"`
	Field string       `json:"field,omitempty"`
}

type calculatorsResponse struct {
	Calculators    []calculator.Descriptor `json:"calculators"`
	WorkoutOptions []string                `json:"workoutOptions"`
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleCalculators(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, calculatorsResponse{
		Calculators:    calculator.AvailableCalculators(),
		WorkoutOptions: composite.WorkoutOptions,
	})
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	name := chi.URLParam(r, "name")

	var payload map[string]any
	if !h.decodeBody(w, r, &payload, op) {
		return
	}

	res, err := composite.Calculate(name, payload)
	if err != nil {
		h.respondCalcError(w, err, op)
		return
	}

	h.logger.Debug(fmt.Sprintf("calculated %s", name),
		zap.String("op", op),
		zap.String("requestId", middleware.GetReqID(r.Context())),
	)
	h.writeJSON(w, http.StatusOK, res)
}

func (h *handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleEvaluate"

	var req composite.Request
	if !h.decodeBody(w, r, &req, op) {
		return
	}

	res, err := h.evaluator.Evaluate(r.Context(), req)
	if err != nil {
		h.respondCalcError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

// decodeBody reads a size-limited JSON body into v, keeping numbers as
// json.Number. It responds and returns false when the body is unusable.
func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, v any, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to read request body: %v", err), op)
		return false
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return true
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		h.respondCalcError(w, calcerr.Wrap(calcerr.CodeInvalidInput, "", "failed to decode request body", err), op)
		return false
	}
	return true
}

func (h *handler) respondCalcError(w http.ResponseWriter, err error, op string) {
	status := calcerr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("op", op),
			zap.Int("status", status),
			zap.Error(err),
		)
	} else {
		h.logger.Debug("request rejected",
			zap.String("op", op),
			zap.Int("status", status),
			zap.Error(err),
		)
	}

	h.writeJSON(w, status, errorResponse{
		Error: err.Error(),
		Code:  calcerr.GetCode(err),
		Field: calcerr.GetField(err),
	})
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
