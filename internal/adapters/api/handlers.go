package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/mikey/email-classifier/internal/config"
	"github.com/mikey/email-classifier/internal/core"
	"go.uber.org/zap"
)

// Service is what the HTTP front ends need from the classification service
type Service interface {
	Verify(ctx context.Context, email string) (core.ClassificationResult, error)
	VerifyBatch(ctx context.Context, candidates []core.Candidate) ([]core.BatchItem, error)
	Domains() []string
	DomainCount() int
}

// Handlers implements the HTTP endpoints independently of any router.
// Every method returns the status code and the value to encode as JSON.
type Handlers struct {
	service Service
	meta    config.APIConfig
	logger  *zap.Logger
}

// NewHandlers creates new framework-neutral handlers
func NewHandlers(service Service, meta config.APIConfig, logger *zap.Logger) *Handlers {
	return &Handlers{
		service: service,
		meta:    meta,
		logger:  logger,
	}
}

// Index describes the API
func (h *Handlers) Index() (int, any) {
	return http.StatusOK, IndexResponse{
		API:     h.meta.Name,
		Version: h.meta.Version,
		Status:  "active",
		Endpoints: map[string]string{
			"/verify":       "GET - Verify single email",
			"/batch":        "POST - Verify multiple emails",
			"/health":       "GET - Health check",
			"/stats":        "GET - API statistics",
			"/domains/list": "GET - List disposable domains",
		},
	}
}

// Verify classifies the address given in the email query parameter
func (h *Handlers) Verify(ctx context.Context, email string) (int, any) {
	result, err := h.service.Verify(ctx, email)
	if err != nil {
		return h.fail(err)
	}
	return http.StatusOK, NewVerifyResponse(result)
}

// Batch classifies the addresses in a request body
func (h *Handlers) Batch(ctx context.Context, body io.Reader) (int, any) {
	data, err := ReadBody(body)
	if err != nil {
		return h.fail(err)
	}

	candidates, raw, err := DecodeBatch(data)
	if err != nil {
		return h.fail(err)
	}

	items, err := h.service.VerifyBatch(ctx, candidates)
	if err != nil {
		return h.fail(err)
	}
	return http.StatusOK, NewBatchResponse(items, raw)
}

// Health reports liveness
func (h *Handlers) Health() (int, any) {
	return http.StatusOK, HealthResponse{Status: "healthy", Service: h.meta.Service}
}

// Stats reports the domain set size and static metadata
func (h *Handlers) Stats() (int, any) {
	return http.StatusOK, StatsResponse{
		TotalDisposableDomains: h.service.DomainCount(),
		APIVersion:             h.meta.Version,
		Features:               []string{"format_check", "disposable_check", "scoring"},
		RateLimit:              "unlimited",
	}
}

// Domains lists the disposable domains in lexical order
func (h *Handlers) Domains() (int, any) {
	domains := h.service.Domains()
	return http.StatusOK, DomainsResponse{Count: len(domains), Domains: domains}
}

// fail maps service errors onto client or server errors. Internal errors are
// logged and never returned to the client.
func (h *Handlers) fail(err error) (int, any) {
	switch {
	case errors.Is(err, core.ErrEmptyEmail):
		return http.StatusBadRequest, ErrorResponse{Error: "Email parameter required"}
	case errors.Is(err, core.ErrEmptyBatch):
		return http.StatusBadRequest, ErrorResponse{Error: "Email list cannot be empty"}
	case errors.Is(err, ErrInvalidPayload):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error()}
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge, ErrorResponse{Error: err.Error()}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.logger.Warn("Request abandoned", zap.Error(err))
		return http.StatusServiceUnavailable, ErrorResponse{Error: "request cancelled"}
	default:
		h.logger.Error("Request failed", zap.Error(err))
		return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
	}
}
