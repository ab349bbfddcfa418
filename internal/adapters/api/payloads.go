package api

import (
	"encoding/json"

	"github.com/mikey/email-classifier/internal/core"
)

// Messages attached to single verdicts
const (
	MessageValid         = "Valid email"
	MessageDisposable    = "Disposable email detected"
	MessageInvalidFormat = "Invalid email format"
	MessageProcessing    = "Processing error"
)

// ErrorResponse is the error envelope for all API errors
type ErrorResponse struct {
	Error string `json:"error"`
}

// VerifyResponse is the payload of a single verification
type VerifyResponse struct {
	Email       string  `json:"email"`
	ValidFormat bool    `json:"valid_format"`
	Disposable  bool    `json:"disposable"`
	Score       int     `json:"score"`
	Domain      *string `json:"domain"`
	Message     string  `json:"message,omitempty"`
	Error       string  `json:"error,omitempty"`
}

// BatchResult is one entry of a batch payload.
// Email holds the original JSON value for entries that could not be classified.
type BatchResult struct {
	Email       any     `json:"email"`
	ValidFormat bool    `json:"valid_format"`
	Disposable  bool    `json:"disposable"`
	Score       int     `json:"score"`
	Domain      *string `json:"domain"`
	Error       string  `json:"error,omitempty"`
}

// BatchResponse is the payload of a batch verification
type BatchResponse struct {
	TotalEmails int           `json:"total_emails"`
	Processed   int           `json:"processed"`
	Results     []BatchResult `json:"results"`
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// StatsResponse is the stats payload
type StatsResponse struct {
	TotalDisposableDomains int      `json:"total_disposable_domains"`
	APIVersion             string   `json:"api_version"`
	Features               []string `json:"features"`
	RateLimit              string   `json:"rate_limit"`
}

// DomainsResponse lists the disposable domains
type DomainsResponse struct {
	Count   int      `json:"count"`
	Domains []string `json:"domains"`
}

// IndexResponse describes the API
type IndexResponse struct {
	API       string            `json:"api"`
	Version   string            `json:"version"`
	Status    string            `json:"status"`
	Endpoints map[string]string `json:"endpoints"`
}

func domainOf(result core.ClassificationResult) *string {
	if !result.ValidFormat {
		return nil
	}
	domain := result.Domain
	return &domain
}

// NewVerifyResponse builds the payload for a single verdict
func NewVerifyResponse(result core.ClassificationResult) VerifyResponse {
	resp := VerifyResponse{
		Email:       result.Email,
		ValidFormat: result.ValidFormat,
		Disposable:  result.Disposable,
		Score:       result.Score,
		Domain:      domainOf(result),
	}

	switch {
	case !result.ValidFormat:
		resp.Error = MessageInvalidFormat
	case result.Disposable:
		resp.Message = MessageDisposable
	default:
		resp.Message = MessageValid
	}
	return resp
}

// NewBatchResponse builds the batch payload. raw holds the original JSON entries by index.
func NewBatchResponse(items []core.BatchItem, raw []json.RawMessage) BatchResponse {
	results := make([]BatchResult, len(items))
	for i, item := range items {
		if item.Failed() {
			var email any = item.Result.Email
			if i < len(raw) {
				email = raw[i]
			}
			results[i] = BatchResult{Email: email, Error: MessageProcessing}
			continue
		}
		results[i] = BatchResult{
			Email:       item.Result.Email,
			ValidFormat: item.Result.ValidFormat,
			Disposable:  item.Result.Disposable,
			Score:       item.Result.Score,
			Domain:      domainOf(item.Result),
		}
	}

	return BatchResponse{
		TotalEmails: len(items),
		Processed:   len(results),
		Results:     results,
	}
}
