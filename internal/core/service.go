package core

import (
	"context"
	"fmt"

	"github.com/mikey/email-classifier/internal/worker"
	"go.uber.org/zap"
)

// ClassificationService is the core service the front ends call
type ClassificationService struct {
	classifier *Classifier
	logger     *zap.Logger
	workers    int
}

// NewClassificationService creates a new classification service.
// workers bounds the goroutines used per batch; values below 2 classify sequentially.
func NewClassificationService(classifier *Classifier, logger *zap.Logger, workers int) *ClassificationService {
	if workers < 1 {
		workers = 1
	}
	return &ClassificationService{
		classifier: classifier,
		logger:     logger,
		workers:    workers,
	}
}

// Verify classifies a single address
func (s *ClassificationService) Verify(ctx context.Context, email string) (ClassificationResult, error) {
	if email == "" {
		return ClassificationResult{}, ErrEmptyEmail
	}

	result := s.classifier.Classify(email)
	s.logger.Debug("Classified email",
		zap.String("email", email),
		zap.Bool("valid_format", result.ValidFormat),
		zap.Bool("disposable", result.Disposable),
		zap.Int("score", result.Score))

	return result, nil
}

// VerifyBatch classifies every candidate, keeping input order and count.
// Candidates carrying an error produce a failed item; they never abort the batch.
func (s *ClassificationService) VerifyBatch(ctx context.Context, candidates []Candidate) ([]BatchItem, error) {
	if len(candidates) == 0 {
		return nil, ErrEmptyBatch
	}

	items := make([]BatchItem, len(candidates))
	err := worker.Run(ctx, len(candidates), s.workers, func(i int) {
		items[i] = s.verifyCandidate(candidates[i])
	})
	if err != nil {
		return nil, fmt.Errorf("batch of %d interrupted: %w", len(candidates), err)
	}

	failed := 0
	for _, item := range items {
		if item.Failed() {
			failed++
		}
	}
	s.logger.Info("Processed batch",
		zap.Int("total", len(candidates)),
		zap.Int("failed", failed),
		zap.Int("workers", s.workers))

	return items, nil
}

func (s *ClassificationService) verifyCandidate(c Candidate) BatchItem {
	if c.Err != nil {
		s.logger.Warn("Skipping unreadable batch entry", zap.String("entry", c.Email), zap.Error(c.Err))
		return BatchItem{Result: ClassificationResult{Email: c.Email}, Err: c.Err}
	}
	return BatchItem{Result: s.classifier.Classify(c.Email)}
}

// Domains returns the disposable domain list in lexical order
func (s *ClassificationService) Domains() []string {
	return s.classifier.Domains()
}

// DomainCount returns the number of disposable domains
func (s *ClassificationService) DomainCount() int {
	return s.classifier.DomainCount()
}
