package core

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(workers int) *ClassificationService {
	return NewClassificationService(newTestClassifier(), zap.NewNop(), workers)
}

func TestVerify(t *testing.T) {
	s := newTestService(1)

	result, err := s.Verify(context.Background(), "test@tempmail.com")
	require.NoError(t, err)
	assert.True(t, result.Disposable)
	assert.Equal(t, 30, result.Score)

	_, err = s.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyEmail)
}

func TestVerifyBatchIsolatesFailedEntries(t *testing.T) {
	s := newTestService(1)

	items, err := s.VerifyBatch(context.Background(), []Candidate{
		{Email: "a@b.com"},
		{Email: "42", Err: ErrNotAString},
		{Email: "bad"},
		{Email: "c@mailinator.com"},
	})
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.False(t, items[0].Failed())
	assert.Equal(t, 100, items[0].Result.Score)

	assert.True(t, items[1].Failed())
	assert.ErrorIs(t, items[1].Err, ErrNotAString)
	assert.Equal(t, "42", items[1].Result.Email)
	assert.Zero(t, items[1].Result.Score)

	assert.False(t, items[2].Failed())
	assert.False(t, items[2].Result.ValidFormat)

	assert.True(t, items[3].Result.Disposable)
}

func TestVerifyBatchRejectsEmpty(t *testing.T) {
	s := newTestService(4)

	_, err := s.VerifyBatch(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyBatch)
}

func TestVerifyBatchParallelKeepsOrder(t *testing.T) {
	s := newTestService(8)

	candidates := make([]Candidate, 500)
	for i := range candidates {
		if i%3 == 0 {
			candidates[i] = Candidate{Email: fmt.Sprintf("user%d@mailinator.com", i)}
		} else {
			candidates[i] = Candidate{Email: fmt.Sprintf("user%d@example.com", i)}
		}
	}

	items, err := s.VerifyBatch(context.Background(), candidates)
	require.NoError(t, err)
	require.Len(t, items, len(candidates))

	for i, item := range items {
		assert.Equal(t, candidates[i].Email, item.Result.Email)
		assert.Equal(t, i%3 == 0, item.Result.Disposable)
	}
}

func TestVerifyBatchCancelled(t *testing.T) {
	s := newTestService(2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.VerifyBatch(ctx, []Candidate{{Email: "a@b.com"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestServiceDomains(t *testing.T) {
	s := newTestService(1)

	assert.Equal(t, 3, s.DomainCount())
	assert.Len(t, s.Domains(), 3)
}
