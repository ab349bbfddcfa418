package disposable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewSetNormalizes(t *testing.T) {
	s := NewSet([]string{" Mailinator.COM ", "tempmail.com", "", "   ", "TEMPMAIL.com"}, zap.NewNop())

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"mailinator.com", "tempmail.com"}, s.Sorted())
}

func TestContainsIgnoresCase(t *testing.T) {
	s := NewSet([]string{"mailinator.com"}, nil)

	assert.True(t, s.Contains("mailinator.com"))
	assert.True(t, s.Contains("MAILINATOR.COM"))
	assert.True(t, s.Contains("MailInator.Com"))
	assert.False(t, s.Contains("mailinator.co"))
	assert.False(t, s.Contains("sub.mailinator.com"))
	assert.False(t, s.Contains(""))
}

func TestSortedReturnsCopy(t *testing.T) {
	s := NewSet([]string{"b.com", "a.com"}, nil)

	sorted := s.Sorted()
	sorted[0] = "mutated.com"

	assert.Equal(t, []string{"a.com", "b.com"}, s.Sorted())
	assert.False(t, s.Contains("mutated.com"))
}

func TestEmptySet(t *testing.T) {
	s := NewSet(nil, nil)

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Sorted())
	assert.False(t, s.Contains("tempmail.com"))
}
