package search

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"property-marketplace/internal/models"
)

type flakyIndex struct {
	err   error
	calls int
}

func (f *flakyIndex) IndexListing(models.Property) error { f.calls++; return f.err }

func (f *flakyIndex) DeleteListing(string) error { f.calls++; return f.err }

func (f *flakyIndex) ReplaceAll([]models.Property) error { f.calls++; return f.err }

func TestGuardedIndex_OpensAndRecovers(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(2, time.Minute)
	cb.now = func() time.Time { return now }

	inner := &flakyIndex{err: errors.New("connection refused")}
	g := NewGuardedIndex(inner, cb)

	assert.Error(t, g.IndexListing(models.Property{ID: "1"}))
	assert.Error(t, g.DeleteListing("1"))
	assert.ErrorIs(t, g.IndexListing(models.Property{ID: "2"}), ErrCircuitOpen)
	assert.Equal(t, 2, inner.calls)

	open, failures, total := cb.GetStatus()
	assert.True(t, open)
	assert.Equal(t, 2, failures)
	assert.Equal(t, 2, total)

	// half-open: one more failure reopens immediately
	now = now.Add(2 * time.Minute)
	assert.Error(t, g.IndexListing(models.Property{ID: "3"}))
	assert.ErrorIs(t, g.DeleteListing("3"), ErrCircuitOpen)

	now = now.Add(2 * time.Minute)
	inner.err = nil
	assert.NoError(t, g.IndexListing(models.Property{ID: "4"}))
	open, _, _ = cb.GetStatus()
	assert.False(t, open)
}

func TestGuardedIndex_ReplaceAllBypassesOpenCircuit(t *testing.T) {
	cb := NewCircuitBreaker(1, time.Hour)
	inner := &flakyIndex{err: errors.New("down")}
	g := NewGuardedIndex(inner, cb)

	assert.Error(t, g.DeleteListing("1"))
	assert.ErrorIs(t, g.DeleteListing("1"), ErrCircuitOpen)

	inner.err = nil
	assert.NoError(t, g.ReplaceAll(nil))
	assert.Equal(t, 2, inner.calls)
	assert.True(t, cb.CanProceed())
}
