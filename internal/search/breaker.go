package search

import (
	"errors"
	"log"
	"sync"
	"time"

	"property-marketplace/internal/models"
)

// ErrCircuitOpen is returned while the breaker is refusing index writes
var ErrCircuitOpen = errors.New("search index unavailable (circuit open)")

// CircuitBreaker stops index writes after repeated engine failures and
// lets one through again once resetTimeout has passed
type CircuitBreaker struct {
	failureThreshold int
	resetTimeout     time.Duration
	now              func() time.Time

	failures            int
	totalRequests       int
	consecutiveFailures int
	isOpen              bool
	lastFailureTime     time.Time

	mutex sync.Mutex
}

// NewCircuitBreaker creates a new circuit breaker
func NewCircuitBreaker(failureThreshold int, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		failureThreshold: max(failureThreshold, 1),
		resetTimeout:     resetTimeout,
		now:              time.Now,
	}
}

// RecordSuccess records a successful request
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	cb.totalRequests++
	cb.consecutiveFailures = 0
	cb.isOpen = false
}

// RecordFailure records a failed request
func (cb *CircuitBreaker) RecordFailure() {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	cb.failures++
	cb.consecutiveFailures++
	cb.totalRequests++
	cb.lastFailureTime = cb.now()

	if !cb.isOpen && cb.consecutiveFailures >= cb.failureThreshold {
		cb.isOpen = true
		log.Printf("[Search] circuit open after %d consecutive failures, retrying in %v",
			cb.consecutiveFailures, cb.resetTimeout)
	}
}

// CanProceed checks if requests are allowed
func (cb *CircuitBreaker) CanProceed() bool {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	if !cb.isOpen {
		return true
	}

	if cb.now().Sub(cb.lastFailureTime) > cb.resetTimeout {
		log.Printf("[Search] circuit half-open after %v", cb.resetTimeout)
		cb.isOpen = false
		cb.consecutiveFailures = cb.failureThreshold - 1
		return true
	}
	return false
}

// GetStatus returns current circuit breaker status
func (cb *CircuitBreaker) GetStatus() (isOpen bool, failures int, total int) {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	return cb.isOpen, cb.failures, cb.totalRequests
}

// Indexer is the write side of the search engine
type Indexer interface {
	IndexListing(p models.Property) error
	DeleteListing(id string) error
	ReplaceAll(listings []models.Property) error
}

// GuardedIndex passes index writes through a circuit breaker
type GuardedIndex struct {
	next    Indexer
	breaker *CircuitBreaker
}

func NewGuardedIndex(next Indexer, breaker *CircuitBreaker) *GuardedIndex {
	return &GuardedIndex{next: next, breaker: breaker}
}

func (g *GuardedIndex) IndexListing(p models.Property) error {
	return g.call(func() error { return g.next.IndexListing(p) })
}

func (g *GuardedIndex) DeleteListing(id string) error {
	return g.call(func() error { return g.next.DeleteListing(id) })
}

// ReplaceAll always runs so a scheduled reindex can close the circuit
func (g *GuardedIndex) ReplaceAll(listings []models.Property) error {
	err := g.next.ReplaceAll(listings)
	g.record(err)
	return err
}

func (g *GuardedIndex) call(op func() error) error {
	if !g.breaker.CanProceed() {
		return ErrCircuitOpen
	}
	err := op()
	g.record(err)
	return err
}

func (g *GuardedIndex) record(err error) {
	if err != nil {
		g.breaker.RecordFailure()
		return
	}
	g.breaker.RecordSuccess()
}
