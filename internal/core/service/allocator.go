package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/peopleops/employee-api/internal/core/domain"
	"github.com/peopleops/employee-api/internal/core/ports"
)

const (
	employeeIDCounter = "employee_id"
	allocMaxAttempts  = 3
	allocBaseBackoff  = 50 * time.Millisecond
)

// IDAllocator produces the next employee identifier from the store's atomic
// counter. Identifiers strictly increase by one per successful allocation
// and are never reissued: if the create that owns an allocation fails
// afterwards, the identifier is burned rather than reclaimed.
type IDAllocator struct {
	seq ports.SequenceRepository
	log zerolog.Logger
}

func NewIDAllocator(seq ports.SequenceRepository, log zerolog.Logger) *IDAllocator {
	return &IDAllocator{seq: seq, log: log}
}

// Next returns a never-before-issued identifier and its numeric sequence.
// Transient store failures are retried a bounded number of times with
// backoff before surfacing domain.ErrStoreTimeout.
func (a *IDAllocator) Next(ctx context.Context) (string, int64, error) {
	var lastErr error
	backoff := allocBaseBackoff

	for attempt := 1; attempt <= allocMaxAttempts; attempt++ {
		n, err := a.seq.Next(ctx, employeeIDCounter)
		if err == nil {
			return FormatEmployeeID(n), n, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		a.log.Warn().Err(err).Int("attempt", attempt).Msg("identifier allocation failed, retrying")
		time.Sleep(backoff)
		backoff *= 2
	}

	return "", 0, fmt.Errorf("allocate employee id: %v: %w", lastErr, domain.ErrStoreTimeout)
}

// FormatEmployeeID renders a sequence value as E001, E002, … The padding is
// a minimum of three digits and widens automatically past 999 (E1000).
func FormatEmployeeID(n int64) string {
	return fmt.Sprintf("E%03d", n)
}
