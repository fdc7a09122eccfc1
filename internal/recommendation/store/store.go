// internal/recommendation/store/store.go
package store

import (
	"context"

	"automation-advisor/internal/models"
)

// CandidateStore is a bounded bulk read of active candidate workflows.
type CandidateStore interface {
	ListCandidates(ctx context.Context, limit int) ([]models.CandidateSolution, error)
}

const (
	SourceLegacy = "legacy"

	statusVerified = "verified"
)
