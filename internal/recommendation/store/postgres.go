// internal/recommendation/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	apperrors "automation-advisor/internal/common/errors"
	"automation-advisor/internal/common/logger"
	"automation-advisor/internal/models"
)

const listCandidatesQuery = `SELECT id, title, description, category, complexity, integrations, tags,
	trigger_type, source, is_ai_generated, verification_status, rating, popularity, downloads
FROM workflows
WHERE active = true AND verification_status = ANY($1)
ORDER BY popularity DESC, id
LIMIT $2`

// PostgresStore reads the consolidated workflows table.
type PostgresStore struct {
	db       *sql.DB
	statuses []string
	logger   logger.Logger
}

func NewPostgresStore(db *sql.DB, statuses []string, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:       db,
		statuses: statuses,
		logger:   logger.ForComponent(log, "candidate-store-postgres"),
	}
}

func (s *PostgresStore) ListCandidates(ctx context.Context, limit int) ([]models.CandidateSolution, error) {
	rows, err := s.db.QueryContext(ctx, listCandidatesQuery, pq.Array(s.statuses), limit)
	if err != nil {
		return nil, apperrors.NewCandidateStoreFailedError("postgres", err)
	}
	defer rows.Close()

	candidates := make([]models.CandidateSolution, 0, 64)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, apperrors.NewCandidateStoreFailedError("postgres", fmt.Errorf("scan candidate: %w", err))
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewCandidateStoreFailedError("postgres", err)
	}

	s.logger.Debug("candidates loaded", map[string]interface{}{
		"count": len(candidates),
		"limit": limit,
	})
	return candidates, nil
}

func scanCandidate(rows *sql.Rows) (models.CandidateSolution, error) {
	var (
		c                                         models.CandidateSolution
		description, category, complexity, source sql.NullString
		triggerType, status                       sql.NullString
		integrations, tags                        pq.StringArray
		rating                                    sql.NullFloat64
		popularity, downloads                     sql.NullInt64
	)

	err := rows.Scan(
		&c.ID, &c.Title, &description, &category, &complexity, &integrations, &tags,
		&triggerType, &source, &c.IsAIGenerated, &status, &rating, &popularity, &downloads,
	)
	if err != nil {
		return c, err
	}

	c.Description = description.String
	c.Category = category.String
	c.Complexity = complexity.String
	c.Integrations = []string(integrations)
	c.Tags = []string(tags)
	c.TriggerType = triggerType.String
	c.Source = source.String
	c.VerificationStatus = status.String
	c.Verified = status.String == statusVerified
	c.Rating = rating.Float64
	c.Popularity = int(popularity.Int64)
	c.Downloads = int(downloads.Int64)
	return c, nil
}
