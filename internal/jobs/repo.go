package jobs

import "context"

// Repo defines read operations for job postings. GetByID is unscoped on
// purpose: the aggregator performs the ownership check so a mismatch can be
// reported distinctly from absence.
type Repo interface {
	GetByID(ctx context.Context, jobID int64) (Job, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Job, error)
}
