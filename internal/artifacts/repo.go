package artifacts

import "context"

// Repo defines persistence operations for artifacts. Get and List are
// ownership-scoped: an artifact owned by another user is reported as absent,
// never disclosed.
type Repo interface {
	Create(ctx context.Context, artifact Artifact) (Artifact, error)
	GetByID(ctx context.Context, userID, artifactID string) (Artifact, error)
	ListByUser(ctx context.Context, userID string, filter Filter) ([]Summary, error)
}
