package artifacts

import "time"

// Artifact is a persisted generation result owned by a single user.
// Artifacts are immutable once created; regeneration creates a new row.
type Artifact struct {
	ID            string         `json:"id"`
	UserID        string         `json:"userId"`
	JobID         *int64         `json:"jobId,omitempty"`
	Kind          string         `json:"kind"`
	Title         string         `json:"title,omitempty"`
	PromptExcerpt string         `json:"promptExcerpt,omitempty"`
	ModelID       string         `json:"modelId,omitempty"`
	Content       map[string]any `json:"content"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// Summary is the listing projection of an Artifact, without content.
type Summary struct {
	ID        string    `json:"id"`
	JobID     *int64    `json:"jobId,omitempty"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title,omitempty"`
	ModelID   string    `json:"modelId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Filter narrows artifact listings.
type Filter struct {
	Kind   string
	JobID  *int64
	Limit  int
	Offset int
}

// Summarize projects an Artifact into its Summary.
func Summarize(a Artifact) Summary {
	return Summary{
		ID:        a.ID,
		JobID:     a.JobID,
		Kind:      a.Kind,
		Title:     a.Title,
		ModelID:   a.ModelID,
		CreatedAt: a.CreatedAt,
	}
}
