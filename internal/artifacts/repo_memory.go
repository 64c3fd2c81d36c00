package artifacts

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory Repo used in dev and tests.
type MemoryRepo struct {
	mu        sync.RWMutex
	artifacts map[string]Artifact
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{artifacts: make(map[string]Artifact)}
}

func (r *MemoryRepo) Create(ctx context.Context, artifact Artifact) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	if artifact.ID == "" {
		artifact.ID = uuid.NewString()
	}
	if artifact.CreatedAt.IsZero() {
		artifact.CreatedAt = time.Now().UTC()
	}
	stored, err := deepCopy(artifact)
	if err != nil {
		return Artifact{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.artifacts[artifact.ID] = stored
	return artifact, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, artifactID string) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	artifact, ok := r.artifacts[artifactID]
	if !ok || artifact.UserID != userID {
		return Artifact{}, ErrNotFound
	}
	return deepCopy(artifact)
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, filter Filter) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []Artifact
	for _, artifact := range r.artifacts {
		if artifact.UserID != userID {
			continue
		}
		if filter.Kind != "" && !strings.EqualFold(artifact.Kind, filter.Kind) {
			continue
		}
		if filter.JobID != nil && (artifact.JobID == nil || *artifact.JobID != *filter.JobID) {
			continue
		}
		matched = append(matched, artifact)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}

	out := make([]Summary, 0, len(matched))
	for _, artifact := range matched {
		out = append(out, Summarize(artifact))
	}
	return out, nil
}

// deepCopy isolates stored content maps from caller mutation.
func deepCopy(artifact Artifact) (Artifact, error) {
	payload, err := json.Marshal(artifact)
	if err != nil {
		return Artifact{}, err
	}
	var out Artifact
	if err := json.Unmarshal(payload, &out); err != nil {
		return Artifact{}, err
	}
	return out, nil
}
