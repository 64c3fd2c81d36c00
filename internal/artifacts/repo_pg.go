package artifacts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, artifact Artifact) (Artifact, error) {
	if artifact.ID == "" {
		artifact.ID = uuid.NewString()
	}
	if artifact.CreatedAt.IsZero() {
		artifact.CreatedAt = time.Now().UTC()
	}

	content, err := json.Marshal(artifact.Content)
	if err != nil {
		return Artifact{}, fmt.Errorf("marshal content: %w", err)
	}
	metadata := []byte("{}")
	if artifact.Metadata != nil {
		metadata, err = json.Marshal(artifact.Metadata)
		if err != nil {
			return Artifact{}, fmt.Errorf("marshal metadata: %w", err)
		}
	}

	const query = `
INSERT INTO artifacts (id, user_id, job_id, kind, title, prompt_excerpt, model_id, content, metadata, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.DB.ExecContext(ctx, query,
		artifact.ID,
		artifact.UserID,
		nullableJobID(artifact.JobID),
		artifact.Kind,
		artifact.Title,
		artifact.PromptExcerpt,
		artifact.ModelID,
		content,
		metadata,
		artifact.CreatedAt,
	)
	if err != nil {
		return Artifact{}, err
	}
	return artifact, nil
}

func (r *PGRepo) GetByID(ctx context.Context, userID, artifactID string) (Artifact, error) {
	const query = `
SELECT id, user_id, job_id, kind, title, prompt_excerpt, model_id, content, metadata, created_at
FROM artifacts
WHERE id = $1 AND user_id = $2
LIMIT 1`
	var artifact Artifact
	var jobID sql.NullInt64
	var content, metadata []byte
	err := r.DB.QueryRowContext(ctx, query, artifactID, userID).Scan(
		&artifact.ID,
		&artifact.UserID,
		&jobID,
		&artifact.Kind,
		&artifact.Title,
		&artifact.PromptExcerpt,
		&artifact.ModelID,
		&content,
		&metadata,
		&artifact.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Artifact{}, ErrNotFound
		}
		return Artifact{}, err
	}
	if jobID.Valid {
		v := jobID.Int64
		artifact.JobID = &v
	}
	if len(content) > 0 {
		if err := json.Unmarshal(content, &artifact.Content); err != nil {
			return Artifact{}, fmt.Errorf("unmarshal content: %w", err)
		}
	}
	if len(metadata) > 0 {
		_ = json.Unmarshal(metadata, &artifact.Metadata)
	}
	return artifact, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, filter Filter) ([]Summary, error) {
	var (
		conditions = []string{"user_id = $1"}
		args       = []any{userID}
	)
	if filter.Kind != "" {
		args = append(args, strings.ToLower(filter.Kind))
		conditions = append(conditions, fmt.Sprintf("kind = $%d", len(args)))
	}
	if filter.JobID != nil {
		args = append(args, *filter.JobID)
		conditions = append(conditions, fmt.Sprintf("job_id = $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
SELECT id, job_id, kind, title, model_id, created_at
FROM artifacts
WHERE %s
ORDER BY created_at DESC, id DESC
LIMIT $%d OFFSET $%d`, strings.Join(conditions, " AND "), len(args)-1, len(args))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var summary Summary
		var jobID sql.NullInt64
		if err := rows.Scan(&summary.ID, &jobID, &summary.Kind, &summary.Title, &summary.ModelID, &summary.CreatedAt); err != nil {
			return nil, err
		}
		if jobID.Valid {
			v := jobID.Int64
			summary.JobID = &v
		}
		out = append(out, summary)
	}
	return out, rows.Err()
}

func nullableJobID(jobID *int64) any {
	if jobID == nil {
		return nil
	}
	return *jobID
}
