package jobs

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) GetByID(ctx context.Context, jobID int64) (Job, error) {
	const query = `
SELECT id, user_id, title, company, location, url, description, salary_range, status, notes, posted_at, created_at
FROM jobs
WHERE id = $1
LIMIT 1`
	var job Job
	var posted sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, jobID).Scan(
		&job.ID,
		&job.UserID,
		&job.Title,
		&job.Company,
		&job.Location,
		&job.URL,
		&job.Description,
		&job.SalaryRange,
		&job.Status,
		&job.Notes,
		&posted,
		&job.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	if posted.Valid {
		t := posted.Time
		job.PostedAt = &t
	}
	return job, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Job, error) {
	const query = `
SELECT id, user_id, title, company, location, url, description, salary_range, status, notes, posted_at, created_at
FROM jobs
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		var job Job
		var posted sql.NullTime
		if err := rows.Scan(
			&job.ID,
			&job.UserID,
			&job.Title,
			&job.Company,
			&job.Location,
			&job.URL,
			&job.Description,
			&job.SalaryRange,
			&job.Status,
			&job.Notes,
			&posted,
			&job.CreatedAt,
		); err != nil {
			return nil, err
		}
		if posted.Valid {
			t := posted.Time
			job.PostedAt = &t
		}
		out = append(out, job)
	}
	return out, rows.Err()
}
