package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) GetProfile(ctx context.Context, userID string) (Profile, error) {
	const query = `
SELECT user_id, full_name, headline, email, phone, location, summary, links, created_at, updated_at
FROM profiles
WHERE user_id = $1
LIMIT 1`
	var profile Profile
	var links []byte
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.FullName,
		&profile.Headline,
		&profile.Email,
		&profile.Phone,
		&profile.Location,
		&profile.Summary,
		&links,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	if len(links) > 0 {
		_ = json.Unmarshal(links, &profile.Links)
	}
	return profile, nil
}

func (r *PGRepo) ListSkills(ctx context.Context, userID string) ([]Skill, error) {
	const query = `
SELECT id, user_id, name, level, years, position
FROM skills
WHERE user_id = $1
ORDER BY position ASC, name ASC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Skill
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Level, &s.Years, &s.Position); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PGRepo) ListEmployment(ctx context.Context, userID string) ([]Employment, error) {
	const query = `
SELECT id, user_id, company, title, description, start_date, end_date
FROM employment
WHERE user_id = $1
ORDER BY start_date DESC NULLS LAST`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employment
	for rows.Next() {
		var e Employment
		var start, end sql.NullTime
		if err := rows.Scan(&e.ID, &e.UserID, &e.Company, &e.Title, &e.Description, &start, &end); err != nil {
			return nil, err
		}
		e.StartDate = nullableTime(start)
		e.EndDate = nullableTime(end)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PGRepo) ListEducation(ctx context.Context, userID string) ([]Education, error) {
	const query = `
SELECT id, user_id, school, degree, field, start_year, end_year
FROM education
WHERE user_id = $1
ORDER BY end_year DESC NULLS LAST`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Education
	for rows.Next() {
		var e Education
		var startYear, endYear sql.NullInt64
		if err := rows.Scan(&e.ID, &e.UserID, &e.School, &e.Degree, &e.Field, &startYear, &endYear); err != nil {
			return nil, err
		}
		if startYear.Valid {
			e.StartYear = int(startYear.Int64)
		}
		if endYear.Valid {
			e.EndYear = int(endYear.Int64)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PGRepo) ListProjects(ctx context.Context, userID string) ([]Project, error) {
	const query = `
SELECT id, user_id, name, description, url, technologies
FROM projects
WHERE user_id = $1
ORDER BY name ASC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		var p Project
		var technologies []byte
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.URL, &technologies); err != nil {
			return nil, err
		}
		if len(technologies) > 0 {
			_ = json.Unmarshal(technologies, &p.Technologies)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) ListCertifications(ctx context.Context, userID string) ([]Certification, error) {
	const query = `
SELECT id, user_id, name, issuer, issued_at
FROM certifications
WHERE user_id = $1
ORDER BY issued_at DESC NULLS LAST`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Certification
	for rows.Next() {
		var c Certification
		var issued sql.NullTime
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Issuer, &issued); err != nil {
			return nil, err
		}
		c.IssuedAt = nullableTime(issued)
		out = append(out, c)
	}
	return out, rows.Err()
}

func nullableTime(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	t := value.Time
	return &t
}
