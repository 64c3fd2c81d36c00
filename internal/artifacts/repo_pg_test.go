package artifacts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateInsertsRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	jobID := int64(42)
	artifact := Artifact{
		ID:            "artifact-1",
		UserID:        "user-1",
		JobID:         &jobID,
		Kind:          "resume",
		Title:         "resume: Engineer",
		PromptExcerpt: "You are preparing tailored resume guidance",
		ModelID:       "gpt-4o-mini",
		Content:       map[string]any{"summary": "s"},
		Metadata:      map[string]any{"provider": "mock"},
		CreatedAt:     time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO artifacts").
		WithArgs(
			artifact.ID,
			artifact.UserID,
			jobID,
			artifact.Kind,
			artifact.Title,
			artifact.PromptExcerpt,
			artifact.ModelID,
			sqlmock.AnyArg(), // content
			sqlmock.AnyArg(), // metadata
			sqlmock.AnyArg(), // created_at
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if _, err := repo.Create(context.Background(), artifact); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateAssignsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("INSERT INTO artifacts").
		WillReturnResult(sqlmock.NewResult(1, 1))

	created, err := repo.Create(context.Background(), Artifact{
		UserID:  "user-1",
		Kind:    "resume",
		Content: map[string]any{"summary": "s"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected an assigned id")
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("expected a stamped createdAt")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDScopesToUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	createdAt := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "job_id", "kind", "title", "prompt_excerpt", "model_id", "content", "metadata", "created_at",
	}).AddRow(
		"artifact-1", "user-1", int64(42), "resume", "t", "p", "m",
		[]byte(`{"summary":"s","orderedSkills":["Go"]}`), []byte(`{"provider":"mock"}`), createdAt,
	)

	mock.ExpectQuery("SELECT (.+) FROM artifacts").
		WithArgs("artifact-1", "user-1").
		WillReturnRows(rows)

	artifact, err := repo.GetByID(context.Background(), "user-1", "artifact-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if artifact.Content["summary"] != "s" {
		t.Fatalf("content = %v", artifact.Content)
	}
	if artifact.JobID == nil || *artifact.JobID != 42 {
		t.Fatalf("jobID = %v", artifact.JobID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT (.+) FROM artifacts").
		WithArgs("missing", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetByID(context.Background(), "user-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPGRepoListAppliesFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	createdAt := time.Now().UTC()
	jobID := int64(42)

	rows := sqlmock.NewRows([]string{"id", "job_id", "kind", "title", "model_id", "created_at"}).
		AddRow("artifact-1", jobID, "resume", "t", "m", createdAt)

	mock.ExpectQuery("SELECT (.+) FROM artifacts").
		WithArgs("user-1", "resume", jobID, 10, 0).
		WillReturnRows(rows)

	list, err := repo.ListByUser(context.Background(), "user-1", Filter{Kind: "resume", JobID: &jobID, Limit: 10})
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 1 || list[0].ID != "artifact-1" {
		t.Fatalf("list = %+v", list)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
