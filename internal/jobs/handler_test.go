package jobs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/shared/server/middleware"
)

func setupJobsRouter(t *testing.T) (*gin.Engine, *MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := NewMemoryRepo()
	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(middleware.Auth("dev"))
	NewHandler(repo).RegisterRoutes(api)
	return router, repo
}

func TestListJobsScopedToUser(t *testing.T) {
	router, repo := setupJobsRouter(t)

	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	repo.Put(Job{ID: 1, UserID: "guest:g1", Title: "Engineer", Company: "Acme", CreatedAt: base})
	repo.Put(Job{ID: 2, UserID: "guest:g1", Title: "Senior Engineer", Company: "Initech", CreatedAt: base.Add(time.Hour)})
	repo.Put(Job{ID: 3, UserID: "guest:other", Title: "Analyst", Company: "Elsewhere", CreatedAt: base})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	req.Header.Set("X-Guest-Id", "g1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	var body struct {
		Jobs []Job `json:"jobs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Jobs) != 2 {
		t.Fatalf("jobs = %d, want 2", len(body.Jobs))
	}
	for _, job := range body.Jobs {
		if job.UserID != "guest:g1" {
			t.Fatalf("leaked job %+v", job)
		}
	}
}

func TestListJobsPagination(t *testing.T) {
	router, repo := setupJobsRouter(t)

	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	for i := int64(1); i <= 5; i++ {
		repo.Put(Job{ID: i, UserID: "guest:g1", Title: "Role", CreatedAt: base.Add(time.Duration(i) * time.Minute)})
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs?limit=2&offset=2", nil)
	req.Header.Set("X-Guest-Id", "g1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var body struct {
		Jobs []Job `json:"jobs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Jobs) != 2 {
		t.Fatalf("jobs = %d, want 2", len(body.Jobs))
	}
}
