package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/artifacts"
	"jobtrack-backend/internal/jobs"
	"jobtrack-backend/internal/llm"
	"jobtrack-backend/internal/profiles"
	"jobtrack-backend/internal/shared/server/middleware"
)

const guestUserID = "guest:test-guest"

func setupGenerationRouter(t *testing.T) (*gin.Engine, *artifacts.MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	profileRepo := profiles.NewMemoryRepo()
	profileRepo.PutProfile(profiles.Profile{UserID: guestUserID, FullName: "Ada Smith"})
	profileRepo.AddSkill(profiles.Skill{ID: "s1", UserID: guestUserID, Name: "Go"})

	jobRepo := jobs.NewMemoryRepo()
	jobRepo.Put(jobs.Job{ID: 42, UserID: guestUserID, Title: "Engineer", Company: "Initech"})
	jobRepo.Put(jobs.Job{ID: 43, UserID: "someone-else", Title: "Other"})

	artifactRepo := artifacts.NewMemoryRepo()
	agg := &Aggregator{Profiles: profileRepo, Jobs: jobRepo}
	svc := NewService(allowAllLimiter{}, agg, PromptBuilder{}, llm.MockClient{}, artifactRepo, "mock", nil)
	handler := NewHandler(svc, artifactRepo)

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(middleware.Auth("dev"))
	handler.RegisterRoutes(api)

	return router, artifactRepo
}

func addGuestHeader(req *http.Request) {
	req.Header.Set("X-Guest-Id", "test-guest")
}

func postGeneration(t *testing.T, router *gin.Engine, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestRequestGenerationCreated(t *testing.T) {
	router, repo := setupGenerationRouter(t)

	resp := postGeneration(t, router, map[string]any{"jobId": 42, "kind": "resume"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}

	var summary artifacts.Summary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if summary.ID == "" || summary.Kind != "resume" {
		t.Fatalf("summary = %+v", summary)
	}

	list, err := repo.ListByUser(context.Background(), guestUserID, artifacts.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("stored artifacts = %d, want 1", len(list))
	}
}

func TestRequestGenerationUnknownKind(t *testing.T) {
	router, _ := setupGenerationRouter(t)

	resp := postGeneration(t, router, map[string]any{"jobId": 42, "kind": "haiku"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}

func TestRequestGenerationOwnershipMismatch(t *testing.T) {
	router, _ := setupGenerationRouter(t)

	resp := postGeneration(t, router, map[string]any{"jobId": 43, "kind": "resume"})
	if resp.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.Code)
	}
}

func TestRequestGenerationRateLimitHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	profileRepo := profiles.NewMemoryRepo()
	profileRepo.PutProfile(profiles.Profile{UserID: guestUserID})
	jobRepo := jobs.NewMemoryRepo()
	jobRepo.Put(jobs.Job{ID: 42, UserID: guestUserID, Title: "Engineer"})

	agg := &Aggregator{Profiles: profileRepo, Jobs: jobRepo}
	svc := NewService(denyLimiter{retryAfter: 17}, agg, PromptBuilder{}, llm.MockClient{}, artifacts.NewMemoryRepo(), "mock", nil)
	handler := NewHandler(svc, artifacts.NewMemoryRepo())

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(middleware.Auth("dev"))
	handler.RegisterRoutes(api)

	resp := postGeneration(t, router, map[string]any{"jobId": 42, "kind": "resume"})
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", resp.Code)
	}
	if got := resp.Header().Get("Retry-After"); got != "17" {
		t.Fatalf("Retry-After = %q, want 17", got)
	}
}

func TestListAndGetArtifacts(t *testing.T) {
	router, _ := setupGenerationRouter(t)

	created := postGeneration(t, router, map[string]any{"jobId": 42, "kind": "cover_letter"})
	if created.Code != http.StatusCreated {
		t.Fatalf("create status = %d", created.Code)
	}
	var summary artifacts.Summary
	if err := json.NewDecoder(created.Body).Decode(&summary); err != nil {
		t.Fatalf("decode: %v", err)
	}

	listReq := httptest.NewRequest(http.MethodGet, "/api/v1/artifacts?kind=cover_letter", nil)
	addGuestHeader(listReq)
	listResp := httptest.NewRecorder()
	router.ServeHTTP(listResp, listReq)
	if listResp.Code != http.StatusOK {
		t.Fatalf("list status = %d", listResp.Code)
	}
	var listBody struct {
		Artifacts []artifacts.Summary `json:"artifacts"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&listBody); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listBody.Artifacts) != 1 {
		t.Fatalf("list length = %d, want 1", len(listBody.Artifacts))
	}

	getReq := httptest.NewRequest(http.MethodGet, "/api/v1/artifacts/"+summary.ID, nil)
	addGuestHeader(getReq)
	getResp := httptest.NewRecorder()
	router.ServeHTTP(getResp, getReq)
	if getResp.Code != http.StatusOK {
		t.Fatalf("get status = %d", getResp.Code)
	}
	var artifact artifacts.Artifact
	if err := json.NewDecoder(getResp.Body).Decode(&artifact); err != nil {
		t.Fatalf("decode artifact: %v", err)
	}
	if artifact.ID != summary.ID || len(artifact.Content) == 0 {
		t.Fatalf("artifact = %+v", artifact)
	}
}

func TestGetArtifactOtherUser(t *testing.T) {
	router, _ := setupGenerationRouter(t)

	created := postGeneration(t, router, map[string]any{"jobId": 42, "kind": "resume"})
	var summary artifacts.Summary
	if err := json.NewDecoder(created.Body).Decode(&summary); err != nil {
		t.Fatalf("decode: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/artifacts/"+summary.ID, nil)
	req.Header.Set("X-Guest-Id", "another-guest")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for a foreign artifact", resp.Code)
	}
}
