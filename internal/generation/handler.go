package generation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/artifacts"
	"jobtrack-backend/internal/shared/server/middleware"
	"jobtrack-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the generation service.
type Handler struct {
	Svc       *Service
	Artifacts artifacts.Repo
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, repo artifacts.Repo) *Handler {
	return &Handler{Svc: svc, Artifacts: repo}
}

// RegisterRoutes attaches generation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generations", h.requestGeneration)
	rg.GET("/artifacts", h.listArtifacts)
	rg.GET("/artifacts/:id", h.getArtifact)
}

type generationBody struct {
	JobID   int64   `json:"jobId"`
	Kind    string  `json:"kind"`
	Options Options `json:"options"`
}

func (h *Handler) requestGeneration(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var body generationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	kind, ok := ParseKind(body.Kind)
	if !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unrecognized generation kind", []map[string]string{
			{"field": "kind", "issue": "unrecognized"},
		})
		return
	}

	summary, genErr := h.Svc.Generate(c.Request.Context(), Request{
		UserID:  userID,
		JobID:   body.JobID,
		Kind:    kind,
		Options: body.Options,
	})
	if genErr != nil {
		writeGenerationError(c, genErr)
		return
	}

	respond.JSON(c, http.StatusCreated, summary)
}

func (h *Handler) listArtifacts(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	filter := artifacts.Filter{
		Kind:   c.Query("kind"),
		Limit:  queryInt(c, "limit", 50),
		Offset: queryInt(c, "offset", 0),
	}
	if raw := c.Query("jobId"); raw != "" {
		jobID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "jobId must be an integer", nil)
			return
		}
		filter.JobID = &jobID
	}

	list, err := h.Artifacts.ListByUser(c.Request.Context(), userID, filter)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list artifacts", nil)
		return
	}
	respond.OK(c, gin.H{"artifacts": list})
}

func (h *Handler) getArtifact(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	artifactID := c.Param("id")
	if artifactID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "artifact id is required", nil)
		return
	}

	artifact, err := h.Artifacts.GetByID(c.Request.Context(), userID, artifactID)
	if err != nil {
		switch {
		case errors.Is(err, artifacts.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "artifact not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch artifact", nil)
		}
		return
	}
	respond.OK(c, artifact)
}

// writeGenerationError maps the error taxonomy onto HTTP statuses. The
// response body carries the code and retry hints; persistence failures
// include the normalized content so the caller keeps the generated work.
func writeGenerationError(c *gin.Context, genErr *Error) {
	status := http.StatusInternalServerError
	switch genErr.Code {
	case CodeInvalidRequest:
		status = http.StatusBadRequest
	case CodeRateLimited:
		status = http.StatusTooManyRequests
		c.Header("Retry-After", strconv.Itoa(genErr.RetryAfterSeconds))
	case CodeNotFound:
		status = http.StatusNotFound
	case CodeOwnershipMismatch:
		status = http.StatusForbidden
	case CodeBackendUnavailable:
		status = http.StatusServiceUnavailable
	case CodeProviderError:
		status = http.StatusBadGateway
	case CodeMalformedOutput:
		status = http.StatusBadGateway
	case CodePersistenceError:
		status = http.StatusInternalServerError
	}

	details := map[string]any{"retryable": genErr.Retryable}
	if genErr.RetryAfterSeconds > 0 {
		details["retryAfterSeconds"] = genErr.RetryAfterSeconds
	}
	if genErr.Content != nil {
		details["content"] = genErr.Content
	}
	respond.Error(c, status, string(genErr.Code), genErr.Message, details)
}

func queryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}
