package generation

import (
	"context"
	"strings"
	"time"

	"jobtrack-backend/internal/artifacts"
	"jobtrack-backend/internal/llm"
	"jobtrack-backend/internal/ratelimit"
	"jobtrack-backend/internal/shared/metrics"
	"jobtrack-backend/internal/shared/telemetry"
)

// Pipeline state names, recorded in telemetry as the request advances.
const (
	stateValidating  = "validating"
	stateRateCheck   = "rate_checking"
	stateAggregating = "aggregating"
	statePrompting   = "prompting"
	stateGenerating  = "generating"
	stateNormalizing = "normalizing"
	statePersisting  = "persisting"
	stateDone        = "done"
)

const rawPreviewMax = 400

// Service orchestrates the generation pipeline. It is the only component
// the HTTP boundary calls and the single place component failures are
// mapped into the error taxonomy.
type Service struct {
	Limiter    ratelimit.Limiter
	Aggregator *Aggregator
	Prompts    PromptBuilder
	LLM        llm.Client
	Artifacts  artifacts.Repo

	Provider string
	// ModelFor resolves the model identifier for a kind. Nil falls back to
	// the request option or empty.
	ModelFor func(kind string) string

	now func() time.Time
}

// NewService wires a Service with a real clock.
func NewService(limiter ratelimit.Limiter, agg *Aggregator, prompts PromptBuilder, client llm.Client, repo artifacts.Repo, provider string, modelFor func(string) string) *Service {
	return &Service{
		Limiter:    limiter,
		Aggregator: agg,
		Prompts:    prompts,
		LLM:        client,
		Artifacts:  repo,
		Provider:   provider,
		ModelFor:   modelFor,
		now:        time.Now,
	}
}

// Generate runs the full pipeline for one request and returns the persisted
// artifact's summary. Every failure is a *Error; callers never see raw
// component errors.
func (s *Service) Generate(ctx context.Context, req Request) (artifacts.Summary, *Error) {
	started := s.clock()()
	metrics.IncGenerationStarted()

	summary, genErr := s.run(ctx, req, started)

	elapsed := s.clock()().Sub(started)
	if genErr != nil {
		if genErr.Code == CodeRateLimited {
			metrics.IncGenerationRateLimited()
		} else {
			metrics.IncGenerationFailed()
		}
		telemetry.Error("generation.failed", map[string]any{
			"user_id":     req.UserID,
			"job_id":      req.JobID,
			"kind":        req.Kind.String(),
			"code":        string(genErr.Code),
			"duration_ms": elapsed.Milliseconds(),
		})
		return artifacts.Summary{}, genErr
	}

	metrics.IncGenerationCompleted()
	metrics.ObserveGenerationDurationMs(float64(elapsed.Milliseconds()))
	telemetry.Info("generation.completed", map[string]any{
		"user_id":     req.UserID,
		"job_id":      req.JobID,
		"kind":        req.Kind.String(),
		"artifact_id": summary.ID,
		"duration_ms": elapsed.Milliseconds(),
	})
	return summary, nil
}

func (s *Service) run(ctx context.Context, req Request, started time.Time) (artifacts.Summary, *Error) {
	s.transition(req, stateValidating)
	if strings.TrimSpace(req.UserID) == "" {
		return artifacts.Summary{}, invalidRequest("userId is required")
	}
	if req.JobID <= 0 {
		return artifacts.Summary{}, invalidRequest("jobId is required")
	}
	if _, ok := ParseKind(req.Kind.String()); !ok {
		return artifacts.Summary{}, invalidRequest("unrecognized generation kind")
	}

	s.transition(req, stateRateCheck)
	decision := s.Limiter.Admit(req.UserID)
	if !decision.Allowed {
		return artifacts.Summary{}, rateLimited(decision.RetryAfterSeconds)
	}

	s.transition(req, stateAggregating)
	aggCtx, genErr := s.Aggregator.Aggregate(ctx, req.Kind, req.UserID, req.JobID)
	if genErr != nil {
		return artifacts.Summary{}, genErr
	}

	s.transition(req, statePrompting)
	spec := s.Prompts.Build(req.Kind, aggCtx, req.Options)

	s.transition(req, stateGenerating)
	model := req.Options.Model
	if model == "" && s.ModelFor != nil {
		model = s.ModelFor(req.Kind.String())
	}
	result, err := s.LLM.Generate(ctx, llm.Request{
		Kind:        req.Kind.String(),
		Prompt:      spec.Prompt,
		Model:       model,
		Temperature: req.Options.Temperature,
		MaxTokens:   req.Options.MaxTokens,
	})
	if err != nil {
		return artifacts.Summary{}, providerError("generation backend failed", llm.IsTransient(err))
	}

	// The provider call above is allowed to finish even when the caller has
	// gone away, but its result must not be persisted after cancellation.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return artifacts.Summary{}, providerError("request canceled before persistence", false)
	}

	s.transition(req, stateNormalizing)
	content, genErr := Normalize(req.Kind, result, aggCtx)
	if genErr != nil {
		telemetry.Error("generation.malformed_output", map[string]any{
			"user_id":     req.UserID,
			"job_id":      req.JobID,
			"kind":        req.Kind.String(),
			"raw_preview": rawPreview(result),
		})
		return artifacts.Summary{}, genErr
	}

	s.transition(req, statePersisting)
	jobID := req.JobID
	draft := artifacts.Artifact{
		UserID:        req.UserID,
		JobID:         &jobID,
		Kind:          req.Kind.String(),
		Title:         artifactTitle(req.Kind, aggCtx),
		PromptExcerpt: excerpt(spec.Prompt, 200),
		ModelID:       result.Meta.Model,
		Content:       content,
		Metadata: map[string]any{
			"provider":        s.providerName(result),
			"templateVersion": spec.TemplateVersion,
			"promptTruncated": spec.Truncated,
			"totalTokens":     result.Tokens.Total,
		},
	}
	stored, err := s.Artifacts.Create(ctx, draft)
	if err != nil {
		// Generation cost is already incurred; hand the content back so the
		// caller can keep the model's work.
		return artifacts.Summary{}, persistenceError("failed to store artifact", content)
	}

	s.transition(req, stateDone)
	return artifacts.Summarize(stored), nil
}

func (s *Service) transition(req Request, state string) {
	telemetry.Info("generation.state", map[string]any{
		"user_id": req.UserID,
		"job_id":  req.JobID,
		"kind":    req.Kind.String(),
		"state":   state,
	})
}

func (s *Service) providerName(result llm.Result) string {
	if result.Meta.Provider != "" {
		return result.Meta.Provider
	}
	return s.Provider
}

func (s *Service) clock() func() time.Time {
	if s.now != nil {
		return s.now
	}
	return time.Now
}

func artifactTitle(kind Kind, aggCtx AggregatedContext) string {
	label := strings.ReplaceAll(kind.String(), "_", " ")
	target := aggCtx.Job.Title
	if aggCtx.Job.Company != "" {
		target += " at " + aggCtx.Job.Company
	}
	if strings.TrimSpace(target) == "" {
		return label
	}
	return label + ": " + target
}

func rawPreview(result llm.Result) string {
	raw := result.Text
	if len(result.JSON) > 0 {
		raw = string(result.JSON)
	}
	return excerpt(raw, rawPreviewMax)
}

func excerpt(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max]
}
