package generation

import (
	"jobtrack-backend/internal/jobs"
	"jobtrack-backend/internal/profiles"
)

// Request describes one generation call. It is constructed per call and
// never persisted as-is.
type Request struct {
	UserID  string
	JobID   int64
	Kind    Kind
	Options Options
}

// Options carries caller tuning for a generation.
type Options struct {
	Tone        string  `json:"tone,omitempty"`
	Temperature float32 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"maxTokens,omitempty"`
	Model       string  `json:"model,omitempty"`
}

// AggregatedContext is a read-only snapshot of everything a prompt builder
// needs for one request: the requester's profile, the target job, and the
// kind-relevant collections. Collections that could not be fetched are
// empty, never nil checks required by callers.
type AggregatedContext struct {
	Profile        profiles.Profile
	Job            jobs.Job
	Skills         []profiles.Skill
	Employment     []profiles.Employment
	Education      []profiles.Education
	Projects       []profiles.Project
	Certifications []profiles.Certification
}

// PromptSpec is a bounded instruction string with provenance for the
// artifact metadata. The prompt body itself contains no timestamps.
type PromptSpec struct {
	Prompt          string
	Kind            Kind
	TemplateVersion string
	Truncated       bool
}
