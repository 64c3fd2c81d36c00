package profiles

import "context"

// Repo defines read operations over a user's profile and its collections.
// All reads are scoped to the owning user; the generation pipeline never
// writes profile data.
type Repo interface {
	GetProfile(ctx context.Context, userID string) (Profile, error)
	ListSkills(ctx context.Context, userID string) ([]Skill, error)
	ListEmployment(ctx context.Context, userID string) ([]Employment, error)
	ListEducation(ctx context.Context, userID string) ([]Education, error)
	ListProjects(ctx context.Context, userID string) ([]Project, error)
	ListCertifications(ctx context.Context, userID string) ([]Certification, error)
}
