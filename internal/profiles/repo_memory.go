package profiles

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory Repo used in dev and tests.
type MemoryRepo struct {
	mu             sync.RWMutex
	profiles       map[string]Profile
	skills         map[string][]Skill
	employment     map[string][]Employment
	education      map[string][]Education
	projects       map[string][]Project
	certifications map[string][]Certification
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		profiles:       make(map[string]Profile),
		skills:         make(map[string][]Skill),
		employment:     make(map[string][]Employment),
		education:      make(map[string][]Education),
		projects:       make(map[string][]Project),
		certifications: make(map[string][]Certification),
	}
}

// PutProfile seeds a profile. Writes exist only for dev seeding and tests.
func (r *MemoryRepo) PutProfile(profile Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UserID] = profile
}

func (r *MemoryRepo) AddSkill(s Skill) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skills[s.UserID] = append(r.skills[s.UserID], s)
}

func (r *MemoryRepo) AddEmployment(e Employment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.employment[e.UserID] = append(r.employment[e.UserID], e)
}

func (r *MemoryRepo) AddEducation(e Education) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.education[e.UserID] = append(r.education[e.UserID], e)
}

func (r *MemoryRepo) AddProject(p Project) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[p.UserID] = append(r.projects[p.UserID], p)
}

func (r *MemoryRepo) AddCertification(c Certification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.certifications[c.UserID] = append(r.certifications[c.UserID], c)
}

func (r *MemoryRepo) GetProfile(ctx context.Context, userID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return profile, nil
}

func (r *MemoryRepo) ListSkills(ctx context.Context, userID string) ([]Skill, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Skill(nil), r.skills[userID]...), nil
}

func (r *MemoryRepo) ListEmployment(ctx context.Context, userID string) ([]Employment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Employment(nil), r.employment[userID]...), nil
}

func (r *MemoryRepo) ListEducation(ctx context.Context, userID string) ([]Education, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Education(nil), r.education[userID]...), nil
}

func (r *MemoryRepo) ListProjects(ctx context.Context, userID string) ([]Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Project(nil), r.projects[userID]...), nil
}

func (r *MemoryRepo) ListCertifications(ctx context.Context, userID string) ([]Certification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Certification(nil), r.certifications[userID]...), nil
}
