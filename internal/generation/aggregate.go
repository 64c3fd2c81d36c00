package generation

import (
	"context"
	"errors"
	"sync"

	"jobtrack-backend/internal/jobs"
	"jobtrack-backend/internal/profiles"
	"jobtrack-backend/internal/shared/telemetry"
)

// Aggregator assembles the read-only context for a generation request.
type Aggregator struct {
	Profiles profiles.Repo
	Jobs     jobs.Repo
}

// Aggregate fetches the profile and target job, verifies ownership, and for
// kinds that need it loads the profile collections. The ownership check is
// fail-closed and happens before any enrichment fetch. A failed collection
// fetch degrades to an empty list; profile and job failures abort.
func (a *Aggregator) Aggregate(ctx context.Context, kind Kind, userID string, jobID int64) (AggregatedContext, *Error) {
	profile, err := a.Profiles.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			return AggregatedContext{}, notFound("profile")
		}
		return AggregatedContext{}, backendUnavailable("profile store unreachable")
	}

	job, err := a.Jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			return AggregatedContext{}, notFound("job")
		}
		return AggregatedContext{}, backendUnavailable("job store unreachable")
	}
	if job.UserID != "" && job.UserID != userID {
		return AggregatedContext{}, ownershipMismatch()
	}

	aggCtx := AggregatedContext{Profile: profile, Job: job}
	if !kind.needsEnrichment() {
		return aggCtx, nil
	}

	// Collections are read-only and independent, so they load concurrently
	// and merge only after every fetch has completed or degraded.
	var wg sync.WaitGroup
	fetch := func(name string, load func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := load(); err != nil {
				telemetry.Warn("generation.aggregate.degraded", map[string]any{
					"collection": name,
					"user_id":    userID,
					"error":      err.Error(),
				})
			}
		}()
	}

	fetch("skills", func() error {
		var err error
		aggCtx.Skills, err = a.Profiles.ListSkills(ctx, userID)
		return err
	})
	fetch("employment", func() error {
		var err error
		aggCtx.Employment, err = a.Profiles.ListEmployment(ctx, userID)
		return err
	})
	fetch("education", func() error {
		var err error
		aggCtx.Education, err = a.Profiles.ListEducation(ctx, userID)
		return err
	})
	fetch("projects", func() error {
		var err error
		aggCtx.Projects, err = a.Profiles.ListProjects(ctx, userID)
		return err
	})
	fetch("certifications", func() error {
		var err error
		aggCtx.Certifications, err = a.Profiles.ListCertifications(ctx, userID)
		return err
	})
	wg.Wait()

	return aggCtx, nil
}
