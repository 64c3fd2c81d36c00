package jobs

import "time"

// Job is a saved job posting tracked by a user.
type Job struct {
	ID          int64      `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	URL         string     `json:"url,omitempty"`
	Description string     `json:"description,omitempty"`
	SalaryRange string     `json:"salaryRange,omitempty"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	PostedAt    *time.Time `json:"postedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
