package profiles

import "time"

// Profile is a user's stored career profile.
type Profile struct {
	UserID    string    `json:"userId"`
	FullName  string    `json:"fullName"`
	Headline  string    `json:"headline"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Location  string    `json:"location"`
	Summary   string    `json:"summary"`
	Links     []string  `json:"links,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Skill is a single profile skill entry.
type Skill struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Level    string `json:"level,omitempty"`
	Years    int    `json:"years,omitempty"`
	Position int    `json:"position"`
}

// Employment is a work-history entry.
type Employment struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Company     string     `json:"company"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
}

// Education is a schooling entry.
type Education struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	School    string `json:"school"`
	Degree    string `json:"degree,omitempty"`
	Field     string `json:"field,omitempty"`
	StartYear int    `json:"startYear,omitempty"`
	EndYear   int    `json:"endYear,omitempty"`
}

// Project is a portfolio project entry.
type Project struct {
	ID           string   `json:"id"`
	UserID       string   `json:"userId"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	URL          string   `json:"url,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// Certification is a professional certification entry.
type Certification struct {
	ID       string     `json:"id"`
	UserID   string     `json:"userId"`
	Name     string     `json:"name"`
	Issuer   string     `json:"issuer,omitempty"`
	IssuedAt *time.Time `json:"issuedAt,omitempty"`
}
