// Package types defines the shared data model for the Folio system:
// portfolio content records (diary activities, jobs, education, projects,
// tools) and the chat types exchanged with the conversational assistant.
package types

import (
	"strings"
	"time"
)

// InformationalMarker is the reserved title prefix that reclassifies a diary
// entry as general background information rather than an episodic activity.
// Entries carrying the marker must never be presented as diary content.
const InformationalMarker = "&&"

// ActivityEntry is a single diary record. Entries whose title begins with
// InformationalMarker hold general facts about the subject (favorite foods,
// pets, and so on) and are partitioned out by the context assembler.
type ActivityEntry struct {
	ID      string    `json:"id"`             // Unique identifier
	Title   string    `json:"title"`          // Entry title, possibly marker-prefixed
	Content string    `json:"content"`        // Full entry body
	Date    time.Time `json:"date"`           // When the activity happened
	Tags    []string  `json:"tags,omitempty"` // Topical tags (leisure, work, ...)
	Mood    string    `json:"mood,omitempty"` // Optional mood note
}

// IsInformational reports whether the entry is a general-information record
// rather than an episodic diary activity.
func (e *ActivityEntry) IsInformational() bool {
	return strings.HasPrefix(e.Title, InformationalMarker)
}

// DisplayTitle returns the title with the informational marker stripped.
func (e *ActivityEntry) DisplayTitle() string {
	return strings.TrimSpace(strings.TrimPrefix(e.Title, InformationalMarker))
}

// HasAnyTag reports whether the entry carries at least one of the given tags.
func (e *ActivityEntry) HasAnyTag(tags []string) bool {
	for _, want := range tags {
		for _, have := range e.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// JobRecord describes one position in the subject's work history.
type JobRecord struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Company          string     `json:"company"`
	Location         string     `json:"location"`
	Type             string     `json:"type"` // Full-time, Contract, ...
	StartDate        time.Time  `json:"start_date"`
	EndDate          *time.Time `json:"end_date,omitempty"` // nil = current position
	Description      string     `json:"description"`
	Technologies     []string   `json:"technologies,omitempty"`
	Responsibilities []string   `json:"responsibilities,omitempty"`
}

// EducationRecord describes one degree or program.
type EducationRecord struct {
	ID          string     `json:"id"`
	Institution string     `json:"institution"`
	Degree      string     `json:"degree"`
	DegreeType  string     `json:"degree_type"` // Bachelor's, Master's, ...
	Field       string     `json:"field"`
	Location    string     `json:"location"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	GPA         string     `json:"gpa,omitempty"`
	Courses     []string   `json:"courses,omitempty"`
}

// ProjectRecord describes one portfolio project.
type ProjectRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	GithubURL   string `json:"github_url,omitempty"`
}

// ToolRecord describes one tool or technology the subject works with.
type ToolRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
