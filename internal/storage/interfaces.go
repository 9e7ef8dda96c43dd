// Package storage provides the content store interface for the Folio system.
//
// The content store holds the five portfolio collections (diary activities,
// jobs, education, projects, tools). The chat engine only ever reads; the
// save operations exist so that the portfolio can be populated over the API
// and so tests can seed fixtures. All collections are small and bounded, so
// list operations return full result sets with no pagination contract.
package storage

import (
	"context"
	"errors"

	"github.com/scrypster/folio/pkg/types"
)

var (
	// ErrNotFound indicates that the requested record was not found.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidInput indicates that the input parameters are invalid.
	ErrInvalidInput = errors.New("invalid input")
)

// ActivityReader provides the read path over diary entries used by the
// context assembler. Implementations must be safe for concurrent reads.
type ActivityReader interface {
	// ListActivities returns activities whose tag set intersects the given
	// tags, newest first. An empty tag list yields an empty result, not the
	// full collection.
	ListActivities(ctx context.Context, tags []string) ([]types.ActivityEntry, error)

	// ListRecentActivities returns the most recent entries by date
	// descending, up to limit.
	ListRecentActivities(ctx context.Context, limit int) ([]types.ActivityEntry, error)

	// ListAllActivities returns the full diary set, newest first, including
	// marker-prefixed informational entries.
	ListAllActivities(ctx context.Context) ([]types.ActivityEntry, error)
}

// ContentStore provides read and save access to all portfolio collections.
type ContentStore interface {
	ActivityReader

	// ListJobs returns all jobs ordered by start date descending.
	ListJobs(ctx context.Context) ([]types.JobRecord, error)

	// ListEducation returns all education records ordered by start date
	// descending.
	ListEducation(ctx context.Context) ([]types.EducationRecord, error)

	// ListProjects returns all projects.
	ListProjects(ctx context.Context) ([]types.ProjectRecord, error)

	// ListTools returns all tools.
	ListTools(ctx context.Context) ([]types.ToolRecord, error)

	// SaveActivity upserts a diary entry. A missing ID is assigned.
	SaveActivity(ctx context.Context, entry *types.ActivityEntry) error

	// SaveJob upserts a job record. A missing ID is assigned.
	SaveJob(ctx context.Context, job *types.JobRecord) error

	// SaveEducation upserts an education record. A missing ID is assigned.
	SaveEducation(ctx context.Context, edu *types.EducationRecord) error

	// SaveProject upserts a project record. A missing ID is assigned.
	SaveProject(ctx context.Context, project *types.ProjectRecord) error

	// SaveTool upserts a tool record. A missing ID is assigned.
	SaveTool(ctx context.Context, tool *types.ToolRecord) error

	// Close releases any resources held by the store.
	Close() error
}
