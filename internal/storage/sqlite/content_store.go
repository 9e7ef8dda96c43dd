// Package sqlite provides a SQLite implementation of the content store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/google/uuid"
	"github.com/scrypster/folio/internal/storage"
	"github.com/scrypster/folio/pkg/types"
)

// ContentStore implements storage.ContentStore using SQLite.
type ContentStore struct {
	db *sql.DB
}

// NewContentStore opens a SQLite database, configures WAL mode, and creates
// the schema.
func NewContentStore(dsn string) (*ContentStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one concurrent writer. A single open connection
	// serialises writes and avoids SQLITE_BUSY errors under concurrent load;
	// WAL mode keeps readers from blocking the writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &ContentStore{db: db}, nil
}

// GetDB exposes the underlying database connection.
func (s *ContentStore) GetDB() *sql.DB {
	return s.db
}

// Close releases the database connection.
func (s *ContentStore) Close() error {
	return s.db.Close()
}

const activityColumns = "id, title, content, date, tags, mood"

// ListActivities returns activities whose tag set intersects the given tags,
// newest first. An empty tag list yields an empty result.
func (s *ContentStore) ListActivities(ctx context.Context, tags []string) ([]types.ActivityEntry, error) {
	if len(tags) == 0 {
		return []types.ActivityEntry{}, nil
	}

	placeholders := make([]string, len(tags))
	args := make([]interface{}, len(tags))
	for i, tag := range tags {
		placeholders[i] = "?"
		args[i] = tag
	}

	query := fmt.Sprintf(`
		SELECT %s FROM activities a
		WHERE EXISTS (
			SELECT 1 FROM json_each(a.tags) je WHERE je.value IN (%s)
		)
		ORDER BY date DESC`,
		activityColumns, strings.Join(placeholders, ","))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities by tags: %w", err)
	}
	defer rows.Close()

	return scanActivities(rows)
}

// ListRecentActivities returns the most recent entries by date descending.
func (s *ContentStore) ListRecentActivities(ctx context.Context, limit int) ([]types.ActivityEntry, error) {
	if limit <= 0 {
		limit = 5
	}

	query := fmt.Sprintf("SELECT %s FROM activities ORDER BY date DESC LIMIT ?", activityColumns)
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent activities: %w", err)
	}
	defer rows.Close()

	return scanActivities(rows)
}

// ListAllActivities returns the full diary set, newest first.
func (s *ContentStore) ListAllActivities(ctx context.Context) ([]types.ActivityEntry, error) {
	query := fmt.Sprintf("SELECT %s FROM activities ORDER BY date DESC", activityColumns)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	return scanActivities(rows)
}

func scanActivities(rows *sql.Rows) ([]types.ActivityEntry, error) {
	entries := []types.ActivityEntry{}
	for rows.Next() {
		var (
			entry    types.ActivityEntry
			tagsJSON sql.NullString
			mood     sql.NullString
		)
		if err := rows.Scan(&entry.ID, &entry.Title, &entry.Content, &entry.Date, &tagsJSON, &mood); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		if err := unmarshalStrings(tagsJSON, &entry.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
		entry.Mood = mood.String
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// ListJobs returns all jobs ordered by start date descending.
func (s *ContentStore) ListJobs(ctx context.Context) ([]types.JobRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, company, location, type, start_date, end_date,
		       description, technologies, responsibilities
		FROM jobs ORDER BY start_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []types.JobRecord{}
	for rows.Next() {
		var (
			job              types.JobRecord
			location         sql.NullString
			jobType          sql.NullString
			endDate          sql.NullTime
			description      sql.NullString
			techJSON         sql.NullString
			responsibilities sql.NullString
		)
		if err := rows.Scan(&job.ID, &job.Title, &job.Company, &location, &jobType,
			&job.StartDate, &endDate, &description, &techJSON, &responsibilities); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		job.Location = location.String
		job.Type = jobType.String
		job.Description = description.String
		if endDate.Valid {
			t := endDate.Time
			job.EndDate = &t
		}
		if err := unmarshalStrings(techJSON, &job.Technologies); err != nil {
			return nil, fmt.Errorf("failed to unmarshal technologies: %w", err)
		}
		if err := unmarshalStrings(responsibilities, &job.Responsibilities); err != nil {
			return nil, fmt.Errorf("failed to unmarshal responsibilities: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// ListEducation returns all education records ordered by start date descending.
func (s *ContentStore) ListEducation(ctx context.Context) ([]types.EducationRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, institution, degree, degree_type, field, location,
		       start_date, end_date, gpa, courses
		FROM education ORDER BY start_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list education: %w", err)
	}
	defer rows.Close()

	records := []types.EducationRecord{}
	for rows.Next() {
		var (
			edu         types.EducationRecord
			degreeType  sql.NullString
			field       sql.NullString
			location    sql.NullString
			endDate     sql.NullTime
			gpa         sql.NullString
			coursesJSON sql.NullString
		)
		if err := rows.Scan(&edu.ID, &edu.Institution, &edu.Degree, &degreeType, &field,
			&location, &edu.StartDate, &endDate, &gpa, &coursesJSON); err != nil {
			return nil, fmt.Errorf("failed to scan education: %w", err)
		}
		edu.DegreeType = degreeType.String
		edu.Field = field.String
		edu.Location = location.String
		edu.GPA = gpa.String
		if endDate.Valid {
			t := endDate.Time
			edu.EndDate = &t
		}
		if err := unmarshalStrings(coursesJSON, &edu.Courses); err != nil {
			return nil, fmt.Errorf("failed to unmarshal courses: %w", err)
		}
		records = append(records, edu)
	}
	return records, rows.Err()
}

// ListProjects returns all projects.
func (s *ContentStore) ListProjects(ctx context.Context) ([]types.ProjectRecord, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, title, description, github_url FROM projects ORDER BY title")
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []types.ProjectRecord{}
	for rows.Next() {
		var (
			project     types.ProjectRecord
			description sql.NullString
			githubURL   sql.NullString
		)
		if err := rows.Scan(&project.ID, &project.Title, &description, &githubURL); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		project.Description = description.String
		project.GithubURL = githubURL.String
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

// ListTools returns all tools.
func (s *ContentStore) ListTools(ctx context.Context) ([]types.ToolRecord, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, description FROM tools ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	defer rows.Close()

	tools := []types.ToolRecord{}
	for rows.Next() {
		var (
			tool        types.ToolRecord
			description sql.NullString
		)
		if err := rows.Scan(&tool.ID, &tool.Name, &description); err != nil {
			return nil, fmt.Errorf("failed to scan tool: %w", err)
		}
		tool.Description = description.String
		tools = append(tools, tool)
	}
	return tools, rows.Err()
}

// SaveActivity upserts a diary entry.
func (s *ContentStore) SaveActivity(ctx context.Context, entry *types.ActivityEntry) error {
	if entry == nil || entry.Title == "" {
		return fmt.Errorf("%w: activity title is required", storage.ErrInvalidInput)
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now().UTC()
	}

	tagsJSON, err := json.Marshal(entry.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO activities (id, title, content, date, tags, mood)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			date = excluded.date,
			tags = excluded.tags,
			mood = excluded.mood,
			updated_at = CURRENT_TIMESTAMP`,
		entry.ID, entry.Title, entry.Content, entry.Date, string(tagsJSON), nullString(entry.Mood))
	if err != nil {
		return fmt.Errorf("failed to save activity: %w", err)
	}
	return nil
}

// SaveJob upserts a job record.
func (s *ContentStore) SaveJob(ctx context.Context, job *types.JobRecord) error {
	if job == nil || job.Title == "" || job.Company == "" {
		return fmt.Errorf("%w: job title and company are required", storage.ErrInvalidInput)
	}
	if job.ID == "" {
		job.ID = uuid.NewString()
	}

	techJSON, err := json.Marshal(job.Technologies)
	if err != nil {
		return fmt.Errorf("failed to marshal technologies: %w", err)
	}
	respJSON, err := json.Marshal(job.Responsibilities)
	if err != nil {
		return fmt.Errorf("failed to marshal responsibilities: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO jobs (id, title, company, location, type, start_date, end_date,
		                  description, technologies, responsibilities)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			company = excluded.company,
			location = excluded.location,
			type = excluded.type,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			description = excluded.description,
			technologies = excluded.technologies,
			responsibilities = excluded.responsibilities`,
		job.ID, job.Title, job.Company, nullString(job.Location), nullString(job.Type),
		job.StartDate, nullTime(job.EndDate), nullString(job.Description),
		string(techJSON), string(respJSON))
	if err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

// SaveEducation upserts an education record.
func (s *ContentStore) SaveEducation(ctx context.Context, edu *types.EducationRecord) error {
	if edu == nil || edu.Institution == "" || edu.Degree == "" {
		return fmt.Errorf("%w: institution and degree are required", storage.ErrInvalidInput)
	}
	if edu.ID == "" {
		edu.ID = uuid.NewString()
	}

	coursesJSON, err := json.Marshal(edu.Courses)
	if err != nil {
		return fmt.Errorf("failed to marshal courses: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO education (id, institution, degree, degree_type, field, location,
		                       start_date, end_date, gpa, courses)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			institution = excluded.institution,
			degree = excluded.degree,
			degree_type = excluded.degree_type,
			field = excluded.field,
			location = excluded.location,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			gpa = excluded.gpa,
			courses = excluded.courses`,
		edu.ID, edu.Institution, edu.Degree, nullString(edu.DegreeType), nullString(edu.Field),
		nullString(edu.Location), edu.StartDate, nullTime(edu.EndDate),
		nullString(edu.GPA), string(coursesJSON))
	if err != nil {
		return fmt.Errorf("failed to save education: %w", err)
	}
	return nil
}

// SaveProject upserts a project record.
func (s *ContentStore) SaveProject(ctx context.Context, project *types.ProjectRecord) error {
	if project == nil || project.Title == "" {
		return fmt.Errorf("%w: project title is required", storage.ErrInvalidInput)
	}
	if project.ID == "" {
		project.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, title, description, github_url)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			github_url = excluded.github_url`,
		project.ID, project.Title, nullString(project.Description), nullString(project.GithubURL))
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

// SaveTool upserts a tool record.
func (s *ContentStore) SaveTool(ctx context.Context, tool *types.ToolRecord) error {
	if tool == nil || tool.Name == "" {
		return fmt.Errorf("%w: tool name is required", storage.ErrInvalidInput)
	}
	if tool.ID == "" {
		tool.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tools (id, name, description)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description`,
		tool.ID, tool.Name, nullString(tool.Description))
	if err != nil {
		return fmt.Errorf("failed to save tool: %w", err)
	}
	return nil
}

// unmarshalStrings decodes a nullable JSON array column into a string slice.
func unmarshalStrings(col sql.NullString, dest *[]string) error {
	if !col.Valid || col.String == "" || col.String == "null" {
		return nil
	}
	return json.Unmarshal([]byte(col.String), dest)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// Compile-time assertion.
var _ storage.ContentStore = (*ContentStore)(nil)
