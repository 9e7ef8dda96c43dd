package chat

import (
	"context"

	"github.com/scrypster/folio/internal/llm"
	"github.com/scrypster/folio/pkg/types"
)

// fakeCompleter is a scripted llm.ChatCompleter. Each call consumes the next
// scripted response; the last one repeats when the script runs out.
type fakeCompleter struct {
	responses []*llm.ChatResult
	errs      []error
	calls     []llm.ChatRequest
}

func (f *fakeCompleter) Chat(_ context.Context, req llm.ChatRequest) (*llm.ChatResult, error) {
	idx := len(f.calls)
	f.calls = append(f.calls, req)

	if idx < len(f.errs) && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}
	if len(f.responses) == 0 {
		return &llm.ChatResult{}, nil
	}
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	return f.responses[idx], nil
}

func (f *fakeCompleter) GetModel() string { return "fake-model" }

// fakeSearcher records queries and returns a fixed result.
type fakeSearcher struct {
	queries []string
	result  string
}

func (f *fakeSearcher) Search(_ context.Context, query string) string {
	f.queries = append(f.queries, query)
	return f.result
}

// fakeStore is an in-memory storage.ContentStore with scriptable errors.
type fakeStore struct {
	tagged    []types.ActivityEntry
	recent    []types.ActivityEntry
	all       []types.ActivityEntry
	jobs      []types.JobRecord
	education []types.EducationRecord
	projects  []types.ProjectRecord
	tools     []types.ToolRecord

	taggedErr, recentErr, allErr error
	jobsErr, educationErr        error
	projectsErr, toolsErr        error

	taggedCalls [][]string
}

func (f *fakeStore) ListActivities(_ context.Context, tags []string) ([]types.ActivityEntry, error) {
	f.taggedCalls = append(f.taggedCalls, tags)
	if f.taggedErr != nil {
		return nil, f.taggedErr
	}
	if len(tags) == 0 {
		return []types.ActivityEntry{}, nil
	}
	return f.tagged, nil
}

func (f *fakeStore) ListRecentActivities(_ context.Context, limit int) ([]types.ActivityEntry, error) {
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func (f *fakeStore) ListAllActivities(_ context.Context) ([]types.ActivityEntry, error) {
	if f.allErr != nil {
		return nil, f.allErr
	}
	return f.all, nil
}

func (f *fakeStore) ListJobs(_ context.Context) ([]types.JobRecord, error) {
	return f.jobs, f.jobsErr
}

func (f *fakeStore) ListEducation(_ context.Context) ([]types.EducationRecord, error) {
	return f.education, f.educationErr
}

func (f *fakeStore) ListProjects(_ context.Context) ([]types.ProjectRecord, error) {
	return f.projects, f.projectsErr
}

func (f *fakeStore) ListTools(_ context.Context) ([]types.ToolRecord, error) {
	return f.tools, f.toolsErr
}

func (f *fakeStore) SaveActivity(_ context.Context, _ *types.ActivityEntry) error    { return nil }
func (f *fakeStore) SaveJob(_ context.Context, _ *types.JobRecord) error             { return nil }
func (f *fakeStore) SaveEducation(_ context.Context, _ *types.EducationRecord) error { return nil }
func (f *fakeStore) SaveProject(_ context.Context, _ *types.ProjectRecord) error     { return nil }
func (f *fakeStore) SaveTool(_ context.Context, _ *types.ToolRecord) error           { return nil }
func (f *fakeStore) Close() error                                                    { return nil }
