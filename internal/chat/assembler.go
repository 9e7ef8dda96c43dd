package chat

import (
	"context"
	"fmt"
	"sync"

	"github.com/scrypster/folio/internal/storage"
	"github.com/scrypster/folio/pkg/types"
)

// maxContextActivities caps how many episodic diary entries enter the
// prompt. Jobs, education, projects, and tools are small reference tables
// and are always included in full.
const maxContextActivities = 5

// Assembler builds the per-request ChatContext by fanning out to the
// content store, partitioning diary entries into activity vs informational,
// and blending tag-matched results with recent ones.
type Assembler struct {
	store storage.ContentStore
}

// NewAssembler creates a context assembler over the given store.
func NewAssembler(store storage.ContentStore) *Assembler {
	return &Assembler{store: store}
}

// BuildContext retrieves everything one chat request needs. The three read
// batches are each issued concurrently; any store error aborts the request.
func (a *Assembler) BuildContext(ctx context.Context, query string, tags []string) (*types.ChatContext, error) {
	// Batch 1: diary reads. Tag-matched entries, recent entries, and the
	// full set (needed to extract informational entries).
	var (
		tagged, recent, all []types.ActivityEntry
		errs                [3]error
	)
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		tagged, errs[0] = a.store.ListActivities(ctx, tags)
	}()
	go func() {
		defer wg.Done()
		recent, errs[1] = a.store.ListRecentActivities(ctx, maxContextActivities)
	}()
	go func() {
		defer wg.Done()
		all, errs[2] = a.store.ListAllActivities(ctx)
	}()
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("failed to load diary entries: %w", err)
		}
	}

	informational := partitionInformational(all)
	activities := blendActivities(tagged, recent)

	// Batch 2: work history. Always included in full; these tables are
	// small and relevant to every background question.
	var (
		jobs      []types.JobRecord
		education []types.EducationRecord
		errs2     [2]error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		jobs, errs2[0] = a.store.ListJobs(ctx)
	}()
	go func() {
		defer wg.Done()
		education, errs2[1] = a.store.ListEducation(ctx)
	}()
	wg.Wait()
	for _, err := range errs2 {
		if err != nil {
			return nil, fmt.Errorf("failed to load work history: %w", err)
		}
	}

	// Batch 3: portfolio content.
	var (
		projects []types.ProjectRecord
		tools    []types.ToolRecord
		errs3    [2]error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		projects, errs3[0] = a.store.ListProjects(ctx)
	}()
	go func() {
		defer wg.Done()
		tools, errs3[1] = a.store.ListTools(ctx)
	}()
	wg.Wait()
	for _, err := range errs3 {
		if err != nil {
			return nil, fmt.Errorf("failed to load portfolio content: %w", err)
		}
	}

	return &types.ChatContext{
		Activities:    activities,
		Informational: informational,
		Projects:      projects,
		Tools:         tools,
		Jobs:          jobs,
		Education:     education,
	}, nil
}

// partitionInformational extracts the marker-prefixed entries from the full
// diary set. The returned list and the activity list built by
// blendActivities are disjoint: informational entries are filtered out of
// the activity side.
func partitionInformational(all []types.ActivityEntry) []types.ActivityEntry {
	informational := []types.ActivityEntry{}
	for _, entry := range all {
		if entry.IsInformational() {
			informational = append(informational, entry)
		}
	}
	return informational
}

// blendActivities merges tag-matched entries with recent ones, drops any
// informational entries that leaked in, deduplicates by ID keeping the first
// occurrence, and caps the result. Tag matches come first so relevance wins
// over recency when both match.
func blendActivities(tagged, recent []types.ActivityEntry) []types.ActivityEntry {
	seen := make(map[string]bool, len(tagged)+len(recent))
	merged := []types.ActivityEntry{}

	for _, entry := range append(append([]types.ActivityEntry{}, tagged...), recent...) {
		if entry.IsInformational() || seen[entry.ID] {
			continue
		}
		seen[entry.ID] = true
		merged = append(merged, entry)
		if len(merged) == maxContextActivities {
			break
		}
	}
	return merged
}
