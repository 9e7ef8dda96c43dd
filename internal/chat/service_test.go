package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrypster/folio/internal/llm"
	"github.com/scrypster/folio/pkg/types"
)

func newTestService(classifierModel, generatorModel *fakeCompleter, store *fakeStore, searcher *fakeSearcher) *Service {
	holder := NewPersonaHolder(DefaultPersona())
	return NewService(
		NewClassifier(classifierModel, holder, 0.2),
		NewAssembler(store),
		NewPromptBuilder(holder),
		NewGenerator(generatorModel, searcher, 0.7),
		30*time.Second,
	)
}

func TestChatEndToEnd(t *testing.T) {
	classifierModel := &fakeCompleter{
		responses: []*llm.ChatResult{{Content: `{"tags":["work"]}`}},
	}
	generatorModel := &fakeCompleter{
		responses: []*llm.ChatResult{{Content: "I spent the week refactoring the ingest pipeline."}},
	}
	store := &fakeStore{
		tagged: []types.ActivityEntry{activity("t1", "Refactored the ingest pipeline", "work")},
		recent: []types.ActivityEntry{activity("r1", "Morning run", "exercise")},
		all: []types.ActivityEntry{
			activity("t1", "Refactored the ingest pipeline", "work"),
			activity("i1", "&& Favorite Foods"),
		},
		jobs:     []types.JobRecord{{ID: "j1", Title: "Engineer", Company: "Acme"}},
		projects: []types.ProjectRecord{{ID: "p1", Title: "Folio", Description: "portfolio backend"}},
	}
	service := newTestService(classifierModel, generatorModel, store, &fakeSearcher{})

	resp, err := service.Chat(context.Background(), "how was work this week?", nil)

	require.NoError(t, err)
	assert.Equal(t, "I spent the week refactoring the ingest pipeline.", resp.Message)
	assert.Equal(t, 2, resp.ContextUsed.DiaryCount)
	assert.Equal(t, 1, resp.ContextUsed.InformationalCount)
	assert.Equal(t, 1, resp.ContextUsed.JobsCount)
	assert.Equal(t, 1, resp.ContextUsed.ProjectsCount)
	assert.Equal(t, 0, resp.ContextUsed.ToolsCount)

	// The inferred tag must have reached the store's tag-filtered read.
	require.Len(t, store.taggedCalls, 1)
	assert.Equal(t, []string{"work"}, store.taggedCalls[0])

	// The generator's system prompt must carry retrieved content.
	require.NotEmpty(t, generatorModel.calls)
	systemMsg := generatorModel.calls[0].Messages[0]
	assert.Equal(t, llm.RoleSystem, systemMsg.Role)
	assert.Contains(t, systemMsg.Content, "Refactored the ingest pipeline")
	assert.Contains(t, systemMsg.Content, "Engineer at Acme")
}

func TestChatClassifierFailureStillAnswers(t *testing.T) {
	classifierModel := &fakeCompleter{
		responses: []*llm.ChatResult{{Content: "no json here, sorry"}},
	}
	generatorModel := &fakeCompleter{
		responses: []*llm.ChatResult{{Content: "Lately I've mostly been hiking."}},
	}
	store := &fakeStore{
		recent: []types.ActivityEntry{activity("r1", "Hiked the ridge", "leisure")},
	}
	service := newTestService(classifierModel, generatorModel, store, &fakeSearcher{})

	resp, err := service.Chat(context.Background(), "what have you been up to?", nil)

	require.NoError(t, err)
	assert.Equal(t, "Lately I've mostly been hiking.", resp.Message)
	assert.Equal(t, 1, resp.ContextUsed.DiaryCount)

	// Classification degraded to no tags, so the tag read got an empty list.
	require.Len(t, store.taggedCalls, 1)
	assert.Empty(t, store.taggedCalls[0])
}

func TestChatEmptyMessage(t *testing.T) {
	service := newTestService(&fakeCompleter{}, &fakeCompleter{}, &fakeStore{}, &fakeSearcher{})

	_, err := service.Chat(context.Background(), "   ", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be empty")
}

func TestChatStoreFailure(t *testing.T) {
	classifierModel := &fakeCompleter{
		responses: []*llm.ChatResult{{Content: `{"tags":[]}`}},
	}
	store := &fakeStore{allErr: assert.AnError}
	service := newTestService(classifierModel, &fakeCompleter{}, store, &fakeSearcher{})

	_, err := service.Chat(context.Background(), "hello", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate chat response")
}

func TestChatWebSearchFlow(t *testing.T) {
	classifierModel := &fakeCompleter{
		responses: []*llm.ChatResult{{Content: `{"tags":[]}`}},
	}
	generatorModel := &fakeCompleter{
		responses: []*llm.ChatResult{
			{ToolCalls: []llm.ToolCall{searchCall("call_1", "weather in berlin")}},
			{Content: "It's raining in Berlin right now."},
		},
	}
	searcher := &fakeSearcher{result: "Berlin: rain, 12°C"}
	service := newTestService(classifierModel, generatorModel, &fakeStore{}, searcher)

	resp, err := service.Chat(context.Background(), "what's the weather like where you are?", nil)

	require.NoError(t, err)
	assert.Equal(t, "It's raining in Berlin right now.", resp.Message)
	assert.Equal(t, []string{"weather in berlin"}, searcher.queries)
}

func TestTrimHistory(t *testing.T) {
	long := make([]types.ChatTurn, maxHistoryTurns+7)
	for i := range long {
		long[i] = types.ChatTurn{Role: types.RoleUser, Content: string(rune('a' + i%26))}
	}

	trimmed := trimHistory(long)

	require.Len(t, trimmed, maxHistoryTurns)
	assert.Equal(t, long[7], trimmed[0])

	short := long[:3]
	assert.Equal(t, short, trimHistory(short))
}
