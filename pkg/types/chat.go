package types

// Chat roles for conversation history turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn is one prior turn of the visitor conversation. History is
// supplied by the caller on every request and never persisted by the engine.
type ChatTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatContext is the per-request retrieval result handed to the prompt
// builder. It is built fresh for each chat request and discarded after the
// response is produced.
//
// Activities and Informational are disjoint: an entry appears in exactly one
// of the two lists. Activities is deduplicated by ID and capped at 5.
type ChatContext struct {
	Activities    []ActivityEntry   // episodic diary entries, at most 5
	Informational []ActivityEntry   // marker-prefixed background entries, uncapped
	Projects      []ProjectRecord
	Tools         []ToolRecord
	Jobs          []JobRecord
	Education     []EducationRecord
}

// ContextUsed summarizes how much retrieved content backed a chat answer.
type ContextUsed struct {
	DiaryCount         int `json:"diary_count"`
	InformationalCount int `json:"informational_count"`
	ProjectsCount      int `json:"projects_count"`
	ToolsCount         int `json:"tools_count"`
	JobsCount          int `json:"jobs_count"`
	EducationCount     int `json:"education_count"`
}

// Counts returns the per-collection sizes of the context.
func (c *ChatContext) Counts() ContextUsed {
	return ContextUsed{
		DiaryCount:         len(c.Activities),
		InformationalCount: len(c.Informational),
		ProjectsCount:      len(c.Projects),
		ToolsCount:         len(c.Tools),
		JobsCount:          len(c.Jobs),
		EducationCount:     len(c.Education),
	}
}

// ChatResponse is the engine's answer to one chat request.
type ChatResponse struct {
	Message     string      `json:"message"`
	ContextUsed ContextUsed `json:"context_used"`
}
