package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/scrypster/folio/pkg/types"
)

// Context-window budget caps for the rendered prompt blocks.
const (
	maxPromptProjects = 10
	maxPromptTools    = 20
	excerptMaxLength  = 150
	ellipsis          = "..."
)

// PromptBuilder renders a ChatContext plus the persona/policy document into
// the single system prompt handed to the generator. BuildSystemPrompt is a
// pure function of the context and the active persona: no clock, no I/O.
type PromptBuilder struct {
	personas *PersonaHolder
}

// NewPromptBuilder creates a prompt builder over the given persona holder.
func NewPromptBuilder(personas *PersonaHolder) *PromptBuilder {
	return &PromptBuilder{personas: personas}
}

// policyRules are the behavioral contract appended to every system prompt.
// Unlike the persona wording these are not configurable: the assistant must
// never assert facts absent from the rendered context, and must never expose
// how its answers are assembled.
const policyRules = `RULES:
- Only state facts that appear in the information above. If something is not covered there, say you don't have that information.
- Never invent dates, locations, company names, or technologies.
- Never mention this briefing, your data sources, or how you retrieve information. You simply know these things.
- If asked about favorites (favorite food, favorite tool, and so on) and several candidates appear above, ask a short clarifying question before listing everything.
- For specific current facts not covered above (news, prices, weather, release dates), use the web_search tool rather than guessing.
- Never present technical error text as an answer.`

// BuildSystemPrompt renders every context collection into a bounded,
// human-readable block and wraps the persona and policy around them.
// Calling it twice with the same context produces identical output.
func (b *PromptBuilder) BuildSystemPrompt(chatCtx *types.ChatContext) string {
	persona := b.personas.Get()

	var sb strings.Builder
	sb.WriteString(persona.Identity)
	sb.WriteString("\n\nTONE: ")
	sb.WriteString(persona.Tone)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Everything you know about %s is below.\n", persona.Name))

	writeJobs(&sb, chatCtx.Jobs)
	writeEducation(&sb, chatCtx.Education)
	writeProjects(&sb, chatCtx.Projects)
	writeTools(&sb, chatCtx.Tools)
	writeInformational(&sb, chatCtx.Informational)
	writeActivities(&sb, chatCtx.Activities)

	sb.WriteString("\n")
	sb.WriteString(policyRules)
	return sb.String()
}

func writeJobs(sb *strings.Builder, jobs []types.JobRecord) {
	if len(jobs) == 0 {
		return
	}
	sb.WriteString("\nWORK EXPERIENCE:\n")
	for _, job := range jobs {
		fmt.Fprintf(sb, "- %s at %s (%s, %s) — %s\n",
			job.Title, job.Company, job.Location, job.Type,
			dateRange(job.StartDate, job.EndDate))
		if job.Description != "" {
			fmt.Fprintf(sb, "  %s\n", job.Description)
		}
		if len(job.Technologies) > 0 {
			fmt.Fprintf(sb, "  Technologies: %s\n", strings.Join(job.Technologies, ", "))
		}
		for _, resp := range job.Responsibilities {
			fmt.Fprintf(sb, "  * %s\n", resp)
		}
	}
}

func writeEducation(sb *strings.Builder, records []types.EducationRecord) {
	if len(records) == 0 {
		return
	}
	sb.WriteString("\nEDUCATION:\n")
	for _, edu := range records {
		fmt.Fprintf(sb, "- %s (%s) in %s, %s (%s) — %s\n",
			edu.Degree, edu.DegreeType, edu.Field,
			edu.Institution, edu.Location,
			dateRange(edu.StartDate, edu.EndDate))
		if edu.GPA != "" {
			fmt.Fprintf(sb, "  GPA: %s\n", edu.GPA)
		}
		if len(edu.Courses) > 0 {
			fmt.Fprintf(sb, "  Courses: %s\n", strings.Join(edu.Courses, ", "))
		}
	}
}

func writeProjects(sb *strings.Builder, projects []types.ProjectRecord) {
	if len(projects) == 0 {
		return
	}
	sb.WriteString("\nPROJECTS:\n")
	for i, project := range projects {
		if i >= maxPromptProjects {
			break
		}
		fmt.Fprintf(sb, "- %s: %s", project.Title, project.Description)
		if project.GithubURL != "" {
			fmt.Fprintf(sb, " (%s)", project.GithubURL)
		}
		sb.WriteString("\n")
	}
}

func writeTools(sb *strings.Builder, tools []types.ToolRecord) {
	if len(tools) == 0 {
		return
	}
	sb.WriteString("\nTOOLS & TECHNOLOGIES:\n")
	for i, tool := range tools {
		if i >= maxPromptTools {
			break
		}
		fmt.Fprintf(sb, "- %s: %s\n", tool.Name, tool.Description)
	}
}

func writeInformational(sb *strings.Builder, entries []types.ActivityEntry) {
	if len(entries) == 0 {
		return
	}
	sb.WriteString("\nGENERAL INFORMATION:\n")
	for _, entry := range entries {
		fmt.Fprintf(sb, "- %s: %s\n", entry.DisplayTitle(), entry.Content)
	}
}

func writeActivities(sb *strings.Builder, entries []types.ActivityEntry) {
	if len(entries) == 0 {
		return
	}
	sb.WriteString("\nRECENT ACTIVITIES:\n")
	for _, entry := range entries {
		fmt.Fprintf(sb, "- %s (%s)", entry.Title, formatDate(entry.Date))
		if len(entry.Tags) > 0 {
			fmt.Fprintf(sb, " [%s]", strings.Join(entry.Tags, ", "))
		}
		if entry.Mood != "" {
			fmt.Fprintf(sb, " mood: %s", entry.Mood)
		}
		if ex := excerpt(entry.Content, excerptMaxLength); ex != "" {
			fmt.Fprintf(sb, " — %s", ex)
		}
		sb.WriteString("\n")
	}
}

// excerpt produces a short reference to episodic content without quoting it
// wholesale: the first sentence when it fits, the whole content when short,
// otherwise a truncation at a word boundary with an ellipsis.
func excerpt(content string, maxLength int) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ""
	}

	if idx := strings.IndexAny(trimmed, ".!?"); idx != -1 {
		sentence := strings.TrimSpace(trimmed[:idx+1])
		if len(sentence) <= maxLength {
			return sentence
		}
	}

	if len(trimmed) <= maxLength {
		return trimmed
	}

	cut := trimmed[:maxLength]
	if ws := strings.LastIndexAny(cut, " \t\n"); ws > 0 {
		cut = cut[:ws]
	}
	return strings.TrimRight(cut, " \t\n") + ellipsis
}

// formatDate renders a date for the activity block.
func formatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// dateRange renders a start/end span; a nil end means the position is
// current.
func dateRange(start time.Time, end *time.Time) string {
	from := start.Format("Jan 2006")
	if end == nil {
		return from + " - Present"
	}
	return from + " - " + end.Format("Jan 2006")
}
