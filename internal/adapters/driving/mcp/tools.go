package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
	"github.com/custodia-labs/narrator-cli/internal/validation"
)

// CleanTextInput is the input schema for the clean_text tool.
type CleanTextInput struct {
	Text  string   `json:"text" jsonschema:"the text to clean"`
	Rules []string `json:"rules,omitempty" jsonschema:"rule IDs to apply; omit to use the enabled rules"`
	Tools []string `json:"tools,omitempty" jsonschema:"cleanup tools to run first: line-breaks, non-ascii, punctuation, page-numbers"`
}

// SegmentTextInput is the input schema for the segment_text tool.
type SegmentTextInput struct {
	Text   string `json:"text" jsonschema:"the text to split"`
	Method string `json:"method,omitempty" jsonschema:"paragraph, sentence or custom (default from settings)"`
	Length int    `json:"length,omitempty" jsonschema:"target words per segment, 50 to 500 in steps of 25"`
}

// SegmentTextOutput is the output schema for the segment_text tool.
type SegmentTextOutput struct {
	Segments       []domain.Segment `json:"segments"`
	Count          int              `json:"count"`
	Words          int              `json:"words"`
	ReadingMinutes int              `json:"reading_minutes"`
}

// ListJobsInput is the input schema for the list_jobs tool.
type ListJobsInput struct {
	Query    string `json:"query,omitempty" jsonschema:"case-insensitive match on title, id, owner or tag"`
	Status   string `json:"status,omitempty" jsonschema:"exact status, e.g. Running; All or empty for any"`
	Type     string `json:"type,omitempty" jsonschema:"Manual, Auto or All"`
	Priority string `json:"priority,omitempty" jsonschema:"Low, Normal, High, Urgent or All"`
	Tab      string `json:"tab,omitempty" jsonschema:"running, queued or history" validate:"omitempty,oneof=running queued history"`
}

// ListJobsOutput is the output schema for the list_jobs tool.
type ListJobsOutput struct {
	Jobs  []JobOutput `json:"jobs"`
	Count int         `json:"count"`
}

// JobOutput is a single job summary.
type JobOutput struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Type     string   `json:"type"`
	Status   string   `json:"status"`
	Priority string   `json:"priority,omitempty"`
	Owner    string   `json:"owner,omitempty"`
	Progress int      `json:"progress,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Starred  bool     `json:"starred,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "clean_text",
		Description: "Clean text for narration using the rule registry and optional cleanup tools",
	}, s.handleCleanText)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "segment_text",
		Description: "Split text into narration segments by paragraph, sentence or word count",
	}, s.handleSegmentText)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_jobs",
		Description: "List narration jobs matching the dashboard filters",
	}, s.handleListJobs)
}

// handleCleanText handles the clean_text tool invocation.
func (s *Server) handleCleanText(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CleanTextInput,
) (*mcp.CallToolResult, domain.NormalisationResult, error) {
	req := domain.CleanRequest{Text: input.Text}
	if input.Rules != nil {
		req.Rules = make([]domain.RuleID, len(input.Rules))
		for i, id := range input.Rules {
			req.Rules[i] = domain.RuleID(id)
		}
	}
	tools, err := domain.ParseCleanupTools(input.Tools)
	if err != nil {
		return nil, domain.NormalisationResult{}, err
	}
	req.Tools = tools

	result, err := s.ports.Cleaning.Process(ctx, req)
	if err != nil {
		return nil, domain.NormalisationResult{}, err
	}
	return nil, *result, nil
}

// handleSegmentText handles the segment_text tool invocation.
func (s *Server) handleSegmentText(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SegmentTextInput,
) (*mcp.CallToolResult, SegmentTextOutput, error) {
	if s.ports.Segment == nil {
		return nil, SegmentTextOutput{}, domain.ErrNotImplemented
	}

	opts := s.ports.Segment.DefaultOptions(ctx)
	if input.Method != "" {
		opts.Method = domain.SegmentMethod(input.Method)
	}
	if input.Length != 0 {
		opts.Length = input.Length
	}

	segments, err := s.ports.Segment.Segment(ctx, input.Text, opts)
	if err != nil {
		return nil, SegmentTextOutput{}, err
	}

	output := SegmentTextOutput{
		Segments: segments,
		Count:    len(segments),
	}
	if output.Segments == nil {
		output.Segments = []domain.Segment{}
	}
	for i := range segments {
		output.Words += segments[i].Words
	}
	output.ReadingMinutes = domain.ReadingMinutes(output.Words)
	return nil, output, nil
}

// handleListJobs handles the list_jobs tool invocation.
func (s *Server) handleListJobs(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListJobsInput,
) (*mcp.CallToolResult, ListJobsOutput, error) {
	if s.ports.Jobs == nil {
		return nil, ListJobsOutput{}, domain.ErrNotImplemented
	}
	if err := validation.Struct(input); err != nil {
		return nil, ListJobsOutput{}, err
	}

	jobs, err := s.ports.Jobs.Filter(ctx, domain.JobFilter{
		Query:    input.Query,
		Status:   input.Status,
		Type:     input.Type,
		Priority: input.Priority,
	})
	if err != nil {
		return nil, ListJobsOutput{}, err
	}
	if input.Tab != "" {
		tabs := s.ports.Jobs.Tabs(jobs)
		jobs = tabs.Tab(domain.JobTab(input.Tab))
	}

	output := ListJobsOutput{
		Jobs:  make([]JobOutput, len(jobs)),
		Count: len(jobs),
	}
	for i := range jobs {
		output.Jobs[i] = toJobOutput(&jobs[i])
	}
	return nil, output, nil
}

func toJobOutput(job *domain.Job) JobOutput {
	return JobOutput{
		ID:       job.ID,
		Title:    job.Title,
		Type:     job.Type.String(),
		Status:   job.Status.String(),
		Priority: job.Priority.String(),
		Owner:    job.Owner,
		Progress: job.Progress,
		Tags:     job.Tags,
		Starred:  job.Starred,
	}
}
