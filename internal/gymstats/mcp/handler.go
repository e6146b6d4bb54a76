package mcp

import (
	"context"
	"encoding/json"

	"github.com/2beens/coachtracker/internal/gymstats/progress"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler turns MCP tool calls into service calls and formats the results.
type Handler struct {
	service contextService
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

// GetSchemaTool returns the handler for get_coachtracker_schema.
func (h *Handler) GetSchemaTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil, nil
	}
}

type StudentInput struct {
	StudentID string `json:"student_id" jsonschema:"Student id"`
}

// GetStudentStatsTool returns the handler for get_student_stats.
func (h *Handler) GetStudentStatsTool() func(context.Context, *mcp.CallToolRequest, StudentInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in StudentInput) (*mcp.CallToolResult, any, error) {
		if in.StudentID == "" {
			return errorResult("student_id is required"), nil, nil
		}
		stats, err := h.service.Stats(ctx, in.StudentID)
		if err != nil {
			return errorResult("Error fetching stats: " + err.Error()), nil, nil
		}
		return jsonResult(stats), nil, nil
	}
}

type ExerciseProgressInput struct {
	StudentID string `json:"student_id" jsonschema:"Student id"`
	Exercise  string `json:"exercise" jsonschema:"Exercise name (e.g. Squat)"`
}

// GetExerciseProgressTool returns the handler for get_exercise_progress.
func (h *Handler) GetExerciseProgressTool() func(context.Context, *mcp.CallToolRequest, ExerciseProgressInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ExerciseProgressInput) (*mcp.CallToolResult, any, error) {
		if in.StudentID == "" || in.Exercise == "" {
			return errorResult("student_id and exercise are required"), nil, nil
		}
		points, err := h.service.Progress(ctx, in.StudentID, in.Exercise)
		if err != nil {
			return errorResult("Error fetching progress: " + err.Error()), nil, nil
		}
		return jsonResult(points), nil, nil
	}
}

type TopExercisesInput struct {
	StudentID string `json:"student_id" jsonschema:"Student id"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Max number of exercises (default 5)"`
}

// GetTopExercisesTool returns the handler for get_top_exercises.
func (h *Handler) GetTopExercisesTool() func(context.Context, *mcp.CallToolRequest, TopExercisesInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in TopExercisesInput) (*mcp.CallToolResult, any, error) {
		if in.StudentID == "" {
			return errorResult("student_id is required"), nil, nil
		}
		limit := in.Limit
		if limit == 0 {
			limit = progress.DefaultTopExercisesLimit
		}
		names, err := h.service.TopExercises(ctx, in.StudentID, limit)
		if err != nil {
			return errorResult("Error fetching top exercises: " + err.Error()), nil, nil
		}
		return jsonResult(names), nil, nil
	}
}

type CompletedSessionsInput struct {
	StudentID string `json:"student_id,omitempty" jsonschema:"Student id, empty for all students"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Return only the most recent sessions"`
}

// GetCompletedSessionsTool returns the handler for get_completed_sessions.
func (h *Handler) GetCompletedSessionsTool() func(context.Context, *mcp.CallToolRequest, CompletedSessionsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in CompletedSessionsInput) (*mcp.CallToolResult, any, error) {
		sessions, err := h.service.CompletedSessions(ctx, in.StudentID)
		if err != nil {
			return errorResult("Error listing sessions: " + err.Error()), nil, nil
		}
		if in.Limit > 0 && len(sessions) > in.Limit {
			sessions = sessions[:in.Limit]
		}
		return jsonResult(sessions), nil, nil
	}
}
