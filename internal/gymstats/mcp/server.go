package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds the coachtracker MCP server. It is mounted by the backend
// at /mcp and also run over stdio by cmd/gymstats_mcp.
func NewServer(service contextService) *mcp.Server {
	h := NewHandler(service)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "coachtracker-context",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_coachtracker_schema",
		Description: "Returns the DB schema of the coachtracker tables (persons, exercises, routines, sessions, sets): columns, types, nullable, default.",
	}, h.GetSchemaTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_student_stats",
		Description: "Returns total sessions, total volume, sessions this week and the last session date of a student. Arg: student_id.",
	}, h.GetStudentStatsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_exercise_progress",
		Description: "Returns one point per completed session for an exercise: estimated 1RM, volume, max weight and average RPE. Args: student_id, exercise (name).",
	}, h.GetExerciseProgressTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_top_exercises",
		Description: "Returns the exercise names a student trained in the most sessions. Args: student_id; optional: limit (default 5).",
	}, h.GetTopExercisesTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_completed_sessions",
		Description: "Returns finished sessions, newest first, with per-exercise sets. Optional: student_id (empty for all), limit.",
	}, h.GetCompletedSessionsTool())

	return s
}
