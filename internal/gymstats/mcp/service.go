package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/2beens/coachtracker/internal/gymstats/progress"
	"github.com/2beens/coachtracker/internal/gymstats/session"
)

// historyReader is implemented by history.Service.
type historyReader interface {
	CompletedSessions(ctx context.Context, studentID string) ([]session.CompletedSession, error)
	Stats(ctx context.Context, studentID string) (progress.StudentStats, error)
	Progress(ctx context.Context, studentID, exerciseName string) ([]progress.ProgressPoint, error)
	TopExercises(ctx context.Context, studentID string, limit int) ([]string, error)
}

// contextService is what the tool handlers need; ContextService implements it.
type contextService interface {
	historyReader
	GetSchema(ctx context.Context) (string, error)
}

// ContextService exposes training history and the DB schema to MCP clients.
type ContextService struct {
	historyReader
	schema SchemaRepo
}

func NewContextService(schemaRepo SchemaRepo, history historyReader) *ContextService {
	return &ContextService{
		historyReader: history,
		schema:        schemaRepo,
	}
}

// GetSchema renders the coachtracker tables as markdown.
func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	cols, err := s.schema.GetColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatSchema(cols), nil
}

func formatSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# Coachtracker DB Schema\n\nNo coachtracker tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}

	tables := make([]string, 0, len(byTable))
	for t := range byTable {
		tables = append(tables, t)
	}
	sort.Strings(tables)

	var b strings.Builder
	b.WriteString("# Coachtracker DB Schema\n\n")
	b.WriteString("Tables: " + strings.Join(coachtrackerTables, ", ") + " (schema: public).\n\n")

	for _, table := range tables {
		b.WriteString("## ")
		b.WriteString(table)
		b.WriteString("\n\n| Column | Type | Nullable | Default |\n|--------|------|----------|--------|\n")
		for _, c := range byTable[table] {
			def := "-"
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def)
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n\n") + "\n"
}
