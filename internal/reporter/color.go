package reporter

import (
	"github.com/fatih/color"

	"github.com/ppiankov/gresql/internal/scanner"
)

var typeColors = map[scanner.StatementType]*color.Color{
	scanner.StatementSelect: color.New(color.FgBlue),
	scanner.StatementInsert: color.New(color.FgGreen),
	scanner.StatementUpdate: color.New(color.FgYellow),
	scanner.StatementDelete: color.New(color.FgRed),
	scanner.StatementMerge:  color.New(color.FgMagenta),
}

var pathSprint = color.New(color.FgCyan).SprintFunc()

// pathLabel renders a matching file path, colored on terminals.
func pathLabel(path string) string {
	return pathSprint(path)
}

// typeLabel renders the statement type, colored on terminals.
func typeLabel(typ scanner.StatementType) string {
	if c, ok := typeColors[typ]; ok {
		return c.Sprint(string(typ))
	}
	return string(typ)
}
