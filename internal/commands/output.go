package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/balkashynov/luna/internal/format"
	"github.com/balkashynov/luna/internal/hierarchy"
)

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid ID '%s'", arg)
	}
	return uint(id), nil
}

// parseIDPair parses two positional IDs
func parseIDPair(args []string) (uint, uint, error) {
	a, err := parseID(args[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := parseID(args[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// clip shortens s to fit a table column
func clip(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

func printRows(indent string, rows []hierarchy.TaskRow) {
	for _, r := range rows {
		status := format.Placeholder
		if r.Task.Status != nil {
			status = r.Task.Status.Name
		}
		name := r.Task.Name
		if r.SubtaskCount > 0 {
			name = fmt.Sprintf("%s (%d subtasks)", name, r.SubtaskCount)
		}
		fmt.Printf("%s#%-4d %-48s %-14s %s\n", indent, r.Task.ID, clip(name, 48), clip(status, 14), format.FormatDate(r.Task.DueDate))
	}
}

func printPartition(p hierarchy.Partition) {
	if len(p.Direct) > 0 {
		fmt.Println("  Direct")
		printRows("    ", p.Direct)
	}
	for _, g := range p.Groups {
		fmt.Printf("  %s\n", g.List.Name)
		if len(g.Rows) == 0 {
			fmt.Println("    (empty)")
		}
		printRows("    ", g.Rows)
	}
}

func printTree(t hierarchy.FolderTree) {
	if t.IsEmpty() {
		fmt.Println("  (no files)")
		return
	}
	t.Walk(func(node *hierarchy.FolderNode, depth int) {
		pad := strings.Repeat("  ", depth+1)
		fmt.Printf("%s%s/\n", pad, node.Folder.Name)
		for _, f := range node.Files {
			fmt.Printf("%s  %s (%s)\n", pad, f.Filename, format.FormatBytes(f.Size))
		}
	})
	for _, f := range t.RootFiles {
		fmt.Printf("  %s (%s)\n", f.Filename, format.FormatBytes(f.Size))
	}
}
