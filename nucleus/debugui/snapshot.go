package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/plus3/nucleus/nucleus"
)

// EntityInfo is one row of the entity browser.
type EntityInfo struct {
	Entity         *nucleus.Entity
	Key            string
	Depth          int
	ComponentTypes []string
	ChildCount     int
}

// CollectEntities walks the entity tree of ctx depth first, roots in
// construction order.
func CollectEntities(ctx *nucleus.Context) []EntityInfo {
	var out []EntityInfo
	var walk func(e *nucleus.Entity, depth int)
	walk = func(e *nucleus.Entity, depth int) {
		children := e.Children(true)
		out = append(out, EntityInfo{
			Entity:         e,
			Key:            e.Key(),
			Depth:          depth,
			ComponentTypes: componentNames(e),
			ChildCount:     len(children),
		})
		for _, child := range children {
			walk(child, depth+1)
		}
	}
	for _, root := range ctx.Roots() {
		walk(root, 0)
	}
	return out
}

// FilterEntities keeps the rows whose key or component types contain text,
// ignoring case.
func FilterEntities(rows []EntityInfo, text string) []EntityInfo {
	if text == "" {
		return rows
	}
	needle := strings.ToLower(text)
	return slices.DeleteFunc(slices.Clone(rows), func(row EntityInfo) bool {
		return !strings.Contains(strings.ToLower(row.Key), needle) &&
			!strings.Contains(strings.ToLower(strings.Join(row.ComponentTypes, " ")), needle)
	})
}

func componentNames(e *nucleus.Entity) []string {
	components := e.Components()
	names := make([]string, len(components))
	for i, c := range components {
		names[i] = nucleus.TypeOf(c).String()
	}
	return names
}

// PropRow is one flattened prop for display.
type PropRow struct {
	Key   string
	Value any
}

// SortedProps returns the top-level props sorted by key.
func SortedProps(p nucleus.Props) []PropRow {
	rows := make([]PropRow, 0, len(p))
	for k, v := range p {
		rows = append(rows, PropRow{Key: k, Value: v})
	}
	slices.SortFunc(rows, func(a, b PropRow) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return rows
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nucleus.Vector3:
		return fmt.Sprintf("(%.2f, %.2f, %.2f)", val.X, val.Y, val.Z)
	case nucleus.Props:
		return fmt.Sprintf("map[%d items]", len(val))
	case map[string]any:
		return fmt.Sprintf("map[%d items]", len(val))
	case []any:
		return fmt.Sprintf("[%d items]", len(val))
	}
	return fmt.Sprintf("%v", v)
}
