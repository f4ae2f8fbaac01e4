package drafting

import "fmt"

// Tool is the active interaction mode.
type Tool int

const (
	ToolSelect Tool = iota
	ToolWall
	ToolScale
	ToolStair
	ToolAddColumn
	ToolAddBeam
	ToolAddSlab
	ToolDeleteStruct
	ToolDeleteSlab
	ToolDoor
)

var toolNames = [...]string{
	ToolSelect:       "select",
	ToolWall:         "wall",
	ToolScale:        "scale",
	ToolStair:        "stair",
	ToolAddColumn:    "add-col",
	ToolAddBeam:      "add-beam",
	ToolAddSlab:      "add-slab",
	ToolDeleteStruct: "delete-struct",
	ToolDeleteSlab:   "delete-slab",
	ToolDoor:         "door",
}

func (t Tool) String() string {
	if t >= 0 && int(t) < len(toolNames) {
		return toolNames[t]
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// ParseTool resolves a tool by its name.
func ParseTool(name string) (Tool, error) {
	for i, n := range toolNames {
		if n == name {
			return Tool(i), nil
		}
	}
	return ToolSelect, fmt.Errorf("unknown tool %q", name)
}

// needsScale reports whether the tool refuses input before calibration.
func (t Tool) needsScale() bool {
	switch t {
	case ToolWall, ToolAddBeam, ToolAddColumn, ToolDoor:
		return true
	}
	return false
}

// drawsLine reports whether the tool shows a dashed preview from its anchor.
func (t Tool) drawsLine() bool {
	switch t {
	case ToolWall, ToolScale, ToolStair, ToolAddBeam:
		return true
	}
	return false
}
