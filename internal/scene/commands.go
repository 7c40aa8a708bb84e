package scene

import (
	"encoding/json"

	"github.com/inamate/wallplan/internal/geom"
)

// DrawCommand describes one wall mesh for the frontend renderer. The
// frontend keeps one mesh per WallID and updates it from these.
type DrawCommand struct {
	Op       string       `json:"op"`                // "box" or "prism"
	WallID   string       `json:"wallId"`            // For hit correlation
	Position [3]float64   `json:"position"`          // Mesh centre
	Rotation float64      `json:"rotationZ"`         // Radians
	Size     [3]float64   `json:"size"`              // Length, height, width
	Outline  [][2]float64 `json:"outline,omitempty"` // Local section for "prism" ops
	Color    string       `json:"color,omitempty"`
	Bounds   geom.Rect    `json:"bounds"`
}

// CompileDrawCommands generates one command per visible node, in
// insertion order.
func CompileDrawCommands(g *Graph) []DrawCommand {
	if g == nil {
		return nil
	}

	commands := make([]DrawCommand, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		if !n.Visible || n.Mesh == nil {
			continue
		}
		commands = append(commands, compileNode(n))
	}
	return commands
}

func compileNode(n *Node) DrawCommand {
	m := n.Mesh
	cmd := DrawCommand{
		Op:       string(geom.KindBox),
		WallID:   n.ID,
		Position: [3]float64(m.Position),
		Rotation: m.Rotation[2],
		Size:     [3]float64(m.Size),
		Color:    n.Color,
		Bounds:   n.Bounds,
	}
	if m.Outline != nil {
		cmd.Op = string(geom.KindPrism)
		cmd.Outline = make([][2]float64, len(m.Outline))
		for i, p := range m.Outline {
			cmd.Outline[i] = [2]float64(p)
		}
	}
	return cmd
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
