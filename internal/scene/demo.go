package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/inamate/wallplan/internal/config"
	"github.com/inamate/wallplan/internal/geom"
)

// NewDemoModel builds the startup scene: two walls that keep the default
// end point and only move their start points.
func NewDemoModel(alloc geom.Allocator, v config.Viewer) *Model {
	m := NewModel(alloc)

	for _, start := range []mgl64.Vec3{{-4, 0, 0}, {3, 0, 0}} {
		w := m.NewWall()
		w.Color = v.WallColor
		w.SetHeight(v.WallHeight)
		w.SetWidth(v.WallWidth)
		w.SetStart(start)
		m.AddElement(w)
	}
	return m
}
