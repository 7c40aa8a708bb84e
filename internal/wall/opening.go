package wall

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/inamate/wallplan/internal/typeid"
)

// Placeholder stands in for a door or window hosted by a wall.
type Placeholder struct {
	Width    float64
	Height   float64
	Position mgl64.Vec3
	Rotation mgl64.Vec3
}

// Opening places a placeholder Distance along the wall from its start.
type Opening struct {
	ID       string
	Object   *Placeholder
	Distance float64
}

// AddOpening hosts obj at distance along the wall and returns the opening ID.
func (w *Wall) AddOpening(obj *Placeholder, distance float64) string {
	id := typeid.NewOpeningID()
	w.openings = append(w.openings, Opening{ID: id, Object: obj, Distance: distance})
	w.placeOpenings()
	return id
}

// RemoveOpening drops an opening. The placeholder itself is left as is.
func (w *Wall) RemoveOpening(id string) bool {
	i := slices.IndexFunc(w.openings, func(o Opening) bool { return o.ID == id })
	if i < 0 {
		return false
	}
	w.openings = slices.Delete(w.openings, i, i+1)
	return true
}

// Openings returns a copy of the opening list.
func (w *Wall) Openings() []Opening {
	return slices.Clone(w.openings)
}

func (w *Wall) placeOpenings() {
	dir := w.Direction()
	for _, o := range w.openings {
		if o.Object == nil {
			continue
		}
		o.Object.Position = w.start.Add(dir.Mul(o.Distance))
		o.Object.Rotation = w.mesh.Rotation
	}
}
