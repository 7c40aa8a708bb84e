package typeid

import "go.jetify.com/typeid/v2"

const (
	PrefixWall    = "wall"
	PrefixCorner  = "corner"
	PrefixOpening = "opening"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewWallID() string    { return New(PrefixWall) }
func NewCornerID() string  { return New(PrefixCorner) }
func NewOpeningID() string { return New(PrefixOpening) }
