package game

// BodyView is the renderable state of one disk.
type BodyView struct {
	ID     uint32
	X, Y   float64
	Radius float64
	Color  string // palette hex color, empty for projectiles
}

// Snapshot is the per-tick world state handed to the presentation layer.
type Snapshot struct {
	Targets     []BodyView
	Projectiles []BodyView
}
