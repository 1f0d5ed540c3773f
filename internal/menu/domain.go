package menu

import "time"

// Node kinds. Buttons carry permission strings but no navigable path.
const (
	KindDir    = "M"
	KindMenu   = "C"
	KindButton = "F"
)

// Numeric flags on menu rows. Zero means "yes" in the historical schema.
const (
	FrameExternal = 0
	VisibleYes    = 0
	CacheYes      = 0
)

// Menu is a flat menu/permission row as stored.
type Menu struct {
	ID        int64
	ParentID  int64
	Title     string
	Key       string
	Path      string
	Component string
	Icon      string
	Kind      string
	Perms     string
	Rank      int
	Visible   int
	IsCache   int
	IsFrame   int
	Status    string
	CreatedAt time.Time
}
