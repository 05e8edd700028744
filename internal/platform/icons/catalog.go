package icons

// ID identifies one icon.
type ID string

// Icon identifiers, one per modal control that carries an icon.
const (
	Close  ID = "close"
	Hint   ID = "hint"
	Submit ID = "submit"
	Points ID = "points"
)
