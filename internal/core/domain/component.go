package domain

// Coordinate is a group/name/version component identifier.
// It uses InternedString because the same coordinate appears on every
// variant and dependency edge of a component.
type Coordinate struct {
	Group   InternedString
	Name    InternedString
	Version InternedString
}

// NewCoordinate creates a Coordinate from plain strings.
func NewCoordinate(group, name, version string) Coordinate {
	return Coordinate{
		Group:   NewInternedString(group),
		Name:    NewInternedString(name),
		Version: NewInternedString(version),
	}
}

// String returns the "group:name:version" form.
func (c Coordinate) String() string {
	return c.Group.String() + ":" + c.Name.String() + ":" + c.Version.String()
}

// Artifact is one published or transformed file (or directory).
// Digest is the content identity used for cache keys; it is filled in
// lazily by the hasher when a transform consumes the artifact.
type Artifact struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Digest string `json:"digest,omitzero"`
}

// Capability is an identifier a variant satisfies, used for
// conflict and exclusion handling between variants.
type Capability struct {
	Group string
	Name  string
}

// String returns the "group:name" form.
func (c Capability) String() string {
	return c.Group + ":" + c.Name
}

// Variant is one published form of a component. Immutable once parsed:
// its attribute set never changes after publication.
type Variant struct {
	Name         string
	Owner        Coordinate
	Attributes   AttributeSet
	Capabilities []Capability
	Artifacts    []Artifact
	Dependencies []Coordinate
}

// Component is a group/name/version coordinate plus its published variants.
// Project marks in-workspace components whose transform chains can be
// discovered ahead of task execution.
type Component struct {
	Coordinate Coordinate
	Project    bool
	Variants   []Variant
}

// ComponentFilter restricts which candidate components a resolution considers.
type ComponentFilter uint8

const (
	// FilterAll considers every selected component.
	FilterAll ComponentFilter = iota
	// FilterProjects considers only in-workspace components.
	FilterProjects
	// FilterModules considers only externally published components.
	FilterModules
)

// Accepts reports whether the component passes the filter.
func (f ComponentFilter) Accepts(c *Component) bool {
	switch f {
	case FilterProjects:
		return c.Project
	case FilterModules:
		return !c.Project
	default:
		return true
	}
}
