package domain

// AttributeDecl declares one schema attribute in a loaded universe:
// its name, kind, and the named rules to attach.
type AttributeDecl struct {
	Name string
	Kind Kind
	// Compatibility names the compatibility rule ("equals", "at-least").
	Compatibility string
	// ExtraPolicy names how an attribute present only on the candidate
	// counts ("compatible", "incompatible").
	ExtraPolicy string
}

// ActionSpec binds an action identity to the command template that
// materializes its outputs. "{input}" and "{output_dir}" placeholders
// are substituted per invocation; "{param.NAME}" substitutes a declared
// parameter value.
type ActionSpec struct {
	Name    string
	Command []string
}

// Universe is the parsed resolution context handed to the engine:
// the attribute schema declarations, the selected components, the
// transform registrations, and the action definitions backing them.
type Universe struct {
	Attributes []AttributeDecl
	Components []Component
	Transforms []Registration
	Actions    []ActionSpec
	// CacheDir is the root of the transform execution cache.
	CacheDir string
}
