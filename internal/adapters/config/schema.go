package config

// universeDTO is the top-level structure of a weft.yaml universe file.
type universeDTO struct {
	Version    string         `yaml:"version"`
	CacheDir   string         `yaml:"cache_dir"`
	Attributes []attributeDTO `yaml:"attributes"`
	Components []componentDTO `yaml:"components"`
	Transforms []transformDTO `yaml:"transforms"`
	Actions    []actionDTO    `yaml:"actions"`
}

// attributeDTO declares one schema attribute.
type attributeDTO struct {
	Name          string `yaml:"name"`
	Type          string `yaml:"type"`
	Compatibility string `yaml:"compatibility"`
	Extra         string `yaml:"extra"`
}

// componentDTO declares one component and its variants.
type componentDTO struct {
	Group    string       `yaml:"group"`
	Name     string       `yaml:"name"`
	Version  string       `yaml:"version"`
	Project  bool         `yaml:"project"`
	Variants []variantDTO `yaml:"variants"`
}

// variantDTO declares one published variant.
type variantDTO struct {
	Name         string         `yaml:"name"`
	Attributes   map[string]any `yaml:"attributes"`
	Capabilities []string       `yaml:"capabilities"`
	Artifacts    []artifactDTO  `yaml:"artifacts"`
	Dependencies []string       `yaml:"dependencies"`
}

// artifactDTO declares one published artifact.
type artifactDTO struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// transformDTO declares one transform registration.
type transformDTO struct {
	Action           string            `yaml:"action"`
	From             map[string]any    `yaml:"from"`
	To               map[string]any    `yaml:"to"`
	Parameters       map[string]string `yaml:"parameters"`
	Cacheable        bool              `yaml:"cacheable"`
	UsesDependencies bool              `yaml:"uses_dependencies"`
}

// actionDTO binds an action identity to its command template.
type actionDTO struct {
	Name string   `yaml:"name"`
	Cmd  []string `yaml:"cmd"`
}
