package ports

// Workspace allocates output locations for transform executions.
//
//go:generate go run go.uber.org/mock/mockgen -source=workspace.go -destination=mocks/mock_workspace.go -package=mocks
type Workspace interface {
	// OutputDir returns the directory a transform keyed by keyDigest
	// must materialize its outputs under, creating it if needed.
	// The same digest always maps to the same directory.
	OutputDir(keyDigest string) (string, error)
}
