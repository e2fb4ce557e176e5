package ports

import (
	"context"

	"go.trai.ch/spawn/internal/core/domain"
)

// Compiler runs isolated nested builds of worker entries.
//
//go:generate go run go.uber.org/mock/mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// Build compiles one worker entry and returns its entry chunk and secondary artifacts.
	Build(ctx context.Context, req domain.SubBuildRequest) (*domain.SubBuildOutput, error)
}

// Resolver resolves module specifiers the way the host build does.
type Resolver interface {
	// Resolve returns the absolute path for specifier imported from importer.
	// An empty path with a nil error means the host could not resolve it.
	Resolve(ctx context.Context, specifier, importer string) (string, error)
}

// OutputBundle is the set of artifacts produced by one host build pass.
type OutputBundle interface {
	// Lookup returns the contents of the artifact with the given name, if present.
	Lookup(name string) ([]byte, bool)
	// Emit adds or replaces an artifact in the output set.
	Emit(name string, contents []byte)
}
