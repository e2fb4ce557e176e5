package ports

import "go.trai.ch/spawn/internal/core/domain"

// OutputWriter persists build outputs.
//
//go:generate go run go.uber.org/mock/mockgen -source=output_writer.go -destination=mocks/mock_output_writer.go -package=mocks
type OutputWriter interface {
	// Write writes every file, creating parent directories as needed.
	Write(files []domain.OutputFile) error
}
