// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"
)

// Executor defines the interface for running external commands.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs command inside dir, streaming its output to stdout and stderr.
	//
	// It returns an error if the command cannot be started or exits non-zero.
	Execute(ctx context.Context, dir string, command []string, stdout, stderr io.Writer) error
}
