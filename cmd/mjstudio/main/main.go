package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/mjstudio/cmd/mjstudio"
	"github.com/arthur-debert/mjstudio/pkg/errors"
	"github.com/arthur-debert/mjstudio/pkg/ui/styles"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := mjstudio.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		errorStyle := styles.Default().Get("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		stop()
		os.Exit(exitCode(err))
	}
}

// exitCode maps error codes to process exit statuses
func exitCode(err error) int {
	switch errors.GetErrorCode(err) {
	case errors.ErrInvalidInput:
		return 2
	case errors.ErrNotFound:
		return 3
	default:
		return 1
	}
}
