// Package main is the entry point for the jenkins-action CLI.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/cicd-ai-toolkit/jenkins-action/pkg/errors"
	"github.com/cicd-ai-toolkit/jenkins-action/pkg/observability"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := Execute(ctx)
	stop()

	os.Exit(exitStatus(os.Stderr, err))
}

// exitStatus logs err to w and returns the process exit code for it.
// Non-fatal errors are logged as warnings.
func exitStatus(w io.Writer, err error) int {
	code := errors.ExitCode(err)
	if err == nil {
		return code
	}

	logger := observability.NewLogger(w, log.InfoLevel)
	if errors.IsFatal(err) {
		logger.Error(err.Error(), "exit_code", code)
	} else {
		logger.Warn(err.Error(), "exit_code", code)
	}
	return code
}
