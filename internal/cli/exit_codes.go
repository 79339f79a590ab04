package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/ariel-frischer/cz/internal/errors"
)

// Exit codes for the cz CLI
// These codes support commit hooks and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitValidationFailed indicates a commit message or the history broke the rules
	ExitValidationFailed = 1

	// ExitNothingToRelease indicates no commit since the current version calls for a release
	ExitNothingToRelease = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitPrerequisiteFailed indicates the repository is not usable (no repository, untagged version)
	ExitPrerequisiteFailed = 4

	// ExitConfigurationInvalid indicates the configuration could not be loaded
	ExitConfigurationInvalid = 5
)

// ExitError carries an exit code. Its Err, if any, has not been printed yet.
type ExitError struct {
	Code int
	Err  error
}

// NewExitError returns an error that exits with code once the command has
// already reported the failure itself.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// WithExitCode attaches an exit code to err.
func WithExitCode(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument:
			return ExitInvalidArguments
		case clierrors.Configuration:
			return ExitConfigurationInvalid
		case clierrors.Prerequisite:
			return ExitPrerequisiteFailed
		}
	}

	return ExitValidationFailed
}
