package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedFormat marks input files whose extension is not a
	// recognized video or audio format.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrConfiguration marks missing credentials or unusable settings,
	// detected at first use of the dependent client.
	ErrConfiguration = errors.New("configuration error")
	// ErrAssetTimeout marks a remote asset that stayed non-terminal past the
	// polling budget.
	ErrAssetTimeout = errors.New("remote asset timeout")
	// ErrAssetFailed marks a remote asset the service itself reported as
	// failed.
	ErrAssetFailed = errors.New("remote asset failed")
	// ErrParse marks a malformed model response.
	ErrParse = errors.New("parse error")
	// ErrAttribution marks an utterance/speaker-info length mismatch.
	ErrAttribution = errors.New("attribution mismatch")
	// ErrExternalTool marks a collaborator process or API failure.
	ErrExternalTool = errors.New("external tool error")
	// ErrPersistence marks a metadata checkpoint write failure. It is the one
	// error the pipeline logs and continues past.
	ErrPersistence = errors.New("persistence failure")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Fatal reports whether err should abort the run. Everything except the
// metadata persistence checkpoint is fatal.
func Fatal(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrPersistence)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
