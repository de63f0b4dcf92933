// Package wtest carries small test helpers shared across the repo.
package wtest

import (
	"testing"

	"github.com/pkg/errors"
)

// Must fails a test immediately on a non-nil error, showing the complete
// error stack.
func Must(t *testing.T, err error) {
	if err != nil {
		t.Helper()
		t.Fatalf("%+v", errors.WithStack(err))
	}
}
