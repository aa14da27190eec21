// internal/importer/errors_test.go
package importer

import (
	"errors"
	"testing"
)

func TestErrors(t *testing.T) {
	if errors.Is(ErrDestinationExists, ErrCopyFailed) {
		t.Error("errors should be distinct")
	}
	if errors.Is(ErrNothingToUndo, ErrNothingToRedo) {
		t.Error("errors should be distinct")
	}

	errs := []error{
		ErrSourceNotFound,
		ErrCopyFailed,
		ErrDestinationExists,
		ErrPathTraversal,
		ErrNothingToUndo,
		ErrNothingToRedo,
	}
	for _, err := range errs {
		if err.Error() == "" {
			t.Errorf("error %v should have a message", err)
		}
	}
}
