package errors

import (
	"fmt"
	"testing"
)

func TestShelfError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeCollectionMissing, "collection not found")
	if err.Code != ErrCodeCollectionMissing {
		t.Errorf("expected code %s, got %s", ErrCodeCollectionMissing, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeLibraryQuery, "query failed")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	// Test Is function
	if !Is(wrapped, ErrCodeLibraryQuery) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeCollectionMissing) {
		t.Error("Is should return false for non-matching code")
	}

	// Test WithDetail
	detailed := err.WithDetail("key", "inbox").WithDetail("scope", "main")
	if detailed.Details["key"] != "inbox" {
		t.Error("WithDetail should add details")
	}
}

func TestErrorConstructors(t *testing.T) {
	err := CollectionMissing("inbox")
	if err.Code != ErrCodeCollectionMissing {
		t.Errorf("expected code %s, got %s", ErrCodeCollectionMissing, err.Code)
	}
	if err.Details["key"] != "inbox" {
		t.Error("CollectionMissing should include key detail")
	}

	qerr := LibraryQuery("main", fmt.Errorf("disk I/O error"))
	if qerr.Code != ErrCodeLibraryQuery {
		t.Errorf("expected code %s, got %s", ErrCodeLibraryQuery, qerr.Code)
	}
	if qerr.Details["scope"] != "main" {
		t.Error("LibraryQuery should include scope detail")
	}
	if qerr.Unwrap() == nil {
		t.Error("LibraryQuery should preserve the cause")
	}
}

func TestGetCode(t *testing.T) {
	if GetCode(nil) != "" {
		t.Error("GetCode(nil) should return empty code")
	}

	err := ConfigNotFound("/tmp/shelf.yml")
	if GetCode(err) != ErrCodeConfigNotFound {
		t.Errorf("expected %s, got %s", ErrCodeConfigNotFound, GetCode(err))
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if GetCode(wrapped) != ErrCodeConfigNotFound {
		t.Error("GetCode should unwrap nested errors")
	}
}
