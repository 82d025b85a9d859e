package errors

import "fmt"

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *ShelfError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *ShelfError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// LibraryOpen creates a library open failure error
func LibraryOpen(path string, err error) *ShelfError {
	return Wrap(err, ErrCodeLibraryOpen, fmt.Sprintf("failed to open library at %s", path)).
		WithDetail("path", path)
}

// LibraryQuery creates a library query failure error
func LibraryQuery(scope string, err error) *ShelfError {
	return Wrap(err, ErrCodeLibraryQuery, fmt.Sprintf("library query failed for scope '%s'", scope)).
		WithDetail("scope", scope)
}

// CollectionMissing creates a collection not found error
func CollectionMissing(key string) *ShelfError {
	return New(ErrCodeCollectionMissing, fmt.Sprintf("collection '%s' not found", key)).
		WithDetail("key", key)
}

// CollectionExists creates a duplicate collection error
func CollectionExists(key string) *ShelfError {
	return New(ErrCodeCollectionExists, fmt.Sprintf("collection '%s' already exists", key)).
		WithDetail("key", key)
}

// ItemMissing creates an item not found error
func ItemMissing(id string) *ShelfError {
	return New(ErrCodeItemMissing, fmt.Sprintf("item '%s' not found", id)).
		WithDetail("item", id)
}

// FeedClosed creates an error for operations on a closed feed
func FeedClosed() *ShelfError {
	return New(ErrCodeFeedClosed, "change feed is closed")
}
