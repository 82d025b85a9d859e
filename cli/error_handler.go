package cli

import (
	"fmt"
	"os"

	"github.com/grovetools/shelf/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ Configuration not found. Create a shelf.yml to get started.\n")
		return err

	case errors.ErrCodeCollectionMissing:
		if shelfErr, ok := err.(*errors.ShelfError); ok {
			fmt.Fprintf(os.Stderr, "❌ Collection '%s' not found\n", shelfErr.Details["key"])
			fmt.Fprintf(os.Stderr, "Run 'shelf collections list' to see available collections.\n")
		}
		return err

	case errors.ErrCodeCollectionExists:
		if shelfErr, ok := err.(*errors.ShelfError); ok {
			fmt.Fprintf(os.Stderr, "❌ Collection '%s' already exists\n", shelfErr.Details["key"])
		}
		return err

	case errors.ErrCodeItemMissing:
		if shelfErr, ok := err.(*errors.ShelfError); ok {
			fmt.Fprintf(os.Stderr, "❌ Item '%s' not found\n", shelfErr.Details["item"])
		}
		return err

	case errors.ErrCodeLibraryOpen:
		if shelfErr, ok := err.(*errors.ShelfError); ok {
			fmt.Fprintf(os.Stderr, "❌ Could not open library at '%s'\n", shelfErr.Details["path"])
			fmt.Fprintf(os.Stderr, "Check the library.path setting in shelf.yml\n")
		}
		return err

	default:
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		// If verbose mode, show full error details
		if h.Verbose {
			if shelfErr, ok := err.(*errors.ShelfError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", shelfErr.ToJSON())
			}
		}
		return err
	}
}
