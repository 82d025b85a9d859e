package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/grovetools/shelf/config"
)

func main() {
	schemaBytes, err := config.GenerateSchema()
	if err != nil {
		log.Fatalf("Error generating schema: %v", err)
	}

	// Write the schema next to the validator that embeds it.
	outputPath := filepath.Join("schema", "shelf.embedded.schema.json")
	if err := os.WriteFile(outputPath, schemaBytes, 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated schema at %s", outputPath)
}
