package datastore

import (
	"context"

	"github.com/arthur-debert/mjstudio/pkg/synthfs"
	"github.com/arthur-debert/mjstudio/pkg/template"
)

// Gateway reads, writes and deletes templates and arbitrary files
type Gateway interface {
	// ReadTemplates loads every stored template, oldest first.
	ReadTemplates(ctx context.Context) ([]template.Document, error)

	// Save stores the document, replacing any previous version.
	Save(ctx context.Context, doc template.Document) error

	// DeleteTemplate removes the stored document and its thumbnail.
	DeleteTemplate(ctx context.Context, id string) error

	// ReadFile reads a user file.
	ReadFile(ctx context.Context, path string) (string, error)

	// WriteFile writes a user file.
	WriteFile(ctx context.Context, path, content string) error

	// WriteFiles writes several user files at once.
	WriteFiles(ctx context.Context, writes ...synthfs.FileWrite) error
}

// FileWriter performs writes outside the data directory
type FileWriter interface {
	WriteFiles(ctx context.Context, writes ...synthfs.FileWrite) error
}
