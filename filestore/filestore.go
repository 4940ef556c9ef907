package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"phonebook/contact"
	"phonebook/pbk"

	"github.com/google/renameio/v2"
)

// DefaultPath is the book file in the working directory.
const DefaultPath = "phonebook.bin"

const filePerm = 0o644

// BookRepository implements contact.Repository on a single PBK1 file.
// Every save rewrites the whole file through a temporary file and a rename,
// so a crash leaves either the old or the new book on disk.
type BookRepository struct {
	path string
}

func NewBookRepository(path string) *BookRepository {
	if path == "" {
		path = DefaultPath
	}
	return &BookRepository{path: path}
}

func (r *BookRepository) Path() string {
	return r.path
}

// EnsureInitialised writes an empty book when the file does not exist.
func (r *BookRepository) EnsureInitialised(ctx context.Context) error {
	_, err := os.Stat(r.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("filestore: stat %s: %w", r.path, err)
	}
	return r.SaveContacts(ctx, nil)
}

func (r *BookRepository) LoadContacts(_ context.Context) ([]*contact.Contact, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("filestore: read %s: %w", r.path, err)
	}

	contacts, err := pbk.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("filestore: decode %s: %w", r.path, err)
	}
	return contacts, nil
}

func (r *BookRepository) SaveContacts(_ context.Context, contacts []*contact.Contact) error {
	data, err := pbk.Marshal(contacts)
	if err != nil {
		return fmt.Errorf("filestore: encode: %w", err)
	}

	if err := renameio.WriteFile(r.path, data, filePerm); err != nil {
		return fmt.Errorf("filestore: write %s: %w", r.path, err)
	}
	return nil
}
