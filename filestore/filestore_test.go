package filestore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"phonebook/contact"
	"phonebook/filestore"
	"phonebook/pbk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepository(t *testing.T) *filestore.BookRepository {
	t.Helper()
	return filestore.NewBookRepository(filepath.Join(t.TempDir(), filestore.DefaultPath))
}

func TestNewBookRepository_DefaultPath(t *testing.T) {
	assert.Equal(t, "phonebook.bin", filestore.NewBookRepository("").Path())
}

func TestEnsureInitialised(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a file holding an empty book", func(t *testing.T) {
		repo := newRepository(t)

		err := repo.EnsureInitialised(ctx)

		require.NoError(t, err)
		data, err := os.ReadFile(repo.Path())
		require.NoError(t, err)
		assert.Equal(t, []byte("PBK1\x00\x00\x00\x00"), data)
	})

	t.Run("leaves an existing file alone", func(t *testing.T) {
		repo := newRepository(t)
		require.NoError(t, os.WriteFile(repo.Path(), []byte("not a book"), 0o600))

		err := repo.EnsureInitialised(ctx)

		require.NoError(t, err)
		data, _ := os.ReadFile(repo.Path())
		assert.Equal(t, "not a book", string(data))
	})
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)
	book := []*contact.Contact{
		contact.New("Иван", contact.NewPhoneNumber("+79991234567", contact.Mobile)),
		nil,
		contact.New("Петр"),
	}

	require.NoError(t, repo.SaveContacts(ctx, book))
	got, err := repo.LoadContacts(ctx)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Иван", got[0].Name)
	assert.Equal(t, "+79991234567", got[0].Phones[0].Number())
	assert.Equal(t, contact.Mobile, got[0].Phones[0].Type())
	assert.Equal(t, "Петр", got[1].Name)
	assert.Empty(t, got[1].Phones)

	entries, err := os.ReadDir(filepath.Dir(repo.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary file should be left behind")
}

func TestLoadContacts_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		_, err := newRepository(t).LoadContacts(ctx)

		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("foreign file", func(t *testing.T) {
		repo := newRepository(t)
		require.NoError(t, os.WriteFile(repo.Path(), []byte("\xac\xed\x00\x05"), 0o600))

		_, err := repo.LoadContacts(ctx)

		assert.ErrorIs(t, err, pbk.ErrBadMagic)
	})

	t.Run("empty file is an empty book", func(t *testing.T) {
		repo := newRepository(t)
		require.NoError(t, os.WriteFile(repo.Path(), nil, 0o600))

		got, err := repo.LoadContacts(ctx)

		assert.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestSaveContacts_UnwritableDirectory(t *testing.T) {
	repo := filestore.NewBookRepository(filepath.Join(t.TempDir(), "missing", "phonebook.bin"))

	err := repo.SaveContacts(context.Background(), nil)

	assert.Error(t, err)
}
