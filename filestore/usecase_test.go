package filestore_test

import (
	"context"
	"os"
	"testing"

	"phonebook/contact"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhoneBookSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	uc := contact.NewUsecase(repo)
	require.NoError(t, uc.Open(ctx))
	ivan, err := uc.AddContact(ctx, "Иван")
	require.NoError(t, err)
	_, err = uc.AddNumber(ctx, ivan, "+79991234567", contact.Mobile)
	require.NoError(t, err)

	restarted := contact.NewUsecase(repo)
	require.NoError(t, restarted.Open(ctx))

	all := restarted.Book().All()
	require.Len(t, all, 1)
	assert.Equal(t, "Иван", all[0].Name)
	require.Len(t, all[0].Phones, 1)
	assert.Equal(t, "+79991234567", all[0].Phones[0].Number())
	assert.Equal(t, contact.Mobile, all[0].Phones[0].Type())
}

func TestRemovingTheLastNumberIsPersisted(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)
	uc := contact.NewUsecase(repo)
	require.NoError(t, uc.Open(ctx))
	c, err := uc.AddContact(ctx, "Иван")
	require.NoError(t, err)
	p, err := uc.AddNumber(ctx, c, "79161112233", contact.Mobile)
	require.NoError(t, err)

	require.NoError(t, uc.RemoveNumber(ctx, c, p))

	stored, err := repo.LoadContacts(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Иван", stored[0].Name)
	assert.Empty(t, stored[0].Phones)
}

func TestSortIsPersisted(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)
	uc := contact.NewUsecase(repo)
	require.NoError(t, uc.Open(ctx))
	for _, name := range []string{"Петр", "Иван", "Anna"} {
		_, err := uc.AddContact(ctx, name)
		require.NoError(t, err)
	}

	_, err := uc.Sort(ctx)
	require.NoError(t, err)

	stored, err := repo.LoadContacts(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, "Anna", stored[0].Name)
	assert.Equal(t, "Иван", stored[1].Name)
	assert.Equal(t, "Петр", stored[2].Name)
}

func TestCorruptFileStartsEmpty(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)
	require.NoError(t, os.WriteFile(repo.Path(), []byte("PBK1\x05\x00"), 0o600))
	uc := contact.NewUsecase(repo)

	err := uc.Open(ctx)

	assert.ErrorIs(t, err, contact.ErrPersistenceFailed)
	assert.Zero(t, uc.Book().Len())

	_, err = uc.AddContact(ctx, "Иван")
	assert.NoError(t, err, "the book stays usable after a failed load")
}
