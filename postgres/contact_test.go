package postgres_test

import (
	"context"
	"testing"

	"phonebook/contact"
	"phonebook/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestBookRepository_SaveAndLoad(t *testing.T) {
	db := CreateConnection(t, "book_test", "testuser", "testpass")
	repo := postgres.NewBookRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.EnsureInitialised(ctx))

	t.Run("starts with an empty book", func(t *testing.T) {
		contacts, err := repo.LoadContacts(ctx)

		require.NoError(t, err)
		assert.Empty(t, contacts)
	})

	t.Run("keeps contact and phone order", func(t *testing.T) {
		book := []*contact.Contact{
			contact.New("Петр",
				contact.NewPhoneNumber("79169999999", contact.Mobile),
				contact.NewPhoneNumber("123456", contact.Home),
			),
			nil,
			contact.New("Иван", contact.NewPhoneNumber("+79161231111", contact.Mobile)),
			contact.New("Anna"),
		}

		require.NoError(t, repo.SaveContacts(ctx, book))
		got, err := repo.LoadContacts(ctx)

		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "Петр", got[0].Name)
		require.Len(t, got[0].Phones, 2)
		assert.Equal(t, "79169999999", got[0].Phones[0].Number())
		assert.Equal(t, contact.Home, got[0].Phones[1].Type())
		assert.Equal(t, "Иван", got[1].Name)
		assert.Equal(t, "Anna", got[2].Name)
		assert.Empty(t, got[2].Phones)
	})

	t.Run("replaces the previous snapshot", func(t *testing.T) {
		require.NoError(t, repo.SaveContacts(ctx, []*contact.Contact{contact.New("Иван")}))

		got, err := repo.LoadContacts(ctx)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Иван", got[0].Name)
		assertPhoneRows(t, db, 0)
	})

	t.Run("is idempotent on initialisation", func(t *testing.T) {
		assert.NoError(t, repo.EnsureInitialised(ctx))
	})
}

func TestBookRepository_ClosedConnection(t *testing.T) {
	db := CreateConnection(t, "book_closed_test", "testuser", "testpass")
	MigrateTestDatabase(t, db)
	repo := postgres.NewBookRepository(db)
	mustCloseDBConnection(db)

	_, err := repo.LoadContacts(context.Background())
	assert.Error(t, err)

	err = repo.SaveContacts(context.Background(), []*contact.Contact{contact.New("Иван")})
	assert.Error(t, err)
}

func mustCloseDBConnection(db *gorm.DB) {
	sqlDB, _ := db.DB()
	sqlDB.Close()
}

func assertPhoneRows(t testing.TB, db *gorm.DB, expected int64) {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&postgres.PhoneModel{}).Count(&count).Error)
	assert.Equal(t, expected, count)
}
