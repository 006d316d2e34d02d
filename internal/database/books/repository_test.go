package books

import (
	"context"
	"testing"
	"time"

	"github.com/oapi-codegen/nullable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/mrlokans/readtrack/internal/database"
	"github.com/mrlokans/readtrack/internal/database/dbtest"
	"github.com/mrlokans/readtrack/internal/entities"
)

func createPublisher(t *testing.T, s *database.Scope) *entities.Publisher {
	t.Helper()
	publisher := entities.Publisher{Name: "Ace", Description: "Paperbacks"}
	require.NoError(t, s.Tx().Create(&publisher).Error)
	return &publisher
}

func TestBookRoundTrip(t *testing.T) {
	db := dbtest.New(t)
	s := dbtest.Scope(t, db)
	repo := NewRepository()
	publisher := createPublisher(t, s)

	published := datatypes.Date(time.Date(1969, time.March, 1, 0, 0, 0, 0, time.UTC))
	created, err := repo.Create(s, entities.BookPatch{
		Name:          entities.Ptr("The Left Hand of Darkness"),
		ISBN:          nullable.NewNullableWithValue("9780441478125"),
		Language:      nullable.NewNullableWithValue("en"),
		PageCount:     entities.Ptr(uint16(304)),
		PublisherID:   nullable.NewNullableWithValue(publisher.ID),
		DatePublished: nullable.NewNullableWithValue(published),
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, uint16(304), created.PageCount)
	assert.False(t, created.NSFW)
	assert.False(t, created.ImageFormatted)
	assert.Equal(t, publisher.ID, *created.PublisherID)
	assert.Equal(t, "1969-03-01", time.Time(*created.DatePublished).Format("2006-01-02"))
	assert.Nil(t, created.Description)

	fetched, err := repo.FetchOne(s, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestBookDefaults(t *testing.T) {
	db := dbtest.New(t)
	s := dbtest.Scope(t, db)

	created, err := NewRepository().Create(s, entities.BookPatch{Name: entities.Ptr("Bare")})
	require.NoError(t, err)
	assert.Zero(t, created.PageCount)
	assert.False(t, created.NSFW)
	assert.Nil(t, created.PublisherID)
}

func TestBookValidation(t *testing.T) {
	db := dbtest.New(t)
	s := dbtest.Scope(t, db)
	repo := NewRepository()

	_, err := repo.Create(s, entities.BookPatch{})
	assert.ErrorIs(t, err, database.ErrValidation)

	_, err = repo.Create(s, entities.BookPatch{Name: entities.Ptr("Bad ISBN"), ISBN: nullable.NewNullableWithValue("123")})
	var verr *database.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "isbn", verr.Field)
}

func TestBookPublisherReference(t *testing.T) {
	db := dbtest.New(t)
	repo := NewRepository()

	t.Run("unknown publisher is a constraint violation", func(t *testing.T) {
		s := dbtest.Scope(t, db)
		_, err := repo.Create(s, entities.BookPatch{
			Name:        entities.Ptr("Orphan"),
			PublisherID: nullable.NewNullableWithValue(uint16(999)),
		})
		assert.ErrorIs(t, err, database.ErrConstraintViolation)

		count, err := repo.Count(s)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("deleting the publisher clears the reference", func(t *testing.T) {
		s := dbtest.Scope(t, db)
		publisher := createPublisher(t, s)
		book, err := repo.Create(s, entities.BookPatch{
			Name:        entities.Ptr("Kept"),
			PublisherID: nullable.NewNullableWithValue(publisher.ID),
		})
		require.NoError(t, err)

		byPublisher, err := repo.ByPublisher(s, publisher.ID)
		require.NoError(t, err)
		assert.Len(t, byPublisher, 1)

		require.NoError(t, s.Tx().Delete(&entities.Publisher{}, publisher.ID).Error)

		reloaded, err := repo.FetchOne(s, book.ID)
		require.NoError(t, err)
		assert.Nil(t, reloaded.PublisherID)
	})

	t.Run("explicit null unsets the publisher", func(t *testing.T) {
		s := dbtest.Scope(t, db)
		publisher := createPublisher(t, s)
		book, err := repo.Create(s, entities.BookPatch{
			Name:        entities.Ptr("Moved"),
			PublisherID: nullable.NewNullableWithValue(publisher.ID),
		})
		require.NoError(t, err)

		updated, err := repo.Update(s, book.ID, entities.BookPatch{PublisherID: nullable.NewNullNullable[uint16]()})
		require.NoError(t, err)
		assert.Nil(t, updated.PublisherID)
		assert.Equal(t, "Moved", updated.Name)
	})
}

func TestBookAuthors(t *testing.T) {
	db := dbtest.New(t)
	s := dbtest.Scope(t, db)
	repo := NewRepository()

	book, err := repo.Create(s, entities.BookPatch{Name: entities.Ptr("Good Omens")})
	require.NoError(t, err)
	pratchett := entities.Author{Name: "Terry Pratchett"}
	gaiman := entities.Author{Name: "Neil Gaiman"}
	require.NoError(t, s.Tx().Create(&pratchett).Error)
	require.NoError(t, s.Tx().Create(&gaiman).Error)

	link, err := repo.LinkAuthor(s, book.ID, gaiman.ID)
	require.NoError(t, err)
	assert.False(t, link.DateAdded.IsZero())
	_, err = repo.LinkAuthor(s, book.ID, pratchett.ID)
	require.NoError(t, err)

	authors, err := repo.Authors(s, book.ID)
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, "Terry Pratchett", authors[0].Name)
	assert.Equal(t, "Neil Gaiman", authors[1].Name)

	n, err := repo.UnlinkAuthor(s, book.ID, gaiman.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = repo.UnlinkAuthor(s, book.ID, gaiman.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	t.Run("missing author cannot be linked", func(t *testing.T) {
		_, err := repo.LinkAuthor(s, book.ID, gaiman.ID+100)
		assert.ErrorIs(t, err, database.ErrConstraintViolation)
	})

	t.Run("deleting the book drops its links", func(t *testing.T) {
		n, err := repo.Delete(s, book.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		var links int64
		require.NoError(t, s.Tx().Model(&entities.BookAuthor{}).Count(&links).Error)
		assert.Zero(t, links)

		_, err = repo.FetchOne(s, book.ID)
		assert.ErrorIs(t, err, database.ErrNotFound)
	})
}

func TestBookDeleteWithProgressIsRejected(t *testing.T) {
	db := dbtest.New(t)
	s := dbtest.Scope(t, db)
	repo := NewRepository()

	book, err := repo.Create(s, entities.BookPatch{Name: entities.Ptr("Being read")})
	require.NoError(t, err)
	user := entities.User{Name: "reader"}
	require.NoError(t, s.Tx().Create(&user).Error)
	require.NoError(t, s.Tx().Create(&entities.Progress{UserID: user.ID, BookID: book.ID, CurrentPage: 12}).Error)

	_, err = repo.Delete(s, book.ID)
	assert.ErrorIs(t, err, database.ErrConstraintViolation)
}

func TestScopeAtomicity(t *testing.T) {
	db := dbtest.New(t)
	repo := NewRepository()

	s, err := db.Begin(context.Background())
	require.NoError(t, err)
	_, err = repo.Create(s, entities.BookPatch{Name: entities.Ptr("One")})
	require.NoError(t, err)
	_, err = repo.Create(s, entities.BookPatch{Name: entities.Ptr("Two")})
	require.NoError(t, err)
	require.NoError(t, s.Rollback())

	check := dbtest.Scope(t, db)
	n, err := repo.Count(check)
	require.NoError(t, err)
	assert.Zero(t, n)
}
