package authors

import (
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

func day(d datatypes.Date) string {
	return time.Time(d).Format("2006-01-02")
}

func TestAuthorRoundTrip(t *testing.T) {
	db := dbtest.New(t)
	s := dbtest.Scope(t, db)
	repo := NewRepository()

	birth := datatypes.Date(time.Date(1920, time.January, 2, 0, 0, 0, 0, time.UTC))
	created, err := repo.Create(s, entities.AuthorPatch{
		Name:        entities.Ptr("Isaac Asimov"),
		Description: nullable.NewNullableWithValue("Biochemist"),
		Birth:       nullable.NewNullableWithValue(birth),
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, "Isaac Asimov", created.Name)
	assert.Equal(t, "Biochemist", *created.Description)
	require.NotNil(t, created.Birth)
	assert.Equal(t, "1920-01-02", day(*created.Birth))
	assert.False(t, created.DateAdded.IsZero())
	assert.False(t, created.DateLastUpdated.IsZero())

	fetched, err := repo.FetchOne(s, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestAuthorUpdateMergesPatch(t *testing.T) {
	db := dbtest.New(t)
	s := dbtest.Scope(t, db)
	repo := NewRepository()

	birth := datatypes.Date(time.Date(1950, time.May, 5, 0, 0, 0, 0, time.UTC))
	created, err := repo.Create(s, entities.AuthorPatch{
		Name:        entities.Ptr("TEST AUTHOR"),
		Description: nullable.NewNullableWithValue("to be cleared"),
		Birth:       nullable.NewNullableWithValue(birth),
	})
	require.NoError(t, err)

	updated, err := repo.Update(s, created.ID, entities.AuthorPatch{
		Name:        entities.Ptr("Updated Name"),
		Description: nullable.NewNullNullable[string](),
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Updated Name", updated.Name)
	assert.Nil(t, updated.Description)
	require.NotNil(t, updated.Birth)
	assert.Equal(t, "1950-05-05", day(*updated.Birth))
	assert.Equal(t, created.DateAdded, updated.DateAdded)

	t.Run("empty name keeps the stored one", func(t *testing.T) {
		again, err := repo.Update(s, created.ID, entities.AuthorPatch{})
		require.NoError(t, err)
		assert.Equal(t, "Updated Name", again.Name)
	})

	t.Run("present value overwrites and absent birth is kept", func(t *testing.T) {
		yearZero := datatypes.Date(time.Date(0, time.December, 12, 0, 0, 0, 0, time.UTC))
		author, err := repo.Create(s, entities.AuthorPatch{
			Name:        entities.Ptr("TEST AUTHOR"),
			Description: nullable.NewNullableWithValue("Original Desc"),
			Birth:       nullable.NewNullableWithValue(yearZero),
		})
		require.NoError(t, err)
		require.NotNil(t, author.Birth)
		assert.Equal(t, "0000-12-12", day(*author.Birth))

		updated, err := repo.Update(s, author.ID, entities.AuthorPatch{
			Description: nullable.NewNullableWithValue("Updated Desc"),
		})
		require.NoError(t, err)
		assert.Equal(t, "TEST AUTHOR", updated.Name)
		require.NotNil(t, updated.Description)
		assert.Equal(t, "Updated Desc", *updated.Description)
		require.NotNil(t, updated.Birth)
		assert.Equal(t, "0000-12-12", day(*updated.Birth))
	})

	t.Run("update of a missing author is not found", func(t *testing.T) {
		_, err := repo.Update(s, created.ID+100, entities.AuthorPatch{Name: entities.Ptr("x")})
		assert.ErrorIs(t, err, database.ErrNotFound)
	})
}

func TestAuthorUpdateTouchesLastUpdated(t *testing.T) {
	db := dbtest.New(t)
	repo := NewRepository()

	var created *entities.Author
	dbtest.Commit(t, db, func(s *database.Scope) {
		var err error
		created, err = repo.Create(s, entities.AuthorPatch{Name: entities.Ptr("Stamped")})
		require.NoError(t, err)
	})

	// CURRENT_TIMESTAMP has second resolution in SQLite
	time.Sleep(1100 * time.Millisecond)

	var updated *entities.Author
	dbtest.Commit(t, db, func(s *database.Scope) {
		var err error
		updated, err = repo.Update(s, created.ID, entities.AuthorPatch{Name: entities.Ptr("Restamped")})
		require.NoError(t, err)
	})

	assert.True(t, updated.DateLastUpdated.After(created.DateLastUpdated),
		"date_last_updated %v should follow %v", updated.DateLastUpdated, created.DateLastUpdated)
	assert.True(t, updated.DateAdded.Equal(created.DateAdded))
}

func TestAuthorCreateRequiresName(t *testing.T) {
	db := dbtest.New(t)
	s := dbtest.Scope(t, db)

	_, err := NewRepository().Create(s, entities.AuthorPatch{Description: nullable.NewNullableWithValue("nameless")})

	var verr *database.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestAuthorDelete(t *testing.T) {
	db := dbtest.New(t)
	s := dbtest.Scope(t, db)
	repo := NewRepository()

	created, err := repo.Create(s, entities.AuthorPatch{Name: entities.Ptr("Doomed")})
	require.NoError(t, err)

	n, err := repo.Delete(s, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Delete(s, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	_, err = repo.FetchOne(s, created.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestAuthorBooks(t *testing.T) {
	db := dbtest.New(t)
	s := dbtest.Scope(t, db)
	repo := NewRepository()

	author, err := repo.Create(s, entities.AuthorPatch{Name: entities.Ptr("Pair")})
	require.NoError(t, err)

	first := entities.Book{Name: "First"}
	second := entities.Book{Name: "Second"}
	require.NoError(t, s.Tx().Create(&first).Error)
	require.NoError(t, s.Tx().Create(&second).Error)
	require.NoError(t, s.Tx().Create(&entities.BookAuthor{BookID: second.ID, AuthorID: author.ID}).Error)
	require.NoError(t, s.Tx().Create(&entities.BookAuthor{BookID: first.ID, AuthorID: author.ID}).Error)

	books, err := repo.Books(s, author.ID)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "First", books[0].Name)
	assert.Equal(t, "Second", books[1].Name)

	_, err = repo.Books(s, author.ID+1)
	assert.ErrorIs(t, err, database.ErrNotFound)
}
