package tasks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/readtrack/internal/database"
	"github.com/mrlokans/readtrack/internal/database/dbtest"
	"github.com/mrlokans/readtrack/internal/database/progress"
	"github.com/mrlokans/readtrack/internal/entities"
)

func seedReader(t *testing.T, db *database.Database) (entities.User, entities.Book) {
	t.Helper()
	user := entities.User{Name: "reader"}
	book := entities.Book{Name: "Hyperion"}
	dbtest.Commit(t, db, func(s *database.Scope) {
		require.NoError(t, s.Tx().Create(&user).Error)
		require.NoError(t, s.Tx().Create(&book).Error)
	})
	return user, book
}

func TestRecordProgressProcessor(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	user, book := seedReader(t, db)
	process := RecordProgressProcessor(db)

	require.NoError(t, process(ctx, RecordProgressTask{UserID: user.ID, BookID: book.ID, CurrentPage: 12}))
	require.NoError(t, process(ctx, RecordProgressTask{UserID: user.ID, BookID: book.ID, CurrentPage: 40}))

	s := dbtest.Scope(t, db)
	row, err := progress.NewRepository().FetchFor(s, user.ID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, uint16(40), row.CurrentPage)
	require.NoError(t, s.Rollback())

	t.Run("unknown book is dropped, not retried", func(t *testing.T) {
		err := process(ctx, RecordProgressTask{UserID: user.ID, BookID: book.ID + 10, CurrentPage: 1})
		assert.NoError(t, err)
	})

	t.Run("missing database is an error", func(t *testing.T) {
		err := RecordProgressProcessor(nil)(ctx, RecordProgressTask{})
		assert.Error(t, err)
	})
}

func TestCollectStats(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	seedReader(t, db)

	stats, err := CollectStats(ctx, db, DefaultCounters())
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats["users"])
	assert.Equal(t, int64(1), stats["books"])
	assert.Equal(t, int64(0), stats["authors"])
	assert.Equal(t, int64(0), stats["progress"])
	assert.Len(t, stats, 5)

	assert.Equal(t, "books=1 users=1", formatStats(map[string]int64{"users": 1, "books": 1}))
	assert.NoError(t, LibraryStatsProcessor(db, DefaultCounters())(ctx, LibraryStatsTask{}))
}
