package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/readtrack/internal/database"
	"github.com/mrlokans/readtrack/internal/database/authors"
	"github.com/mrlokans/readtrack/internal/database/books"
	"github.com/mrlokans/readtrack/internal/database/dbtest"
	"github.com/mrlokans/readtrack/internal/database/progress"
	"github.com/mrlokans/readtrack/internal/database/publishers"
)

const library = `
publishers:
  - ref: ace
    name: Ace Books
    description: Science fiction paperbacks
    city: New York
authors:
  - ref: gibson
    name: William Gibson
    birth: "1948-03-17"
  - ref: sterling
    name: Bruce Sterling
books:
  - ref: neuromancer
    name: Neuromancer
    isbn: "9780441478125"
    language: en
    page_count: 271
    publisher: ace
    authors: [gibson]
    date_published: "1984-07-01"
  - ref: engine
    name: The Difference Engine
    authors: [gibson, sterling]
users:
  - ref: ada
    id: 42
    name: ada
  - ref: bob
    name: bob
progress:
  - user: ada
    book: neuromancer
    current_page: 120
  - user: bob
    book: engine
    current_page: 3
`

func TestParse(t *testing.T) {
	f, err := Parse(strings.NewReader(library))
	require.NoError(t, err)

	assert.Len(t, f.Publishers, 1)
	assert.Len(t, f.Authors, 2)
	require.Len(t, f.Books, 2)
	assert.Equal(t, []string{"gibson", "sterling"}, f.Books[1].Authors)
	assert.Equal(t, uint8(42), f.Users[0].ID)
	assert.Equal(t, uint16(120), f.Progress[0].CurrentPage)
}

func TestParse_Empty(t *testing.T) {
	f, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Books)
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := Parse(strings.NewReader("shelves:\n  - name: x\n"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.yaml")
	require.NoError(t, os.WriteFile(path, []byte(library), 0o644))

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, f.Books, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	db := dbtest.New(t)
	f, err := Parse(strings.NewReader(library))
	require.NoError(t, err)

	res, err := NewSeeder(db).Apply(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, Result{Publishers: 1, Authors: 2, Books: 2, Links: 3, Users: 2, Progress: 2}, res)

	s := dbtest.Scope(t, db)

	neuromancer, err := books.NewRepository().FetchOne(s, 1)
	require.NoError(t, err)
	require.NotNil(t, neuromancer.PublisherID)
	assert.Equal(t, uint16(1), *neuromancer.PublisherID)
	require.NotNil(t, neuromancer.DatePublished)
	require.NotNil(t, neuromancer.ISBN)
	assert.Equal(t, "9780441478125", *neuromancer.ISBN)

	engineAuthors, err := books.NewRepository().Authors(s, 2)
	require.NoError(t, err)
	assert.Len(t, engineAuthors, 2)

	gibson, err := authors.NewRepository().FetchOne(s, 1)
	require.NoError(t, err)
	assert.NotNil(t, gibson.Birth)
	assert.Nil(t, gibson.Description)

	ada, err := progress.NewRepository().FetchFor(s, 42, 1)
	require.NoError(t, err)
	assert.Equal(t, uint16(120), ada.CurrentPage)

	// bob was created after ada was adopted, so takes the next id
	bob, err := progress.NewRepository().FetchFor(s, 43, 2)
	require.NoError(t, err)
	assert.Equal(t, uint16(3), bob.CurrentPage)
}

func TestApply_IsAtomic(t *testing.T) {
	tests := []struct {
		name    string
		fixture string
		wantErr error
	}{
		{
			name: "unknown publisher ref",
			fixture: `
publishers:
  - {ref: ace, name: Ace, description: Paperbacks}
books:
  - {ref: b, name: Book, publisher: tor}
`,
			wantErr: ErrUnknownRef,
		},
		{
			name: "duplicate ref",
			fixture: `
publishers:
  - {ref: ace, name: Ace, description: Paperbacks}
  - {ref: ace, name: Ace Two, description: Paperbacks}
`,
			wantErr: ErrDuplicateRef,
		},
		{
			name: "invalid row",
			fixture: `
publishers:
  - {ref: ace, name: Ace, description: Paperbacks}
authors:
  - {ref: nobody, description: no name}
`,
			wantErr: database.ErrValidation,
		},
		{
			name: "bad date",
			fixture: `
publishers:
  - {ref: ace, name: Ace, description: Paperbacks}
authors:
  - {ref: a, name: A, birth: 17/03/1948}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := dbtest.New(t)
			f, err := Parse(strings.NewReader(tt.fixture))
			require.NoError(t, err)

			_, err = NewSeeder(db).Apply(context.Background(), f)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}

			s := dbtest.Scope(t, db)
			count, err := publishers.NewRepository().Count(s)
			require.NoError(t, err)
			assert.Zero(t, count)
		})
	}
}
