// Package seed loads a library fixture from YAML and writes it through the
// repositories in a single scope. Rows reference each other by "ref" keys, so
// a fixture never has to know the ids the database will assign.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/oapi-codegen/nullable"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"

	"github.com/mrlokans/readtrack/internal/database"
	"github.com/mrlokans/readtrack/internal/database/authors"
	"github.com/mrlokans/readtrack/internal/database/books"
	"github.com/mrlokans/readtrack/internal/database/progress"
	"github.com/mrlokans/readtrack/internal/database/publishers"
	"github.com/mrlokans/readtrack/internal/database/users"
	"github.com/mrlokans/readtrack/internal/entities"
)

const dateLayout = "2006-01-02"

var (
	ErrUnknownRef   = errors.New("unknown ref")
	ErrDuplicateRef = errors.New("duplicate ref")
)

// Fixture is the document layout of a seed file.
type Fixture struct {
	Publishers []Publisher `yaml:"publishers"`
	Authors    []Author    `yaml:"authors"`
	Books      []Book      `yaml:"books"`
	Users      []User      `yaml:"users"`
	Progress   []Progress  `yaml:"progress"`
}

type Publisher struct {
	Ref         string `yaml:"ref"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	City        string `yaml:"city,omitempty"`
}

type Author struct {
	Ref         string `yaml:"ref"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Birth       string `yaml:"birth,omitempty"`
}

type Book struct {
	Ref            string   `yaml:"ref"`
	Name           string   `yaml:"name"`
	ISBN           string   `yaml:"isbn,omitempty"`
	Description    string   `yaml:"description,omitempty"`
	Language       string   `yaml:"language,omitempty"`
	NSFW           bool     `yaml:"nsfw,omitempty"`
	PageCount      uint16   `yaml:"page_count,omitempty"`
	ImageFormatted bool     `yaml:"image_formatted,omitempty"`
	Publisher      string   `yaml:"publisher,omitempty"`
	Authors        []string `yaml:"authors,omitempty"`
	DatePublished  string   `yaml:"date_published,omitempty"`
}

// User rows with a non-zero ID are adopted under that id.
type User struct {
	Ref  string `yaml:"ref"`
	ID   uint8  `yaml:"id,omitempty"`
	Name string `yaml:"name"`
}

type Progress struct {
	User        string `yaml:"user"`
	Book        string `yaml:"book"`
	CurrentPage uint16 `yaml:"current_page"`
}

// Result counts the rows written by Apply.
type Result struct {
	Publishers int
	Authors    int
	Books      int
	Links      int
	Users      int
	Progress   int
}

func (r Result) String() string {
	return fmt.Sprintf("publishers=%d authors=%d books=%d links=%d users=%d progress=%d",
		r.Publishers, r.Authors, r.Books, r.Links, r.Users, r.Progress)
}

// Transactor runs fn inside a scope that commits when fn returns nil.
type Transactor interface {
	InTx(ctx context.Context, fn func(s *database.Scope) error) error
}

// Parse decodes a fixture. Unknown keys are rejected.
func Parse(r io.Reader) (*Fixture, error) {
	var f Fixture
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	return &f, nil
}

// LoadFile parses the fixture stored at path.
func LoadFile(path string) (*Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

// Seeder writes fixtures through the entity repositories.
type Seeder struct {
	db         Transactor
	publishers *publishers.Repository
	authors    *authors.Repository
	books      *books.Repository
	users      *users.Repository
	progress   *progress.Repository
}

func NewSeeder(db Transactor) *Seeder {
	return &Seeder{
		db:         db,
		publishers: publishers.NewRepository(),
		authors:    authors.NewRepository(),
		books:      books.NewRepository(),
		users:      users.NewRepository(),
		progress:   progress.NewRepository(),
	}
}

// Apply writes every row of f in one scope. Nothing is kept when any row
// fails.
func (sd *Seeder) Apply(ctx context.Context, f *Fixture) (Result, error) {
	var res Result
	err := sd.db.InTx(ctx, func(s *database.Scope) error {
		res = Result{}
		return sd.apply(s, f, &res)
	})
	if err != nil {
		return Result{}, err
	}
	log.Printf("Seeded library: %s", res)
	return res, nil
}

func (sd *Seeder) apply(s *database.Scope, f *Fixture, res *Result) error {
	publisherIDs := refs[uint16]{kind: "publisher"}
	authorIDs := refs[uint64]{kind: "author"}
	bookIDs := refs[uint64]{kind: "book"}
	userIDs := refs[uint8]{kind: "user"}

	for _, p := range f.Publishers {
		patch := entities.PublisherPatch{
			Name:        entities.Ptr(p.Name),
			Description: entities.Ptr(p.Description),
			City:        optional(p.City),
		}
		row, err := sd.publishers.Create(s, patch)
		if err != nil {
			return fmt.Errorf("publisher %q: %w", p.Ref, err)
		}
		if err := publisherIDs.put(p.Ref, row.ID); err != nil {
			return err
		}
		res.Publishers++
	}

	for _, a := range f.Authors {
		birth, err := optionalDate(a.Birth)
		if err != nil {
			return fmt.Errorf("author %q: %w", a.Ref, err)
		}
		row, err := sd.authors.Create(s, entities.AuthorPatch{
			Name:        entities.Ptr(a.Name),
			Description: optional(a.Description),
			Birth:       birth,
		})
		if err != nil {
			return fmt.Errorf("author %q: %w", a.Ref, err)
		}
		if err := authorIDs.put(a.Ref, row.ID); err != nil {
			return err
		}
		res.Authors++
	}

	for _, b := range f.Books {
		published, err := optionalDate(b.DatePublished)
		if err != nil {
			return fmt.Errorf("book %q: %w", b.Ref, err)
		}
		patch := entities.BookPatch{
			Name:           entities.Ptr(b.Name),
			ISBN:           optional(b.ISBN),
			Description:    optional(b.Description),
			Language:       optional(b.Language),
			NSFW:           entities.Ptr(b.NSFW),
			PageCount:      entities.Ptr(b.PageCount),
			ImageFormatted: entities.Ptr(b.ImageFormatted),
			DatePublished:  published,
		}
		if b.Publisher != "" {
			id, err := publisherIDs.get(b.Publisher)
			if err != nil {
				return fmt.Errorf("book %q: %w", b.Ref, err)
			}
			patch.PublisherID = nullable.NewNullableWithValue(id)
		}

		row, err := sd.books.Create(s, patch)
		if err != nil {
			return fmt.Errorf("book %q: %w", b.Ref, err)
		}
		if err := bookIDs.put(b.Ref, row.ID); err != nil {
			return err
		}
		res.Books++

		for _, ref := range b.Authors {
			authorID, err := authorIDs.get(ref)
			if err != nil {
				return fmt.Errorf("book %q: %w", b.Ref, err)
			}
			if _, err := sd.books.LinkAuthor(s, row.ID, authorID); err != nil {
				return fmt.Errorf("book %q author %q: %w", b.Ref, ref, err)
			}
			res.Links++
		}
	}

	for _, u := range f.Users {
		patch := entities.UserPatch{Name: entities.Ptr(u.Name)}
		var (
			row *entities.User
			err error
		)
		if u.ID != 0 {
			row, err = sd.users.Adopt(s, u.ID, patch)
		} else {
			row, err = sd.users.Create(s, patch)
		}
		if err != nil {
			return fmt.Errorf("user %q: %w", u.Ref, err)
		}
		if err := userIDs.put(u.Ref, row.ID); err != nil {
			return err
		}
		res.Users++
	}

	for _, p := range f.Progress {
		userID, err := userIDs.get(p.User)
		if err != nil {
			return fmt.Errorf("progress: %w", err)
		}
		bookID, err := bookIDs.get(p.Book)
		if err != nil {
			return fmt.Errorf("progress: %w", err)
		}
		if _, err := sd.progress.Record(s, userID, bookID, p.CurrentPage); err != nil {
			return fmt.Errorf("progress %s/%s: %w", p.User, p.Book, err)
		}
		res.Progress++
	}

	return nil
}

// refs maps fixture refs to the ids the database assigned. Rows without a
// ref cannot be referenced but are still written.
type refs[K any] struct {
	kind string
	ids  map[string]K
}

func (r *refs[K]) put(ref string, id K) error {
	if ref == "" {
		return nil
	}
	if r.ids == nil {
		r.ids = make(map[string]K)
	}
	if _, ok := r.ids[ref]; ok {
		return fmt.Errorf("%s %q: %w", r.kind, ref, ErrDuplicateRef)
	}
	r.ids[ref] = id
	return nil
}

func (r *refs[K]) get(ref string) (K, error) {
	id, ok := r.ids[ref]
	if !ok {
		var zero K
		return zero, fmt.Errorf("%s %q: %w", r.kind, ref, ErrUnknownRef)
	}
	return id, nil
}

func optional(v string) nullable.Nullable[string] {
	if v == "" {
		return nullable.Nullable[string]{}
	}
	return nullable.NewNullableWithValue(v)
}

func optionalDate(v string) (nullable.Nullable[datatypes.Date], error) {
	if v == "" {
		return nullable.Nullable[datatypes.Date]{}, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", v, err)
	}
	return nullable.NewNullableWithValue(datatypes.Date(t)), nil
}
