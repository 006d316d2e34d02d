// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into entity-specific sub-packages on top of
// a generic repository:
//
//	database/
//	├── database.go      # Connection setup (sqlite or postgres), pool sizing
//	├── migrate.go       # Versioned migrator, schema_migrations bookkeeping
//	├── migrations.go    # Schema steps per dialect
//	├── scope.go         # Transaction scopes
//	├── repository.go    # Generic Repository[T, P] and Descriptor[T, P]
//	├── errors.go        # Error kinds
//	├── authors/         # Author CRUD, books by author
//	├── publishers/      # Publisher CRUD
//	├── books/           # Book CRUD, author links
//	├── users/           # User CRUD, explicit-id adoption
//	└── progress/        # Reading progress per (user, book)
//
// # Scopes
//
// Repositories never open transactions. Every call takes a *Scope owned by
// the caller, and everything done through one scope commits or rolls back
// together:
//
//	db, err := database.New(ctx, database.Options{URL: "sqlite://./readtrack.db"})
//
//	err = db.InTx(ctx, func(s *database.Scope) error {
//		author, err := authors.NewRepository().Create(s, entities.AuthorPatch{Name: entities.Ptr("Le Guin")})
//		if err != nil {
//			return err
//		}
//		_, err = books.NewRepository().LinkAuthor(s, bookID, author.ID)
//		return err
//	})
//
// # Partial updates
//
// Create and Update take the entity's patch type. Required fields are
// pointers and only overwrite when present and non-empty. Nullable fields use
// nullable.Nullable, where an explicit null clears the column.
//
// # Errors
//
// Every error returned here matches one of the Err* kinds with errors.Is.
// Use Kind to get it back.
//
// # Adding a New Entity
//
//  1. Add the struct, its patch type and Merge method to internal/entities
//  2. Append a Step to Steps with DDL for every dialect
//  3. Create a sub-package with a Descriptor and a typed Repository wrapper
//  4. Add compile-time interface checks in internal/interfaces
package database
