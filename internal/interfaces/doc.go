// Package interfaces documents the core abstractions used throughout the application.
//
// This package consolidates interface documentation to help contributors find
// extension points and see how a new entity is wired end to end.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - CRUDStore: list/get/create/update/delete shared by every entity (internal/http/resource.go)
//   - AuthorStore, PublisherStore, BookStore, UserStore, ProgressStore: per-entity
//     extras on top of CRUDStore (internal/http/<entity>.go)
//   - Transactor: runs a function inside a committed-on-success scope
//     (internal/http/helpers.go, internal/tasks/record_progress.go, internal/seed/seed.go)
//   - Pinger: reachability of the store (internal/http/health.go)
//
// ## Background Work Interfaces
//
//   - Counter: row counts for the library stats task (internal/tasks/library_stats.go)
//   - TaskEnqueuer / TaskQueue: adding tasks and reading their status (internal/http)
//   - Enqueuer: what the stats scheduler needs from the queue (internal/scheduler/stats.go)
//
// # Adding a New Entity
//
// To add a new entity (e.g., shelves), start with the row and patch types in
// internal/entities/:
//
//	type Shelf struct {
//		ID   uint64 `gorm:"primaryKey" json:"id"`
//		Name string `gorm:"not null" json:"name"`
//	}
//
//	type ShelfPatch struct {
//		Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=128"`
//	}
//
// Then append a migration step with statements for every dialect
// (internal/database/migrations.go), create internal/database/shelves/ with a
// descriptor and a Repository wrapping
// database.Repository[entities.Shelf, entities.ShelfPatch], and add a
// controller in internal/http/ embedding resource[...] registered in
// router.go. Finish with compile-time checks:
//
//	var _ http.ShelfStore = (*shelves.Repository)(nil)
//	var _ tasks.Counter = (*shelves.Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
