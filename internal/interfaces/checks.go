package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/readtrack/internal/database"
	"github.com/mrlokans/readtrack/internal/database/authors"
	"github.com/mrlokans/readtrack/internal/database/books"
	"github.com/mrlokans/readtrack/internal/database/progress"
	"github.com/mrlokans/readtrack/internal/database/publishers"
	"github.com/mrlokans/readtrack/internal/database/users"
	"github.com/mrlokans/readtrack/internal/http"
	"github.com/mrlokans/readtrack/internal/scheduler"
	"github.com/mrlokans/readtrack/internal/seed"
	"github.com/mrlokans/readtrack/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// Entity stores served over HTTP
var _ http.AuthorStore = (*authors.Repository)(nil)
var _ http.PublisherStore = (*publishers.Repository)(nil)
var _ http.PublisherBooksLister = (*books.Repository)(nil)
var _ http.BookStore = (*books.Repository)(nil)
var _ http.UserStore = (*users.Repository)(nil)
var _ http.ProgressStore = (*progress.Repository)(nil)

// Scope runners
var _ http.Transactor = (*database.Database)(nil)
var _ tasks.Transactor = (*database.Database)(nil)
var _ seed.Transactor = (*database.Database)(nil)
var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// Background Work
// =============================================================================

// Row counters for the library stats task
var _ tasks.Counter = (*authors.Repository)(nil)
var _ tasks.Counter = (*publishers.Repository)(nil)
var _ tasks.Counter = (*books.Repository)(nil)
var _ tasks.Counter = (*users.Repository)(nil)
var _ tasks.Counter = (*progress.Repository)(nil)

// Queue clients
var _ http.TaskQueue = (*tasks.Client)(nil)
var _ scheduler.Enqueuer = (*tasks.Client)(nil)
var _ http.Pinger = (*tasks.Client)(nil)
