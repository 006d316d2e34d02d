package http

// RouterConfig contains all dependencies needed to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database Transactor
	Health   Pinger

	// Extra dependencies reported by /health
	HealthChecks []Check

	// Entity stores
	Authors    AuthorStore
	Publishers PublisherStore
	Books      BookStore
	Users      UserStore
	Progress   ProgressStore

	// Task queue (optional)
	Queue TaskQueue

	// Application info
	Version string
}
