package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())

	health := NewHealthController(cfg.Health, cfg.Version, cfg.HealthChecks...)
	authors := NewAuthorsController(cfg.Database, cfg.Authors)
	publishers := NewPublishersController(cfg.Database, cfg.Publishers, cfg.Books)
	books := NewBooksController(cfg.Database, cfg.Books)
	users := NewUsersController(cfg.Database, cfg.Users)
	var queue TaskEnqueuer
	if cfg.Queue != nil {
		queue = cfg.Queue
	}
	progress := NewProgressController(cfg.Database, cfg.Progress, queue)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")

	// Authors
	authors.register(api.Group("/authors"))
	api.GET("/authors/:id/books", authors.GetBooks)

	// Publishers
	publishers.register(api.Group("/publishers"))
	api.GET("/publishers/:id/books", publishers.GetBooks)

	// Books and their authors
	books.register(api.Group("/books"))
	api.GET("/books/:id/authors", books.GetAuthors)
	api.PUT("/books/:id/authors/:author_id", books.LinkAuthor)
	api.DELETE("/books/:id/authors/:author_id", books.UnlinkAuthor)

	// Users
	users.register(api.Group("/users"))
	api.PUT("/users/:id", users.Adopt)

	// Reading progress
	progress.register(api.Group("/progress"))
	api.POST("/progress/events", progress.RecordEvent)
	api.GET("/users/:id/progress", progress.ForUser)
	api.GET("/users/:id/progress/:book_id", progress.GetFor)
	api.PATCH("/users/:id/progress/:book_id", progress.UpdateFor)
	api.DELETE("/users/:id/progress/:book_id", progress.DeleteFor)

	// Task management endpoints
	if cfg.Queue != nil {
		tasksController := NewTasksController(cfg.Queue)
		api.GET("/tasks/types", tasksController.ListTaskTypes)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
		api.POST("/tasks/:type/run", tasksController.RunTask)
	}

	return router
}
