package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readtrack/internal/database"
)

// ID is the set of key widths used by the entities.
type ID interface {
	~uint8 | ~uint16 | ~uint64
}

// CRUDStore is the repository surface shared by every entity.
type CRUDStore[T any, P any, K ID] interface {
	FetchOne(s *database.Scope, id K) (*T, error)
	FetchAll(s *database.Scope) ([]T, error)
	Create(s *database.Scope, patch P) (*T, error)
	Update(s *database.Scope, id K, patch P) (*T, error)
	Delete(s *database.Scope, id K) (int64, error)
}

// resource serves list/get/create/update/delete for one entity. Each request
// runs in its own scope, committed when the handler succeeds.
type resource[T any, P any, K ID] struct {
	name  string
	bits  int
	db    Transactor
	store CRUDStore[T, P, K]
}

func newResource[T any, P any, K ID](name string, bits int, db Transactor, store CRUDStore[T, P, K]) resource[T, P, K] {
	return resource[T, P, K]{name: name, bits: bits, db: db, store: store}
}

func (r resource[T, P, K]) register(group *gin.RouterGroup) {
	group.GET("", r.List)
	group.POST("", r.Create)
	group.GET("/:id", r.Get)
	group.PATCH("/:id", r.Update)
	group.DELETE("/:id", r.Delete)
}

func (r resource[T, P, K]) id(c *gin.Context, param string) (K, bool) {
	id, ok := parseIDParam(c, param, r.bits)
	return K(id), ok
}

// List returns every row ordered by id
// GET /api/<resource>
func (r resource[T, P, K]) List(c *gin.Context) {
	var rows []T
	err := r.db.InTx(c.Request.Context(), func(s *database.Scope) (err error) {
		rows, err = r.store.FetchAll(s)
		return err
	})
	if err != nil {
		respondStoreError(c, err, r.name)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Get returns one row
// GET /api/<resource>/:id
func (r resource[T, P, K]) Get(c *gin.Context) {
	id, ok := r.id(c, "id")
	if !ok {
		return
	}

	var row *T
	err := r.db.InTx(c.Request.Context(), func(s *database.Scope) (err error) {
		row, err = r.store.FetchOne(s, id)
		return err
	})
	if err != nil {
		respondStoreError(c, err, r.name)
		return
	}
	c.JSON(http.StatusOK, row)
}

// Create stores a new row from a JSON patch
// POST /api/<resource>
func (r resource[T, P, K]) Create(c *gin.Context) {
	var patch P
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, err, r.name)
		return
	}

	var row *T
	err := r.db.InTx(c.Request.Context(), func(s *database.Scope) (err error) {
		row, err = r.store.Create(s, patch)
		return err
	})
	if err != nil {
		respondStoreError(c, err, r.name)
		return
	}
	respondCreated(c, row)
}

// Update merges a JSON patch onto a row. Absent fields keep their value and
// null clears a nullable field.
// PATCH /api/<resource>/:id
func (r resource[T, P, K]) Update(c *gin.Context) {
	id, ok := r.id(c, "id")
	if !ok {
		return
	}

	var patch P
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, err, r.name)
		return
	}

	var row *T
	err := r.db.InTx(c.Request.Context(), func(s *database.Scope) (err error) {
		row, err = r.store.Update(s, id, patch)
		return err
	})
	if err != nil {
		respondStoreError(c, err, r.name)
		return
	}
	c.JSON(http.StatusOK, row)
}

// Delete removes a row; deleting a missing one reports zero rows
// DELETE /api/<resource>/:id
func (r resource[T, P, K]) Delete(c *gin.Context) {
	id, ok := r.id(c, "id")
	if !ok {
		return
	}

	var deleted int64
	err := r.db.InTx(c.Request.Context(), func(s *database.Scope) (err error) {
		deleted, err = r.store.Delete(s, id)
		return err
	})
	if err != nil {
		respondStoreError(c, err, r.name)
		return
	}
	c.JSON(http.StatusOK, DeleteResponse{Deleted: deleted})
}
