package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readtrack/internal/database"
	"github.com/mrlokans/readtrack/internal/entities"
)

// UserStore defines database operations for users.
type UserStore interface {
	CRUDStore[entities.User, entities.UserPatch, uint8]
	Adopt(s *database.Scope, id uint8, patch entities.UserPatch) (*entities.User, error)
}

type UsersController struct {
	resource[entities.User, entities.UserPatch, uint8]
	store UserStore
}

func NewUsersController(db Transactor, store UserStore) *UsersController {
	return &UsersController{
		resource: newResource[entities.User, entities.UserPatch, uint8]("user", 8, db, store),
		store:    store,
	}
}

// Adopt creates a user under the id given in the path
// PUT /api/users/:id
func (uc *UsersController) Adopt(c *gin.Context) {
	id, ok := uc.id(c, "id")
	if !ok {
		return
	}

	var patch entities.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, err, "user")
		return
	}

	var user *entities.User
	err := uc.db.InTx(c.Request.Context(), func(s *database.Scope) (err error) {
		user, err = uc.store.Adopt(s, id, patch)
		return err
	})
	if err != nil {
		respondStoreError(c, err, "user")
		return
	}
	respondCreated(c, user)
}
