package gateway

import (
	"errors"
	"net/http"

	"github.com/frizzly/api/pkg/models"
	"github.com/frizzly/api/pkg/repository"
	"github.com/gin-gonic/gin"
)

// getUser godoc
// @Summary  Fetch a user profile
// @Tags     users
// @Produce  json
// @Param    id path string true "user id"
// @Success  200 {object} map[string]models.User
// @Failure  404 {object} map[string]string
// @Failure  500 {object} map[string]string
// @Router   /users/{id} [get]
func (g *Gateway) getUser(c *gin.Context) {
	user, err := g.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fail(c, notFoundError("User not found", err))
			return
		}
		fail(c, storeError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// createUser godoc
// @Summary  Create or overwrite a user profile
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    user body models.CreateUserRequest true "profile"
// @Success  201 {object} map[string]bool
// @Failure  400 {object} map[string]string
// @Failure  500 {object} map[string]string
// @Router   /users [post]
func (g *Gateway) createUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := bindBody(c, &req); err != nil {
		fail(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		fail(c, validationError(err))
		return
	}

	if err := g.users.Create(c.Request.Context(), req.User()); err != nil {
		fail(c, storeError(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true})
}
