package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/icyxonyx/Basic-CRUD/internal/middleware"
	"github.com/icyxonyx/Basic-CRUD/internal/models"
	"github.com/icyxonyx/Basic-CRUD/internal/services"
)

// updateUserRequest is shared by the profile and admin update endpoints.
// Pointer fields distinguish "absent" from "set to empty".
type updateUserRequest struct {
	UserID   string  `json:"userId"`
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	IsAdmin  *bool   `json:"isAdmin"`
}

// UserController handles the authenticated self-service endpoints.
type UserController struct {
	accounts services.AccountService
}

// NewUserController creates a new instance of UserController.
func NewUserController(accounts services.AccountService) *UserController {
	return &UserController{accounts: accounts}
}

// GetCurrentUser godoc
// @Summary Get the current user
// @Description Return the record of the authenticated caller
// @Tags users
// @Produce json
// @Success 200 {object} models.Response
// @Failure 401 {object} models.Response
// @Failure 404 {object} models.Response
// @Security BearerAuth
// @Router /api/users/get-current-user [get]
func (uc *UserController) GetCurrentUser(c *gin.Context) {
	id, ok := middleware.SubjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.Fail("User not authenticated"))
		return
	}

	user, err := uc.accounts.FetchSelf(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, models.Fail("User not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch user"))
		return
	}

	c.JSON(http.StatusOK, models.OK("User fetched successfully", user))
}

// UpdateProfile godoc
// @Summary Update own profile
// @Description Update name, email or password of the authenticated caller
// @Tags profile
// @Accept json
// @Produce json
// @Param body body object true "name?, email?, password?"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.Response
// @Failure 409 {object} models.Response
// @Security BearerAuth
// @Router /api/profile/update-user [post]
func (uc *UserController) UpdateProfile(c *gin.Context) {
	id, ok := middleware.SubjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.Fail("User not authenticated"))
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
		return
	}

	// The token subject always wins over any userId in the body, and the
	// admin flag cannot be changed through the profile route.
	update := services.ProfileUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}

	if err := uc.accounts.UpdateProfile(id, update); err != nil {
		respondUpdateError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK("User updated successfully", nil))
}

// respondUpdateError maps the shared update failure modes onto envelopes.
func respondUpdateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, models.Fail("User not found"))
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, models.Fail("Email already in use"))
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, models.Fail("Fields cannot be empty"))
	default:
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to update user"))
	}
}
