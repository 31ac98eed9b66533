package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/icyxonyx/Basic-CRUD/internal/models"
	"github.com/icyxonyx/Basic-CRUD/internal/services"
)

// AdminController handles the admin-only user management endpoints.
type AdminController interface {
	// GetAllUsers lists every account, newest first
	GetAllUsers(c *gin.Context)
	// UpdateUser updates any account by id
	UpdateUser(c *gin.Context)
	// DeleteUser removes an account by id
	DeleteUser(c *gin.Context)
}

type adminController struct {
	accounts services.AccountService
}

// NewAdminController creates a new instance of AdminController.
func NewAdminController(accounts services.AccountService) AdminController {
	return &adminController{accounts: accounts}
}

// GetAllUsers godoc
// @Summary List all users
// @Description Return every account, newest first
// @Tags admin
// @Produce json
// @Success 200 {object} models.Response
// @Failure 403 {object} models.Response
// @Security BearerAuth
// @Router /api/admin/get-all-users [get]
func (ac *adminController) GetAllUsers(ctx *gin.Context) {
	users, err := ac.accounts.ListAll()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.Fail("Failed to retrieve users"))
		return
	}
	ctx.JSON(http.StatusOK, models.OK("Users fetched successfully", users))
}

// UpdateUser godoc
// @Summary Update any user
// @Description Update the account identified by userId
// @Tags admin
// @Accept json
// @Produce json
// @Param body body object true "userId, name?, email?, password?, isAdmin?"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.Response
// @Security BearerAuth
// @Router /api/admin/update-user [post]
func (ac *adminController) UpdateUser(ctx *gin.Context) {
	var req updateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		ctx.JSON(http.StatusBadRequest, models.Fail("userId is required"))
		return
	}

	update := services.ProfileUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	}

	if err := ac.accounts.UpdateProfile(req.UserID, update); err != nil {
		respondUpdateError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, models.OK("User updated successfully", nil))
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Permanently remove the account identified by userId
// @Tags admin
// @Accept json
// @Produce json
// @Param body body object true "userId"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.Response
// @Security BearerAuth
// @Router /api/admin/delete-user [post]
func (ac *adminController) DeleteUser(ctx *gin.Context) {
	var req struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.Fail("userId is required"))
		return
	}

	if err := ac.accounts.DeleteByID(req.UserID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, models.Fail("User not found"))
			return
		}
		ctx.JSON(http.StatusInternalServerError, models.Fail("Failed to delete user"))
		return
	}

	ctx.JSON(http.StatusOK, models.OK("User deleted successfully", nil))
}
