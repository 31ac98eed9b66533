package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/icyxonyx/Basic-CRUD/internal/models"
	"github.com/icyxonyx/Basic-CRUD/internal/services"
)

// AuthController handles the public registration and login endpoints.
type AuthController struct {
	accounts services.AccountService
}

// NewAuthController creates a new instance of AuthController.
func NewAuthController(accounts services.AccountService) *AuthController {
	return &AuthController{accounts: accounts}
}

// Register godoc
// @Summary Register a new user
// @Description Create an account with name, email and password
// @Tags users
// @Accept json
// @Produce json
// @Param body body object true "name, email, password"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.Response
// @Failure 409 {object} models.Response
// @Router /api/users/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Name, email and password are required"))
		return
	}

	user, err := ac.accounts.Register(req.Name, req.Email, req.Password)
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, models.Fail("User already exists"))
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, models.Fail(err.Error()))
	case err != nil:
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to create user"))
	default:
		c.JSON(http.StatusCreated, models.OK("User created successfully", gin.H{"id": user.ID}))
	}
}

// Login godoc
// @Summary Log in
// @Description Exchange email and password for a bearer token
// @Tags users
// @Accept json
// @Produce json
// @Param body body object true "email, password"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.Response
// @Router /api/users/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Email and password are required"))
		return
	}

	token, err := ac.accounts.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, models.Fail("Invalid email or password"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to log in"))
		return
	}

	c.JSON(http.StatusOK, models.OK("User logged in successfully", token))
}
