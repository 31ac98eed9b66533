package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/icyxonyx/Basic-CRUD/internal/auth"
	"github.com/icyxonyx/Basic-CRUD/internal/middleware"
	"github.com/icyxonyx/Basic-CRUD/internal/models"
	"github.com/icyxonyx/Basic-CRUD/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testAPI struct {
	router *gin.Engine
	users  services.UserService
	tokens *auth.TokenService
}

func setupAPI(t *testing.T) *testAPI {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	hasher := auth.NewBcryptHasher()
	tokens := auth.NewTokenService("test-jwt-secret-key-32-characters", time.Hour)
	users := services.NewUserService(db)
	accounts := services.NewAccountService(users, hasher, tokens)

	authCtl := NewAuthController(accounts)
	userCtl := NewUserController(accounts)
	adminCtl := NewAdminController(accounts)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	api := router.Group("/api")
	api.POST("/users/register", authCtl.Register)
	api.POST("/users/login", authCtl.Login)
	api.GET("/users/get-current-user", middleware.JWTAuth(tokens), userCtl.GetCurrentUser)
	api.POST("/profile/update-user", middleware.JWTAuth(tokens), userCtl.UpdateProfile)

	admin := api.Group("/admin")
	admin.Use(middleware.JWTAuth(tokens), middleware.RequireAdmin(users))
	admin.GET("/get-all-users", adminCtl.GetAllUsers)
	admin.POST("/update-user", adminCtl.UpdateUser)
	admin.POST("/delete-user", adminCtl.DeleteUser)

	return &testAPI{router: router, users: users, tokens: tokens}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, models.Response) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var resp models.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func (a *testAPI) register(t *testing.T, name, email, password string) {
	w, resp := a.do(t, "POST", "/api/users/register", "", gin.H{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.True(t, resp.Success)
}

func (a *testAPI) login(t *testing.T, email, password string) string {
	w, resp := a.do(t, "POST", "/api/users/login", "", gin.H{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)
	token, ok := resp.Data.(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func (a *testAPI) makeAdmin(t *testing.T, email string) {
	user, err := a.users.GetUserByEmail(email)
	require.NoError(t, err)
	require.NoError(t, a.users.UpdateUser(user.ID, map[string]any{"is_admin": true}))
}

func TestRegisterLoginFetchSelf(t *testing.T) {
	api := setupAPI(t)

	api.register(t, "Alice", "alice@x.com", "pass1234")
	token := api.login(t, "alice@x.com", "pass1234")

	w, resp := api.do(t, "GET", "/api/users/get-current-user", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "User fetched successfully", resp.Message)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Alice", data["name"])
	assert.Equal(t, "alice@x.com", data["email"])
	assert.NotContains(t, data, "password")
	assert.NotEmpty(t, data["id"])
}

func TestRegisterDuplicate(t *testing.T) {
	api := setupAPI(t)

	api.register(t, "Bob", "bob@x.com", "abcd")

	w, resp := api.do(t, "POST", "/api/users/register", "", gin.H{
		"name": "Bob", "email": "bob@x.com", "password": "abcd",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "User already exists", resp.Message)
}

func TestRegisterMissingFields(t *testing.T) {
	api := setupAPI(t)

	w, resp := api.do(t, "POST", "/api/users/register", "", gin.H{
		"email": "alice@x.com", "password": "pass1234",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)
}

func TestLoginFailuresLookIdentical(t *testing.T) {
	api := setupAPI(t)

	api.register(t, "Alice", "alice@x.com", "pass1234")

	wWrong, respWrong := api.do(t, "POST", "/api/users/login", "", gin.H{
		"email": "alice@x.com", "password": "wrongpass",
	})
	wUnknown, respUnknown := api.do(t, "POST", "/api/users/login", "", gin.H{
		"email": "nobody@x.com", "password": "pass1234",
	})

	assert.Equal(t, wWrong.Code, wUnknown.Code)
	assert.Equal(t, respWrong, respUnknown)
	assert.False(t, respWrong.Success)
}

func TestGetCurrentUserUnauthorized(t *testing.T) {
	api := setupAPI(t)

	w, resp := api.do(t, "GET", "/api/users/get-current-user", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, resp.Success)
}

func TestProfileUpdatePasswordRotation(t *testing.T) {
	api := setupAPI(t)

	api.register(t, "Alice", "alice@x.com", "oldpass")
	token := api.login(t, "alice@x.com", "oldpass")

	w, resp := api.do(t, "POST", "/api/profile/update-user", token, gin.H{
		"password": "newpass",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "User updated successfully", resp.Message)

	w, resp = api.do(t, "POST", "/api/users/login", "", gin.H{
		"email": "alice@x.com", "password": "oldpass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, resp.Success)

	api.login(t, "alice@x.com", "newpass")
}

func TestProfileUpdateTargetsTokenSubject(t *testing.T) {
	api := setupAPI(t)

	api.register(t, "Alice", "alice@x.com", "pass1234")
	api.register(t, "Bob", "bob@x.com", "pass1234")
	token := api.login(t, "alice@x.com", "pass1234")

	bob, err := api.users.GetUserByEmail("bob@x.com")
	require.NoError(t, err)

	// Alice tries to rename Bob through the profile route; her own record
	// changes instead.
	w, resp := api.do(t, "POST", "/api/profile/update-user", token, gin.H{
		"userId": bob.ID, "name": "Hacked",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)

	bobAfter, err := api.users.GetUserByID(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", bobAfter.Name)

	alice, err := api.users.GetUserByEmail("alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Hacked", alice.Name)
}

func TestProfileUpdateCannotGrantAdmin(t *testing.T) {
	api := setupAPI(t)

	api.register(t, "Alice", "alice@x.com", "pass1234")
	token := api.login(t, "alice@x.com", "pass1234")

	w, _ := api.do(t, "POST", "/api/profile/update-user", token, gin.H{
		"isAdmin": true, "name": "Alice",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	alice, err := api.users.GetUserByEmail("alice@x.com")
	require.NoError(t, err)
	assert.False(t, alice.IsAdmin)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	api := setupAPI(t)

	api.register(t, "Alice", "alice@x.com", "pass1234")
	token := api.login(t, "alice@x.com", "pass1234")

	w, resp := api.do(t, "GET", "/api/admin/get-all-users", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, resp.Success)
}

func TestAdminListUsers(t *testing.T) {
	api := setupAPI(t)

	api.register(t, "Alice", "alice@x.com", "pass1234")
	api.register(t, "Bob", "bob@x.com", "pass1234")
	api.makeAdmin(t, "alice@x.com")
	token := api.login(t, "alice@x.com", "pass1234")

	w, resp := api.do(t, "GET", "/api/admin/get-all-users", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "Users fetched successfully", resp.Message)

	list, ok := resp.Data.([]any)
	require.True(t, ok)
	require.Len(t, list, 2)
	for _, item := range list {
		record, ok := item.(map[string]any)
		require.True(t, ok)
		assert.NotContains(t, record, "password")
	}
}

func TestAdminDeleteUser(t *testing.T) {
	api := setupAPI(t)

	api.register(t, "Alice", "alice@x.com", "pass1234")
	api.register(t, "Bob", "bob@x.com", "pass1234")
	api.makeAdmin(t, "alice@x.com")
	token := api.login(t, "alice@x.com", "pass1234")

	bob, err := api.users.GetUserByEmail("bob@x.com")
	require.NoError(t, err)

	w, resp := api.do(t, "POST", "/api/admin/delete-user", token, gin.H{"userId": bob.ID})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "User deleted successfully", resp.Message)

	// Repeating the delete reports not found
	w, resp = api.do(t, "POST", "/api/admin/delete-user", token, gin.H{"userId": bob.ID})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "User not found", resp.Message)
}

func TestAdminUpdateUser(t *testing.T) {
	api := setupAPI(t)

	api.register(t, "Alice", "alice@x.com", "pass1234")
	api.register(t, "Bob", "bob@x.com", "pass1234")
	api.makeAdmin(t, "alice@x.com")
	token := api.login(t, "alice@x.com", "pass1234")

	bob, err := api.users.GetUserByEmail("bob@x.com")
	require.NoError(t, err)

	w, resp := api.do(t, "POST", "/api/admin/update-user", token, gin.H{
		"userId": bob.ID, "name": "Robert", "isAdmin": true,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)

	bobAfter, err := api.users.GetUserByID(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "Robert", bobAfter.Name)
	assert.True(t, bobAfter.IsAdmin)
	assert.Equal(t, bob.ID, bobAfter.ID)
}

func TestAdminUpdateUserRequiresUserID(t *testing.T) {
	api := setupAPI(t)

	api.register(t, "Alice", "alice@x.com", "pass1234")
	api.makeAdmin(t, "alice@x.com")
	token := api.login(t, "alice@x.com", "pass1234")

	w, resp := api.do(t, "POST", "/api/admin/update-user", token, gin.H{"name": "X"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)
}
