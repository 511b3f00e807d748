package server

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	app, _ := newTestApp(t)

	body := registerUser(t, app, "jlee", "jlee@state.edu")
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "jlee", user["username"])
	assert.Equal(t, "jlee@state.edu", user["email"])

	// The password hash must never appear in a response.
	_, exposed := user["password"]
	assert.False(t, exposed)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	app, _ := newTestApp(t)
	registerUser(t, app, "jlee", "jlee@state.edu")

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", fiber.Map{
		"username":   "jlee",
		"email":      "other@state.edu",
		"password":   "hunter22",
		"firstName":  "Jordan",
		"lastName":   "Lee",
		"university": "State University",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "CONFLICT", body["code"])
}

func TestRegister_Validation(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name    string
		payload fiber.Map
	}{
		{"missing username", fiber.Map{"email": "a@b.edu", "password": "hunter22", "firstName": "A", "lastName": "B", "university": "U"}},
		{"bad email", fiber.Map{"username": "someone", "email": "not-an-email", "password": "hunter22", "firstName": "A", "lastName": "B", "university": "U"}},
		{"short password", fiber.Map{"username": "someone", "email": "a@b.edu", "password": "abc", "firstName": "A", "lastName": "B", "university": "U"}},
		{"missing university", fiber.Map{"username": "someone", "email": "a@b.edu", "password": "hunter22", "firstName": "A", "lastName": "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", tt.payload)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "VALIDATION_ERROR", body["code"])
		})
	}
}

func TestLogin(t *testing.T) {
	app, _ := newTestApp(t)
	registerUser(t, app, "jlee", "jlee@state.edu")

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
		"username": "jlee",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "jlee", user["username"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	app, _ := newTestApp(t)
	registerUser(t, app, "jlee", "jlee@state.edu")

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "jlee", "wrong-password"},
		{"unknown user", "nobody", "hunter22"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
				"username": tt.username,
				"password": tt.password,
			})
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, "Invalid credentials", body["error"])
		})
	}
}
