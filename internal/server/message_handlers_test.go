package server

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sendMessage(t *testing.T, app *fiber.App, senderID, receiverID, content string) map[string]interface{} {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/messages/", fiber.Map{
		"senderId":   senderID,
		"receiverId": receiverID,
		"content":    content,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return body
}

func TestSendMessage(t *testing.T) {
	app, _ := newTestApp(t)
	a := userID(t, registerUser(t, app, "user_a", "a@state.edu"))
	b := userID(t, registerUser(t, app, "user_b", "b@state.edu"))

	body := sendMessage(t, app, a, b, "Is the textbook still available?")
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, a, body["senderId"])
	assert.Equal(t, b, body["receiverId"])
	assert.Equal(t, false, body["isRead"])
}

func TestSendMessage_Validation(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/messages/", fiber.Map{
		"senderId": "someone",
		"content":  "no receiver",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestGetConversation_Symmetric(t *testing.T) {
	app, _ := newTestApp(t)
	a := userID(t, registerUser(t, app, "user_a", "a@state.edu"))
	b := userID(t, registerUser(t, app, "user_b", "b@state.edu"))
	c := userID(t, registerUser(t, app, "user_c", "c@state.edu"))

	sendMessage(t, app, a, b, "hello")
	sendMessage(t, app, b, a, "hi back")
	sendMessage(t, app, a, c, "unrelated thread")

	resp, ab := doJSONList(t, app, http.MethodGet, "/api/messages/conversation/"+a+"/"+b)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, ab, 2)
	assert.Equal(t, "hello", ab[0]["content"])
	assert.Equal(t, "hi back", ab[1]["content"])

	// Same thread regardless of path order.
	resp, ba := doJSONList(t, app, http.MethodGet, "/api/messages/conversation/"+b+"/"+a)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, ab, ba)
}

func TestGetUserMessages(t *testing.T) {
	app, _ := newTestApp(t)
	a := userID(t, registerUser(t, app, "user_a", "a@state.edu"))
	b := userID(t, registerUser(t, app, "user_b", "b@state.edu"))

	sendMessage(t, app, a, b, "sent by a")
	sendMessage(t, app, b, a, "received by a")

	resp, inbox := doJSONList(t, app, http.MethodGet, "/api/users/"+a+"/messages")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, inbox, 2, "inbox covers both directions")
}

func TestMarkMessageRead(t *testing.T) {
	app, _ := newTestApp(t)
	a := userID(t, registerUser(t, app, "user_a", "a@state.edu"))
	b := userID(t, registerUser(t, app, "user_b", "b@state.edu"))
	id := sendMessage(t, app, a, b, "read me")["id"].(string)

	resp, body := doJSON(t, app, http.MethodPatch, "/api/messages/"+id+"/read", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Message marked as read", body["message"])

	resp, conv := doJSONList(t, app, http.MethodGet, "/api/messages/conversation/"+a+"/"+b)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, conv, 1)
	assert.Equal(t, true, conv[0]["isRead"])
}

func TestMarkMessageRead_NotFound(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPatch, "/api/messages/missing-id/read", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
}
