package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCommentApp(t *testing.T, post *models.Post, userID uint, user *models.User) *fiber.App {
	t.Helper()
	mockPosts := new(MockPostRepository)
	mockUsers := new(MockUserRepository)
	s := &Server{postRepo: mockPosts, userRepo: mockUsers}

	app := fiber.New()
	asUser(app, userID)
	app.Post("/posts/comment/:id", s.CreateComment)
	app.Delete("/posts/comment/:id/:comment_id", s.DeleteComment)

	mockPosts.On("GetByID", mock.Anything, "1").Return(post, nil)
	mockPosts.On("Save", mock.Anything, post).Return(nil)
	if user != nil {
		mockUsers.On("GetByID", mock.Anything, userID).Return(user, nil)
	}
	return app
}

func postComment(t *testing.T, app *fiber.App, path, text string) *http.Response {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"text": text})
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreateComment(t *testing.T) {
	t.Run("Prepends Comment With Author Snapshot", func(t *testing.T) {
		post := &models.Post{ID: 1, UserID: 1, Comments: []models.Comment{
			{ID: "old", User: 1, Text: "first!"},
		}}
		app := newCommentApp(t, post, 3, &models.User{ID: 3, Name: "Cara", Avatar: "http://a/cara.png"})

		resp := postComment(t, app, "/posts/comment/1", "nice")
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		comments := decodeJSON[[]models.Comment](t, resp)
		require.Len(t, comments, 2)
		assert.Equal(t, "nice", comments[0].Text)
		assert.Equal(t, uint(3), comments[0].User)
		assert.Equal(t, "Cara", comments[0].Name)
		assert.NotEmpty(t, comments[0].ID)
		assert.Equal(t, "old", comments[1].ID)
	})

	t.Run("Empty Text", func(t *testing.T) {
		post := &models.Post{ID: 1, UserID: 1}
		app := newCommentApp(t, post, 3, nil)

		resp := postComment(t, app, "/posts/comment/1", "")
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeJSON[fieldErrorBody](t, resp)
		require.Len(t, body.Errors, 1)
		assert.Equal(t, "text", body.Errors[0].Param)
	})

	t.Run("Text Too Long", func(t *testing.T) {
		post := &models.Post{ID: 1, UserID: 1}
		app := newCommentApp(t, post, 3, nil)

		resp := postComment(t, app, "/posts/comment/1", strings.Repeat("a", 1001))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeJSON[fieldErrorBody](t, resp)
		require.Len(t, body.Errors, 1)
		assert.Equal(t, "Text must be at most 1000 characters", body.Errors[0].Msg)
		assert.Equal(t, "text", body.Errors[0].Param)
		assert.Empty(t, post.Comments)
	})

	t.Run("Missing Post", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		s := &Server{postRepo: mockPosts, userRepo: new(MockUserRepository)}

		app := fiber.New()
		asUser(app, 3)
		app.Post("/posts/comment/:id", s.CreateComment)
		mockPosts.On("GetByID", mock.Anything, "9").Return(nil, models.ErrPostNotFound)

		resp := postComment(t, app, "/posts/comment/9", "nice")
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteComment(t *testing.T) {
	now := time.Now().UTC()

	t.Run("Author Removes Own Comment", func(t *testing.T) {
		post := &models.Post{ID: 1, UserID: 1, Comments: []models.Comment{
			{ID: "c1", User: 3, Text: "mine", Date: now},
			{ID: "c2", User: 4, Text: "theirs", Date: now.Add(-time.Minute)},
		}}
		app := newCommentApp(t, post, 3, nil)

		req := httptest.NewRequest(http.MethodDelete, "/posts/comment/1/c1", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		comments := decodeJSON[[]models.Comment](t, resp)
		require.Len(t, comments, 1)
		assert.Equal(t, "c2", comments[0].ID)
	})

	t.Run("Non-Author Is Rejected", func(t *testing.T) {
		post := &models.Post{ID: 1, UserID: 1, Comments: []models.Comment{
			{ID: "c1", User: 3, Text: "not yours"},
		}}
		app := newCommentApp(t, post, 4, nil)

		req := httptest.NewRequest(http.MethodDelete, "/posts/comment/1/c1", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		// the comment is still present
		require.Len(t, post.Comments, 1)
		assert.Equal(t, "c1", post.Comments[0].ID)
	})

	t.Run("Unknown Comment ID", func(t *testing.T) {
		post := &models.Post{ID: 1, UserID: 1, Comments: []models.Comment{}}
		app := newCommentApp(t, post, 3, nil)

		req := httptest.NewRequest(http.MethodDelete, "/posts/comment/1/ghost", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		body := decodeJSON[models.ErrorResponse](t, resp)
		assert.Equal(t, "Comment not found", body.Error)
	})
}

// Removal scans by the caller's user id, not the addressed comment id: when
// an author has several comments on one post, the first (newest) one is
// removed no matter which id the request named. This pins down longstanding
// behavior rather than endorsing it.
func TestDeleteComment_RemovesFirstCommentByAuthor(t *testing.T) {
	now := time.Now().UTC()
	post := &models.Post{ID: 1, UserID: 1, Comments: []models.Comment{
		{ID: "newest", User: 3, Text: "second thoughts", Date: now},
		{ID: "older", User: 3, Text: "original take", Date: now.Add(-time.Hour)},
	}}
	app := newCommentApp(t, post, 3, nil)

	// Address the older comment explicitly.
	req := httptest.NewRequest(http.MethodDelete, "/posts/comment/1/older", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The newest comment by the same author is the one that went away.
	comments := decodeJSON[[]models.Comment](t, resp)
	require.Len(t, comments, 1)
	assert.Equal(t, "older", comments[0].ID)
}
