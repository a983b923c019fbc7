package server

import (
	"ripple/internal/models"
	"ripple/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs := validation.Apply(
		map[string]string{"text": req.Text},
		validation.NotEmpty("text", "Text is required"),
		validation.MaxLen("text", 5000, "Text must be at most 5000 characters"),
	); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	// Snapshot the author's profile onto the post. The copies are not kept
	// in sync with later profile edits.
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return respondServerError(c, err)
	}

	post := &models.Post{
		Text:     req.Text,
		Name:     user.Name,
		Avatar:   user.Avatar,
		UserID:   userID,
		Likes:    []models.Reaction{},
		Dislikes: []models.Reaction{},
		Comments: []models.Comment{},
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return respondServerError(c, err)
	}

	return c.JSON(post)
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postRepo.ListByDateDesc(c.Context())
	if err != nil {
		return respondServerError(c, err)
	}

	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.postRepo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondPostLookupError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	post, err := s.postRepo.GetByID(ctx, c.Params("id"))
	if err != nil {
		return respondPostLookupError(c, err)
	}

	// Only the owner may delete; ownership never changes after creation.
	if post.UserID != userID {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("User not authorized"))
	}

	if err := s.postRepo.Delete(ctx, post); err != nil {
		return respondServerError(c, err)
	}

	return c.JSON(fiber.Map{"msg": "Post removed"})
}

// LikePost handles PUT /api/posts/like/:id
func (s *Server) LikePost(c *fiber.Ctx) error {
	return s.addReaction(c, likesOf, "Post already liked")
}

// UnlikePost handles PUT /api/posts/unlike/:id
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	return s.removeReaction(c, likesOf, "Post has not yet been liked")
}

// DislikePost handles PUT /api/posts/dislike/:id
func (s *Server) DislikePost(c *fiber.Ctx) error {
	return s.addReaction(c, dislikesOf, "Post already disliked")
}

// UndislikePost handles PUT /api/posts/undislike/:id
func (s *Server) UndislikePost(c *fiber.Ctx) error {
	return s.removeReaction(c, dislikesOf, "Post has not yet been disliked")
}

func likesOf(p *models.Post) *[]models.Reaction    { return &p.Likes }
func dislikesOf(p *models.Post) *[]models.Reaction { return &p.Dislikes }

// addReaction prepends the caller to the selected reaction sequence.
// A second attempt by the same user is a conflict, not a toggle. The likes
// and dislikes sequences are independent: no cross-check keeps a user out
// of both at once.
func (s *Server) addReaction(c *fiber.Ctx, pick func(*models.Post) *[]models.Reaction, conflictMsg string) error {
	ctx := c.Context()
	userID := currentUserID(c)

	post, err := s.postRepo.GetByID(ctx, c.Params("id"))
	if err != nil {
		return respondPostLookupError(c, err)
	}

	entries := pick(post)
	if models.HasReaction(*entries, userID) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewConflictError(conflictMsg))
	}
	*entries = models.PushReaction(*entries, userID)

	if err := s.postRepo.Save(ctx, post); err != nil {
		return respondServerError(c, err)
	}

	return c.JSON(*entries)
}

// removeReaction deletes the caller's entry from the selected sequence.
// Removing an entry that is not there is a conflict.
func (s *Server) removeReaction(c *fiber.Ctx, pick func(*models.Post) *[]models.Reaction, conflictMsg string) error {
	ctx := c.Context()
	userID := currentUserID(c)

	post, err := s.postRepo.GetByID(ctx, c.Params("id"))
	if err != nil {
		return respondPostLookupError(c, err)
	}

	entries := pick(post)
	if !models.HasReaction(*entries, userID) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewConflictError(conflictMsg))
	}
	*entries = models.RemoveReaction(*entries, userID)

	if err := s.postRepo.Save(ctx, post); err != nil {
		return respondServerError(c, err)
	}

	return c.JSON(*entries)
}
