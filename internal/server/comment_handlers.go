package server

import (
	"time"

	"ripple/internal/models"
	"ripple/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateComment handles POST /api/posts/comment/:id
func (s *Server) CreateComment(c *fiber.Ctx) error {
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
		validation.MaxLen("text", 1000, "Text must be at most 1000 characters"),
	); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	post, err := s.postRepo.GetByID(ctx, c.Params("id"))
	if err != nil {
		return respondPostLookupError(c, err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return respondServerError(c, err)
	}

	comment := models.Comment{
		ID:     uuid.NewString(),
		User:   userID,
		Text:   req.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
		Date:   time.Now().UTC(),
	}
	post.Comments = append([]models.Comment{comment}, post.Comments...)

	if err := s.postRepo.Save(ctx, post); err != nil {
		return respondServerError(c, err)
	}

	return c.JSON(post.Comments)
}

// DeleteComment handles DELETE /api/posts/comment/:id/:comment_id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	post, err := s.postRepo.GetByID(ctx, c.Params("id"))
	if err != nil {
		return respondPostLookupError(c, err)
	}

	comment := post.FindComment(c.Params("comment_id"))
	if comment == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Comment"))
	}

	// The ownership check is against the comment's author, not the post's.
	if comment.User != userID {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("User not authorized"))
	}

	post.RemoveCommentByAuthor(userID)

	if err := s.postRepo.Save(ctx, post); err != nil {
		return respondServerError(c, err)
	}

	return c.JSON(post.Comments)
}
