// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strconv"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for post documents.
//
// GetByID takes the raw route parameter and distinguishes a malformed
// identifier (models.ErrInvalidPostID) from a missing record
// (models.ErrPostNotFound); callers decide how to surface each.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, rawID string) (*models.Post, error)
	ListByDateDesc(ctx context.Context) ([]*models.Post, error)
	Save(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, post *models.Post) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// ParsePostID validates the textual form of a post identifier.
func ParsePostID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.ErrInvalidPostID
	}
	return uint(id), nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, rawID string) (*models.Post, error) {
	id, err := ParsePostID(rawID)
	if err != nil {
		return nil, err
	}

	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrPostNotFound
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) ListByDateDesc(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.WithContext(ctx).Order("date DESC").Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Save persists the full document state, embedded sequences included.
func (r *postRepository) Save(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Delete(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
