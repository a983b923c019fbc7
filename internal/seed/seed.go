// Package seed populates the database with development data.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Run creates numUsers fake accounts and numPosts posts authored by them,
// with a sprinkling of reactions and comments. All seeded accounts share the
// password "password123".
func Run(db *gorm.DB, numUsers, numPosts int) error {
	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user := &models.User{
			Name:     gofakeit.Name(),
			Email:    fmt.Sprintf("%d_%s", i, gofakeit.Email()),
			Password: string(hash),
			Avatar:   gofakeit.ImageURL(200, 200),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users", len(users))

	for i := 0; i < numPosts; i++ {
		author := users[rand.Intn(len(users))]
		post := &models.Post{
			Text:     gofakeit.Sentence(12),
			Name:     author.Name,
			Avatar:   author.Avatar,
			UserID:   author.ID,
			Likes:    []models.Reaction{},
			Dislikes: []models.Reaction{},
			Comments: []models.Comment{},
		}

		for _, u := range pickUsers(users, rand.Intn(4)) {
			post.Likes = models.PushReaction(post.Likes, u.ID)
		}
		for _, u := range pickUsers(users, rand.Intn(2)) {
			commenter := u
			post.Comments = append([]models.Comment{{
				ID:     gofakeit.UUID(),
				User:   commenter.ID,
				Text:   gofakeit.Sentence(8),
				Name:   commenter.Name,
				Avatar: commenter.Avatar,
				Date:   gofakeit.Date(),
			}}, post.Comments...)
		}

		if err := postRepo.Create(ctx, post); err != nil {
			return fmt.Errorf("create post: %w", err)
		}
	}
	log.Printf("Seeded %d posts", numPosts)

	return nil
}

// pickUsers returns up to n distinct users.
func pickUsers(users []*models.User, n int) []*models.User {
	if n > len(users) {
		n = len(users)
	}
	perm := rand.Perm(len(users))
	picked := make([]*models.User, 0, n)
	for _, i := range perm[:n] {
		picked = append(picked, users[i])
	}
	return picked
}
