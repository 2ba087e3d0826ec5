package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/periferia/periferia-social/internal/crypto"
	"github.com/periferia/periferia-social/internal/model"
)

// defaultSeedPassword is the shared password for the seeded demo accounts.
const defaultSeedPassword = "Periferia123!"

type seedUser struct {
	user  model.User
	posts []model.Post
}

var seedUsers = []seedUser{
	{
		user: model.User{
			ID:        "c35c21f4-6790-4f66-a282-5ce3561c6920",
			Email:     "ana.romero@periferia.it",
			Username:  "aromero",
			Alias:     "anar",
			FirstName: "Ana",
			LastName:  "Romero",
			BirthDate: time.Date(1995, 3, 21, 0, 0, 0, 0, time.UTC),
		},
		posts: []model.Post{
			{
				ID:      "a0d258c7-d471-4c7e-8828-1bdea5076a5f",
				Message: "¡Hola Periferia! Emocionada de estrenar nuestra red social interna ✨",
			},
		},
	},
	{
		user: model.User{
			ID:        "84a08381-3a58-4b3c-8d62-16ec3e6762d4",
			Email:     "carlos.mendez@periferia.it",
			Username:  "cmendez",
			Alias:     "carlitos",
			FirstName: "Carlos",
			LastName:  "Méndez",
			BirthDate: time.Date(1992, 8, 14, 0, 0, 0, 0, time.UTC),
		},
		posts: []model.Post{
			{
				ID:      "f12be7ed-01ea-4594-951f-530d6ea09147",
				Message: "¿Quién se apunta a una sesión de pair programming esta tarde?",
			},
		},
	},
	{
		user: model.User{
			ID:        "5d7b3f54-6cd0-498b-9c59-089e35d3a1d7",
			Email:     "laura.castillo@periferia.it",
			Username:  "lcastillo",
			Alias:     "lauca",
			FirstName: "Laura",
			LastName:  "Castillo",
			BirthDate: time.Date(1998, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		posts: []model.Post{
			{
				ID:      "aaed0ef1-0a40-4a4a-a68b-0d08a93fd0e3",
				Message: "Tip del día: documenta antes de desplegar 🚀",
			},
		},
	},
}

var seedLikes = []model.Like{
	{PostID: "f12be7ed-01ea-4594-951f-530d6ea09147", UserID: "c35c21f4-6790-4f66-a282-5ce3561c6920"},
	{PostID: "aaed0ef1-0a40-4a4a-a68b-0d08a93fd0e3", UserID: "84a08381-3a58-4b3c-8d62-16ec3e6762d4"},
}

// Seed populates the demo accounts, posts and likes. It is a no-op when any
// user rows already exist, so restarting the server never duplicates data.
// The password hash is computed at seed time; all demo accounts share the
// same password.
func Seed(ctx context.Context, db *sql.DB) error {
	users := NewUserRepository(db)
	posts := NewPostRepository(db)

	count, err := users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := crypto.HashPassword(defaultSeedPassword)
	if err != nil {
		return err
	}

	for _, s := range seedUsers {
		u := s.user
		u.PasswordHash = hash
		if err := users.Create(ctx, &u); err != nil {
			return err
		}

		for _, p := range s.posts {
			p.AuthorID = u.ID
			if err := posts.Create(ctx, &p); err != nil {
				return err
			}
		}
	}

	for _, l := range seedLikes {
		if err := posts.AddLike(ctx, l.PostID, l.UserID); err != nil {
			return err
		}
	}

	slog.Info("seeded demo data", "users", len(seedUsers))
	return nil
}
