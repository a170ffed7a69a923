// Command seed resets the demo accounts. It wipes the users table and
// recreates the admin and test user inside a single transaction, so a
// half-finished run leaves nothing behind.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/dshop/shop/pkg/auth"
	"github.com/dshop/shop/pkg/config"
	pgrepo "github.com/dshop/shop/pkg/repository/postgres"
	"github.com/dshop/shop/pkg/storage/postgres"
)

const demoPassword = "Password123!"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required for seeding")
	}

	ctx := context.Background()
	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("postgres connect: %v", err)
	}
	defer pool.Close()

	// Repo construction ensures the users schema before we touch it.
	if _, err := pgrepo.NewUserRepository(pool); err != nil {
		log.Fatalf("init user repo: %v", err)
	}

	hasher := auth.NewBcryptHasher()
	passwordHash, err := hasher.Hash(demoPassword)
	if err != nil {
		log.Fatalf("hash demo password: %v", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("begin tx: %v", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM users`); err != nil {
		log.Fatalf("clear users: %v", err)
	}

	accounts := []auth.User{
		{
			ID:           uuid.New(),
			Email:        "admin@example.com",
			Name:         "Admin",
			PasswordHash: passwordHash,
			Role:         auth.RoleAdmin,
			CreatedAt:    time.Now().UTC(),
		},
		{
			ID:           uuid.New(),
			Email:        "user@example.com",
			Name:         "Test User",
			PasswordHash: passwordHash,
			Role:         auth.RoleUser,
			CreatedAt:    time.Now().UTC(),
		},
	}
	for _, u := range accounts {
		_, err := tx.Exec(ctx, `
			INSERT INTO users (id, email, name, password_hash, role, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, u.ID, u.Email, u.Name, u.PasswordHash, string(u.Role), u.CreatedAt)
		if err != nil {
			log.Fatalf("insert %s: %v", u.Email, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("commit: %v", err)
	}

	log.Printf("seeded %d accounts (password %q)", len(accounts), demoPassword)
}
