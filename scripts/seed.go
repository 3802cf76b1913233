// Seeds the demo account and sample published sessions. Idempotent: does
// nothing when any sessions already exist.
//
// Usage: DATABASE_URL=postgres://... go run scripts/seed.go
package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/stillpoint/wellness-server-go/internal/client"
	"github.com/stillpoint/wellness-server-go/internal/config"
	"github.com/stillpoint/wellness-server-go/internal/database"
	"github.com/stillpoint/wellness-server-go/internal/model"
	"github.com/stillpoint/wellness-server-go/internal/repository"
)

const (
	demoEmail    = "wellness@team.com"
	demoPassword = "defaultpassword123"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	userRepo := repository.NewUserRepository(db.DB)
	sessionRepo := repository.NewSessionRepository(db.DB)

	count, err := sessionRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count sessions: %w", err)
	}
	if count > 0 {
		fmt.Println("Sessions already exist, nothing to do")
		return nil
	}

	owner, err := userRepo.FindByEmail(ctx, demoEmail)
	if err != nil {
		return fmt.Errorf("find demo user: %w", err)
	}
	if owner == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), config.BcryptCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		owner, err = userRepo.Create(ctx, model.CreateUserParams{
			Email:        demoEmail,
			PasswordHash: string(hash),
		})
		if err != nil {
			return fmt.Errorf("create demo user: %w", err)
		}
		fmt.Printf("Created demo user %s\n", demoEmail)
	}

	for _, sample := range client.SampleSessions() {
		created, err := sessionRepo.Create(ctx, owner.ID, model.SaveSessionParams{
			Title:       sample.Title,
			Description: sample.Description,
			Tags:        sample.Tags,
			VideoURL:    sample.VideoURL,
			Thumbnail:   sample.Thumbnail,
			Duration:    sample.Duration,
			Status:      model.SessionStatusPublished,
		})
		if err != nil {
			return fmt.Errorf("create session %q: %w", sample.Title, err)
		}
		fmt.Printf("Created session %s (%s)\n", created.Title, created.ID)
	}

	fmt.Println("Seed complete")
	return nil
}
