package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/alumnihub/alumnihub/internal/app/models"
	"github.com/alumnihub/alumnihub/internal/app/repositories"
	"github.com/alumnihub/alumnihub/internal/config"
	"github.com/alumnihub/alumnihub/internal/pkg/auth"
)

// CreateDefaultData ensures the default admin account exists and,
// when enabled, inserts a small set of sample content for development.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	repos := repositories.NewRepositories(dbPool)

	adminID, err := ensureAdmin(ctx, repos, cfg, lgr)
	if err != nil {
		return err
	}

	if cfg.Seed.SampleData {
		if err := createSampleData(ctx, repos, adminID, lgr); err != nil {
			return err
		}
	}

	return nil
}

// ensureAdmin creates the default admin account if no account owns the
// configured admin email yet
func ensureAdmin(ctx context.Context, repos *repositories.Repositories, cfg *config.Config, lgr zerolog.Logger) (int64, error) {
	existing, err := repos.UserRepository.GetByEmail(ctx, cfg.Seed.AdminEmail)
	if err != nil {
		return 0, fmt.Errorf("failed to check for admin account: %w", err)
	}
	if existing != nil {
		return existing.ID, nil
	}

	hash, err := auth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return 0, fmt.Errorf("failed to hash admin password: %w", err)
	}

	adminID, err := repos.UserRepository.Create(ctx, &models.User{
		Username:  "admin",
		Email:     cfg.Seed.AdminEmail,
		Password:  hash,
		FirstName: "Admin",
		LastName:  "User",
		Role:      models.RoleAdmin,
		Status:    models.StatusActive,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create admin account: %w", err)
	}

	lgr.Info().Str("email", cfg.Seed.AdminEmail).Msg("Default admin account created")
	return adminID, nil
}

// createSampleData inserts a couple of alumni, a story and an upcoming
// event so a fresh install has something to show
func createSampleData(ctx context.Context, repos *repositories.Repositories, adminID int64, lgr zerolog.Logger) error {
	existing, err := repos.UserRepository.GetByEmail(ctx, "jane.doe@example.com")
	if err != nil {
		return err
	}
	if existing != nil {
		return nil // Sample data already present
	}

	hash, err := auth.HashPassword("password123")
	if err != nil {
		return err
	}

	sampleUsers := []*models.User{
		{
			Username:  "janedoe",
			Email:     "jane.doe@example.com",
			Password:  hash,
			FirstName: "Jane",
			LastName:  "Doe",
			Role:      models.RoleAlumni,
			Status:    models.StatusActive,
		},
		{
			Username:  "johnsmith",
			Email:     "john.smith@example.com",
			Password:  hash,
			FirstName: "John",
			LastName:  "Smith",
			Role:      models.RoleAlumni,
			Status:    models.StatusActive,
		},
	}

	userIDs := make([]int64, 0, len(sampleUsers))
	for _, user := range sampleUsers {
		userID, err := repos.UserRepository.Create(ctx, user)
		if err != nil {
			return fmt.Errorf("failed to create sample user %s: %w", user.Username, err)
		}
		if _, err := repos.AlumniRepository.CreateProfile(ctx, userID); err != nil {
			return fmt.Errorf("failed to create sample profile: %w", err)
		}
		userIDs = append(userIDs, userID)
	}

	storyID, err := repos.StoryRepository.Create(ctx, &models.Story{
		Title:       "From Campus to Startup Founder",
		Description: "Three years after graduation I co-founded a company with two classmates. Here is what the journey looked like.",
		AuthorID:    userIDs[0],
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to create sample story: %w", err)
	}

	if _, err := repos.StoryRepository.AddLike(ctx, storyID, userIDs[1]); err != nil {
		return err
	}

	_, err = repos.EventRepository.Create(ctx, &models.Event{
		Title:       "Annual Alumni Reunion",
		Description: "An evening of networking, food and campus tours. All graduating classes welcome.",
		Date:        time.Now().AddDate(0, 1, 0),
		Location:    "Main Campus Auditorium",
		AuthorID:    adminID,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to create sample event: %w", err)
	}

	lgr.Info().Msg("Sample data created")
	return nil
}
