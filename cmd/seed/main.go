// Команда seed наполняет каталог демонстрационными курсами и создает
// тестовых пользователей. Запускается отдельно от основного сервиса.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/magabrotheeeer/course-subscription/internal/app_errors"
	"github.com/magabrotheeeer/course-subscription/internal/config"
	"github.com/magabrotheeeer/course-subscription/internal/lib/password"
	"github.com/magabrotheeeer/course-subscription/internal/lib/sl"
	"github.com/magabrotheeeer/course-subscription/internal/migrations"
	"github.com/magabrotheeeer/course-subscription/internal/models"
	"github.com/magabrotheeeer/course-subscription/internal/storage/repository"
)

var seedUsers = []struct {
	Email    string
	Password string
	Name     string
}{
	{Email: "john@example.com", Password: "password123", Name: "John Doe"},
	{Email: "jane@example.com", Password: "password123", Name: "Jane Smith"},
	{Email: "admin@example.com", Password: "admin123", Name: "Admin"},
}

var seedCourses = []models.Course{
	{
		Title:       "Introduction to React",
		Description: "Learn the fundamentals of React including components, props, state, and hooks. Build your first React application from scratch.",
		Price:       49.99,
		Image:       "https://images.unsplash.com/photo-1633356122544-f134324a6cee?w=800",
	},
	{
		Title:       "Advanced JavaScript",
		Description: "Master advanced JavaScript concepts including closures, promises, async/await, and design patterns.",
		Price:       79.99,
		Image:       "https://images.unsplash.com/photo-1579468118864-1b9ea3c0db4a?w=800",
	},
	{
		Title:       "Node.js Backend Development",
		Description: "Build scalable backend applications with Node.js, Express, and MongoDB. Learn RESTful API design and authentication.",
		Price:       99.99,
		Image:       "https://images.unsplash.com/photo-1558494949-ef010cbdcc31?w=800",
	},
	{
		Title:       "Web Development Basics",
		Description: "A comprehensive introduction to HTML, CSS, and JavaScript for beginners. Start your web development journey here.",
		Price:       0,
		Image:       "https://images.unsplash.com/photo-1461749280684-dccba630e2f6?w=800",
	},
	{
		Title:       "Full Stack Development",
		Description: "Complete full-stack development course covering frontend, backend, databases, and deployment strategies.",
		Price:       149.99,
		Image:       "https://images.unsplash.com/photo-1498050108023-c5249f4df085?w=800",
	},
	{
		Title:       "Python for Beginners",
		Description: "Learn Python programming from scratch. Perfect for beginners who want to start their programming journey.",
		Price:       0,
		Image:       "https://images.unsplash.com/photo-1526379095098-d400fd0bf935?w=800",
	},
}

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx := context.Background()

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to connect to storage", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		_ = db.DB.Close()
	}()

	if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		logger.Error("failed to run migrations", sl.Err(err))
		os.Exit(1)
	}

	for _, u := range seedUsers {
		hash, err := password.GetHash(u.Password)
		if err != nil {
			logger.Error("failed to hash password", sl.Err(err))
			os.Exit(1)
		}
		_, err = db.CreateUser(ctx, models.User{
			Email:        u.Email,
			Name:         u.Name,
			PasswordHash: hash,
		})
		if errors.Is(err, app_errors.ErrUserExists) {
			logger.Info("user already seeded", slog.String("email", u.Email))
			continue
		}
		if err != nil {
			logger.Error("failed to seed user", sl.Err(err))
			os.Exit(1)
		}
		logger.Info("seeded user", slog.String("email", u.Email))
	}

	if err := db.DeleteAllCourses(ctx); err != nil {
		logger.Error("failed to clear catalog", sl.Err(err))
		os.Exit(1)
	}
	for _, c := range seedCourses {
		created, err := db.CreateCourse(ctx, c)
		if err != nil {
			logger.Error("failed to seed course", sl.Err(err))
			os.Exit(1)
		}
		logger.Info("seeded course",
			slog.String("id", created.ID),
			slog.String("title", created.Title),
			slog.Float64("price", created.Price))
	}

	logger.Info("seeding completed",
		slog.Int("users", len(seedUsers)),
		slog.Int("courses", len(seedCourses)),
		slog.String("promo_code", cfg.Promo.Code))
}
