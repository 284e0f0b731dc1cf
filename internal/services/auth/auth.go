// Package auth содержит бизнес-логику регистрации и входа тренеров
// и проверки JWT-токенов.
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/trainer-billing/internal/lib/jwt"
	"github.com/magabrotheeeer/trainer-billing/internal/lib/password"
	"github.com/magabrotheeeer/trainer-billing/internal/models"
)

// Repository определяет методы хранилища, нужные аутентификации.
type Repository interface {
	// RegisterTrainer сохраняет нового тренера и возвращает его UID.
	RegisterTrainer(ctx context.Context, trainer models.Trainer) (string, error)
	// GetTrainerByUsername возвращает тренера по имени пользователя.
	GetTrainerByUsername(ctx context.Context, username string) (*models.Trainer, error)
}

// Service реализует регистрацию, вход и проверку токенов.
type Service struct {
	repo  Repository
	maker jwt.Maker
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, maker jwt.Maker, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		maker: maker,
		log:   log,
	}
}

// Register регистрирует нового тренера и возвращает его UID.
func (s *Service) Register(ctx context.Context, name, email, username, rawPassword string) (string, error) {
	const op = "auth.Register"

	passwordHash, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	trainer := models.Trainer{
		Name:         name,
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         "trainer",
	}
	uid, err := s.repo.RegisterTrainer(ctx, trainer)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("registered new trainer", slog.String("username", username))
	return uid, nil
}

// Login проверяет пароль тренера и возвращает JWT-токен.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (string, error) {
	const op = "auth.Login"

	trainer, err := s.repo.GetTrainerByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(trainer.PasswordHash, rawPassword); err != nil {
		return "", fmt.Errorf("%s: invalid credentials", op)
	}

	token, err := s.maker.GenerateToken(trainer.Username, trainer.Role, trainer.UID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("trainer logged in", slog.String("username", username))
	return token, nil
}

// ValidateToken проверяет токен и возвращает его полезную нагрузку.
func (s *Service) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	const op = "auth.ValidateToken"

	claims, err := s.maker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return claims, nil
}
