package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/trainer-billing/internal/models"
)

// RegisterTrainer сохраняет нового тренера и возвращает его UID.
func (s *Storage) RegisterTrainer(ctx context.Context, trainer models.Trainer) (string, error) {
	const op = "storage.RegisterTrainer"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO trainers (name, email, username, password_hash, role)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING uid`
	var uid string
	err := s.DB.QueryRowContext(ctx, query,
		trainer.Name, trainer.Email, trainer.Username, trainer.PasswordHash, trainer.Role).Scan(&uid)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return uid, nil
}

// GetTrainerByUsername возвращает тренера по его имени пользователя.
func (s *Storage) GetTrainerByUsername(ctx context.Context, username string) (*models.Trainer, error) {
	const op = "storage.GetTrainerByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, email, username, password_hash, role
			  FROM trainers WHERE username = $1`
	row := s.DB.QueryRowContext(ctx, query, username)

	var result models.Trainer
	if err := row.Scan(&result.UID, &result.Name, &result.Email, &result.Username,
		&result.PasswordHash, &result.Role); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}
