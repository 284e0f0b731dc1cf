package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/trainer-billing/internal/models"
)

// EnrollSubscriber вставляет нового абонента вместе с его первым
// платежом в одной транзакции и возвращает ID абонента. При ошибке
// на любой из вставок в базе не остаётся ни абонента, ни платежа.
func (s *Storage) EnrollSubscriber(ctx context.Context, sub models.Subscriber, firstPayment models.Payment) (int, error) {
	const op = "storage.EnrollSubscriber"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `INSERT INTO subscribers (trainer_uid, name, email, phone, start_date,
				  billing_day, monthly_amount)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int
	err = tx.QueryRowContext(ctx, query,
		sub.TrainerUID, sub.Name, sub.Email, sub.Phone, sub.StartDate,
		sub.BillingDay, sub.MonthlyAmount).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO payments (subscriber_id, due_date, paid_date, amount, status)
			  VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.ExecContext(ctx, query, newID,
		firstPayment.DueDate, firstPayment.PaidDate, firstPayment.Amount, firstPayment.Status); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadSubscriber возвращает данные абонента по его ID.
func (s *Storage) ReadSubscriber(ctx context.Context, id int) (*models.Subscriber, error) {
	const op = "storage.ReadSubscriber"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, trainer_uid, name, email, phone, start_date, billing_day, monthly_amount
			  FROM subscribers WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Subscriber
	if err := row.Scan(&result.ID, &result.TrainerUID, &result.Name, &result.Email, &result.Phone,
		&result.StartDate, &result.BillingDay, &result.MonthlyAmount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrSubscriberNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListSubscribers возвращает список абонентов тренера с пагинацией.
func (s *Storage) ListSubscribers(ctx context.Context, trainerUID string, limit, offset int) ([]*models.Subscriber, error) {
	const op = "storage.ListSubscribers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, trainer_uid, name, email, phone, start_date, billing_day, monthly_amount
			  FROM subscribers
			  WHERE trainer_uid = $1
			  ORDER BY id
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, trainerUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.Subscriber
	for rows.Next() {
		var sub models.Subscriber
		if err := rows.Scan(&sub.ID, &sub.TrainerUID, &sub.Name, &sub.Email, &sub.Phone,
			&sub.StartDate, &sub.BillingDay, &sub.MonthlyAmount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateSubscriber обновляет контактные данные и сумму абонента
// и возвращает количество изменённых строк. День списания этим
// методом не меняется.
func (s *Storage) UpdateSubscriber(ctx context.Context, id int, name, email, phone string, monthlyAmount float64) (int, error) {
	const op = "storage.UpdateSubscriber"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscribers
			  SET name = $1, email = $2, phone = $3, monthly_amount = $4
			  WHERE id = $5`
	result, err := s.DB.ExecContext(ctx, query, name, email, phone, monthlyAmount, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdateBillingDay задаёт абоненту новый день списания
// и возвращает количество изменённых строк.
func (s *Storage) UpdateBillingDay(ctx context.Context, id, billingDay int) (int, error) {
	const op = "storage.UpdateBillingDay"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscribers SET billing_day = $1 WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, billingDay, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
