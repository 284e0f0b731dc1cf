package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/trainer-billing/internal/models"
)

// CreatePayment вставляет новый платёж и возвращает его ID.
func (s *Storage) CreatePayment(ctx context.Context, payment models.Payment) (int, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (subscriber_id, due_date, paid_date, amount, status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		payment.SubscriberID, payment.DueDate, payment.PaidDate, payment.Amount, payment.Status).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadPayment возвращает платёж по его ID.
func (s *Storage) ReadPayment(ctx context.Context, id int) (*models.Payment, error) {
	const op = "storage.ReadPayment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, subscriber_id, due_date, paid_date, amount, status
			  FROM payments WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Payment
	if err := row.Scan(&result.ID, &result.SubscriberID, &result.DueDate, &result.PaidDate,
		&result.Amount, &result.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// GetCurrentPayment возвращает последний по сроку платёж абонента.
func (s *Storage) GetCurrentPayment(ctx context.Context, subscriberID int) (*models.Payment, error) {
	const op = "storage.GetCurrentPayment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, subscriber_id, due_date, paid_date, amount, status
			  FROM payments
			  WHERE subscriber_id = $1
			  ORDER BY due_date DESC, id DESC
			  LIMIT 1`
	row := s.DB.QueryRowContext(ctx, query, subscriberID)

	var result models.Payment
	if err := row.Scan(&result.ID, &result.SubscriberID, &result.DueDate, &result.PaidDate,
		&result.Amount, &result.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListPaymentHistory возвращает платежи абонента от новых к старым.
func (s *Storage) ListPaymentHistory(ctx context.Context, subscriberID, limit, offset int) ([]*models.Payment, error) {
	const op = "storage.ListPaymentHistory"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, subscriber_id, due_date, paid_date, amount, status
			  FROM payments
			  WHERE subscriber_id = $1
			  ORDER BY due_date DESC, id DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, subscriberID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.Payment
	for rows.Next() {
		var payment models.Payment
		if err := rows.Scan(&payment.ID, &payment.SubscriberID, &payment.DueDate, &payment.PaidDate,
			&payment.Amount, &payment.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdatePaymentStatus переводит платёж из статуса from в статус to
// одним оператором. Возвращает количество изменённых строк: ноль
// означает, что платёж отсутствует или его статус уже изменился.
func (s *Storage) UpdatePaymentStatus(ctx context.Context, id int, from, to models.Status, paidDate *time.Time) (int, error) {
	const op = "storage.UpdatePaymentStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payments SET status = $1, paid_date = $2 WHERE id = $3 AND status = $4`
	result, err := s.DB.ExecContext(ctx, query, to, paidDate, id, from)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// OverridePaymentStatus устанавливает платежу произвольный статус
// без проверки текущего. Возвращает количество изменённых строк.
func (s *Storage) OverridePaymentStatus(ctx context.Context, id int, to models.Status, paidDate *time.Time) (int, error) {
	const op = "storage.OverridePaymentStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payments SET status = $1, paid_date = $2 WHERE id = $3`
	result, err := s.DB.ExecContext(ctx, query, to, paidDate, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListPendingPayments возвращает ожидающие оплаты платежи со сроком
// не позднее horizon вместе с контактами абонентов.
func (s *Storage) ListPendingPayments(ctx context.Context, horizon time.Time) ([]*models.PaymentNotice, error) {
	const op = "storage.ListPendingPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT p.id, p.subscriber_id, sub.name, sub.email, sub.phone, p.due_date, p.amount
			  FROM payments p
			  JOIN subscribers sub ON sub.id = p.subscriber_id
			  WHERE p.status = 'pending' AND p.due_date <= $1
			  ORDER BY p.due_date, p.id`
	rows, err := s.DB.QueryContext(ctx, query, horizon)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.PaymentNotice
	for rows.Next() {
		var notice models.PaymentNotice
		if err := rows.Scan(&notice.PaymentID, &notice.SubscriberID, &notice.SubscriberName,
			&notice.Email, &notice.Phone, &notice.DueDate, &notice.Amount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &notice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
