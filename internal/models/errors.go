package models

import (
	"errors"
	"fmt"
)

// Ошибки уровня домена. Сервисы возвращают их обёрнутыми через
// fmt.Errorf("%s: %w", op, err), проверять следует errors.Is/As.
var (
	// ErrSubscriberNotFound — клиент с таким ID не существует.
	ErrSubscriberNotFound = errors.New("subscriber not found")
	// ErrPaymentNotFound — платёж не существует либо у клиента нет открытого цикла.
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrConcurrentModification — статус платежа изменил другой процесс
	// между чтением и записью; вызывающий решает, повторять ли операцию.
	ErrConcurrentModification = errors.New("payment modified concurrently")
	// ErrMissingBillingDay — у клиента не задан день оплаты; генератор
	// следующего цикла переходит на день последнего платежа.
	ErrMissingBillingDay = errors.New("subscriber has no billing day")
	// ErrUnpaidCurrentPayment — следующий цикл выпускается только после
	// оплаты текущего платежа.
	ErrUnpaidCurrentPayment = errors.New("current payment is not paid")
)

// InvalidTransitionError — запрошен недопустимый переход статуса платежа.
// Содержит контекст для решения на стороне вызывающего: повторить,
// применить административную правку или отказаться.
type InvalidTransitionError struct {
	PaymentID int
	From      Status
	To        Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition for payment %d: %s -> %s", e.PaymentID, e.From, e.To)
}
