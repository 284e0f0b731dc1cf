// Package models содержит доменные структуры биллинга тренера:
// платежи, клиентов и вспомогательные типы для JSON-запросов.
package models

import "time"

// Status описывает статус платежа за расчётный месяц.
type Status string

const (
	// StatusPending — платёж ожидает оплаты.
	StatusPending Status = "pending"
	// StatusPaid — платёж оплачен, paid_date заполнена.
	StatusPaid Status = "paid"
	// StatusOverdue — срок оплаты прошёл, платёж просрочен.
	StatusOverdue Status = "overdue"
)

// Valid сообщает, является ли значение одним из трёх известных статусов.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// Payment представляет один расчётный месяц клиента.
// Инвариант: Status == StatusPaid тогда и только тогда, когда PaidDate != nil.
// Сумма фиксируется при создании платежа и не перечитывается из тарифа клиента.
type Payment struct {
	ID           int        `json:"id"`
	SubscriberID int        `json:"subscriber_id"`
	DueDate      time.Time  `json:"due_date"`            // Дата, до которой нужно оплатить
	PaidDate     *time.Time `json:"paid_date,omitempty"` // Дата фактической оплаты, nil пока не оплачен
	Amount       float64    `json:"amount"`              // Снимок месячного тарифа на момент создания
	Status       Status     `json:"status"`
}

// PaymentNotice — платёж вместе с контактами клиента, элемент
// результата сканирования для отправки напоминаний.
type PaymentNotice struct {
	PaymentID      int       `json:"payment_id"`
	SubscriberID   int       `json:"subscriber_id"`
	SubscriberName string    `json:"subscriber_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	DueDate        time.Time `json:"due_date"`
	Amount         float64   `json:"amount"`
	DaysOverdue    int       `json:"days_overdue,omitempty"`
	Kind           string    `json:"kind"` // upcoming, due или overdue
}

// ScanReport — результат одного прохода сканера по открытым платежам.
type ScanReport struct {
	DueSoon  []*PaymentNotice `json:"due_in_3_days"`
	DueToday []*PaymentNotice `json:"due_today"`
	Overdue  []*PaymentNotice `json:"overdue"`
	Promoted int              `json:"promoted"` // Сколько платежей переведено в overdue этим проходом
}
