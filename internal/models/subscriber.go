package models

import "time"

// Subscriber представляет клиента тренера с фиксированным днём оплаты.
// BillingDay задаётся один раз при регистрации из дня первой даты оплаты
// и дальше не выводится заново из дат платежей. Для записей, созданных
// до появления поля, BillingDay может быть nil — тогда при генерации
// следующего платежа используется день последнего оплаченного платежа.
type Subscriber struct {
	ID            int       `json:"id"`
	TrainerUID    string    `json:"trainer_uid"` // Владелец-тренер
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	StartDate     time.Time `json:"start_date"`
	BillingDay    *int      `json:"billing_day,omitempty"` // День месяца 1..31, nil только у легаси-записей
	MonthlyAmount float64   `json:"monthly_amount"` // Текущий месячный тариф
}

// DummySubscriber используется для приёма данных из JSON-запроса на
// регистрацию клиента, прежде чем конвертировать их в Subscriber.
// Даты приходят строками в формате 2006-01-02.
type DummySubscriber struct {
	Name          string  `json:"name" validate:"required"`
	Email         string  `json:"email" validate:"required,email"`
	Phone         string  `json:"phone" validate:"required"`
	FirstDueDate  string  `json:"first_due_date" validate:"required"`        // Фиксирует billing_day
	MonthlyAmount float64 `json:"monthly_amount" validate:"required,gt=0"`   // Тариф (>0)
	InitialStatus string  `json:"initial_status" validate:"required,oneof=pending paid overdue"`
}

// DummySubscriberUpdate — JSON-запрос на обновление контактов и тарифа.
// Поля дня оплаты здесь нет намеренно: его меняет только отдельная
// операция переноса дня оплаты.
type DummySubscriberUpdate struct {
	Name          string  `json:"name" validate:"required"`
	Email         string  `json:"email" validate:"required,email"`
	Phone         string  `json:"phone" validate:"required"`
	MonthlyAmount float64 `json:"monthly_amount" validate:"required,gt=0"`
}
