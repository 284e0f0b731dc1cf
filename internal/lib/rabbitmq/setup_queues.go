package rabbitmq

// Exchange — обменник всех напоминаний об оплате.
const Exchange = "notifications"

// Ключи маршрутизации соответствуют трём корзинам сканера.
const (
	KeyUpcoming = "upcoming" // Оплата через 3 дня
	KeyDue      = "due"      // Оплата сегодня
	KeyOverdue  = "overdue"  // Оплата просрочена
)

// QueueConfig описывает очередь и её ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// NotificationQueues возвращает набор очередей напоминаний об оплате.
func NotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "payment_upcoming", RoutingKey: KeyUpcoming},
		{QueueName: "payment_due", RoutingKey: KeyDue},
		{QueueName: "payment_overdue", RoutingKey: KeyOverdue},
	}
}
