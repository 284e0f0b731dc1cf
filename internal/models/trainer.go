package models

// Trainer представляет зарегистрированного тренера — владельца клиентов.
type Trainer struct {
	UID          string // Уникальный идентификатор
	Name         string
	Email        string // Электронная почта (уникальная)
	Username     string // Имя пользователя (уникальное)
	PasswordHash string // Хэш пароля
	Role         string // admin или trainer
}
