// Package billing содержит чистую календарную арифметику повторяющихся
// месячных платежей: переход на следующий месяц с учётом коротких месяцев
// и високосных лет. День оплаты клиента при этом никогда не меняется —
// в короткий месяц дата лишь прижимается к последнему дню.
package billing

import "time"

// NextDueDate возвращает дату следующего платежа: следующий календарный
// месяц от current (декабрь переходит в январь следующего года), день —
// min(billingDay, последний день целевого месяца). Клиент с днём оплаты 31
// платит 30 апреля и 28/29 февраля, а в мае снова 31-го.
// Функция тотальна для корректных календарных входов и не возвращает ошибок.
func NextDueDate(current time.Time, billingDay int) time.Time {
	year, month := current.Year(), int(current.Month())+1
	if month > 12 {
		month = 1
		year++
	}

	day := billingDay
	if last := LastDay(year, month); day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, current.Location())
}

// LastDay возвращает последний день месяца month (1..12) года year.
func LastDay(year, month int) int {
	switch month {
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 31
	}
}

// IsLeapYear сообщает, является ли год високосным: делится на 4,
// но не на 100, либо делится на 400.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysBetween возвращает количество полных суток от a до b,
// отрицательное, если b раньше a. Время суток игнорируется.
func DaysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
