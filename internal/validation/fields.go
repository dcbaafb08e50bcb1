// Package validation содержит полевые валидаторы и правила допустимости
// сохранения записей. Валидаторы чистые: значение поля отображается в текст
// ошибки, пустая строка означает «ошибки нет». Пустое значение никогда не
// считается ошибкой на этом уровне — обязательность полей проверяется
// отдельно (см. customer.go, lot.go).
package validation

import (
	"regexp"
	"strings"
	"time"

	"tender-crm/internal/entities"
)

var (
	reINN   = regexp.MustCompile(`^\d{10}(\d{2})?$`)
	reKPP   = regexp.MustCompile(`^\d{9}$`)
	reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	reDate  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}$`)
)

// INN проверяет ИНН: ровно 10 или 12 цифр.
func INN(v string) string {
	if v != "" && !reINN.MatchString(v) {
		return "ИНН: 10 или 12 цифр"
	}
	return ""
}

// KPP проверяет КПП: ровно 9 цифр.
func KPP(v string) string {
	if v != "" && !reKPP.MatchString(v) {
		return "КПП: 9 цифр"
	}
	return ""
}

// Email проверяет форму local@domain.tld: есть @, точка в доменной части,
// без пробельных символов.
func Email(v string) string {
	if v != "" && !reEmail.MatchString(v) {
		return "Некорректный e-mail"
	}
	return ""
}

// Currency проверяет код валюты без учёта регистра.
func Currency(v string) string {
	if v == "" {
		return ""
	}
	for _, code := range entities.CurrencyCodes {
		if strings.EqualFold(v, code) {
			return ""
		}
	}
	return "Только RUB, USD или EUR"
}

// NDSRate сверяет ставку с точным написанием: в отличие от валюты
// регистр здесь значим.
func NDSRate(v string) string {
	if v == "" {
		return ""
	}
	for _, rate := range entities.NDSRates {
		if v == rate {
			return ""
		}
	}
	return "Только «Без НДС», 18% или 20%"
}

// DeliveryDate проверяет и форму «YYYY-MM-DD HH:mm», и календарную
// корректность: 2024-02-30 отклоняется даже при совпадении с шаблоном.
func DeliveryDate(v string) string {
	if v == "" {
		return ""
	}
	if !reDate.MatchString(v) {
		return "Формат: YYYY-MM-DD HH:mm"
	}
	if _, err := time.Parse(entities.DeliveryDateLayout, v); err != nil {
		return "Некорректная дата"
	}
	return ""
}

// Price: заданная цена должна быть строго больше нуля. Отсутствие цены
// само по себе не ошибка — это вопрос обязательности поля.
func Price(p *float64) string {
	if p != nil && *p <= 0 {
		return "Цена должна быть > 0"
	}
	return ""
}
