package validation

import (
	"strings"

	"tender-crm/internal/entities"
)

// Mode различает создание и редактирование записи. При редактировании
// код контрагента неизменяем и не участвует в проверке «не пуст после trim».
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Ключи карты ошибок совпадают с именами полей ресурса.
const (
	FieldCustomerINN   = "customerInn"
	FieldCustomerKPP   = "customerKpp"
	FieldCustomerEmail = "customerEmail"
)

// CustomerErrors прогоняет полевые валидаторы контрагента и собирает
// непустые результаты в карту «поле → текст ошибки».
func CustomerErrors(c entities.Customer) map[string]string {
	errs := make(map[string]string)
	if msg := INN(c.INN); msg != "" {
		errs[FieldCustomerINN] = msg
	}
	if msg := KPP(c.KPP); msg != "" {
		errs[FieldCustomerKPP] = msg
	}
	if msg := Email(c.Email); msg != "" {
		errs[FieldCustomerEmail] = msg
	}
	return errs
}

// CustomerSaveable решает, можно ли отправлять запись на сохранение:
// карта ошибок пуста, обязательные поля (код, название, юр-адрес)
// заполнены, а при создании код не состоит из одних пробелов.
func CustomerSaveable(c entities.Customer, mode Mode) bool {
	if len(CustomerErrors(c)) > 0 {
		return false
	}
	if c.Code == "" || c.Name == "" || c.LegalAddress == "" {
		return false
	}
	if mode == ModeCreate && strings.TrimSpace(c.Code) == "" {
		return false
	}
	return true
}
