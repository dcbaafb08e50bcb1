package validation

import "tender-crm/internal/entities"

const (
	FieldLotPrice        = "price"
	FieldLotCurrency     = "currencyCode"
	FieldLotNDSRate      = "ndsRate"
	FieldLotDateDelivery = "dateDelivery"
)

// LotErrors прогоняет полевые валидаторы лота и собирает непустые
// результаты в карту «поле → текст ошибки».
func LotErrors(l entities.Lot) map[string]string {
	errs := make(map[string]string)
	if msg := Currency(l.CurrencyCode); msg != "" {
		errs[FieldLotCurrency] = msg
	}
	if msg := NDSRate(l.NDSRate); msg != "" {
		errs[FieldLotNDSRate] = msg
	}
	if msg := DeliveryDate(l.DateDelivery); msg != "" {
		errs[FieldLotDateDelivery] = msg
	}
	if msg := Price(l.Price); msg != "" {
		errs[FieldLotPrice] = msg
	}
	return errs
}

// LotSaveable: карта ошибок пуста и обязательные поля (название, код
// контрагента, валюта, ставка НДС, цена) заполнены. ID назначает сервер,
// поэтому режим создания/редактирования здесь роли не играет.
func LotSaveable(l entities.Lot) bool {
	if len(LotErrors(l)) > 0 {
		return false
	}
	if l.Name == "" || l.CustomerCode == "" || l.CurrencyCode == "" || l.NDSRate == "" {
		return false
	}
	return l.Price != nil
}
