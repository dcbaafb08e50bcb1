package query

import (
	"cmp"
	"strconv"

	"tender-crm/internal/entities"
)

// Ключи сортировки списка лотов.
const (
	LotSortNameAsc   = "name-asc"
	LotSortNameDesc  = "name-desc"
	LotSortPriceAsc  = "price-asc"
	LotSortPriceDesc = "price-desc"
	LotSortIDAsc     = "id-asc"
	LotSortIDDesc    = "id-desc"
)

// LotFields — поля, участвующие в поиске. Отсутствующие id и цена
// приводятся к пустой строке, числа — к каноническому десятичному виду.
func LotFields() []Field[entities.Lot] {
	return []Field[entities.Lot]{
		{Name: "id", String: func(l entities.Lot) string { return formatID(l.ID) }},
		{Name: "lotName", String: func(l entities.Lot) string { return l.Name }},
		{Name: "customerCode", String: func(l entities.Lot) string { return l.CustomerCode }},
		{Name: "price", String: func(l entities.Lot) string { return formatPrice(l.Price) }},
		{Name: "currencyCode", String: func(l entities.Lot) string { return l.CurrencyCode }},
		{Name: "ndsRate", String: func(l entities.Lot) string { return l.NDSRate }},
		{Name: "placeDelivery", String: func(l entities.Lot) string { return l.PlaceDelivery }},
		{Name: "dateDelivery", String: func(l entities.Lot) string { return l.DateDelivery }},
	}
}

// LotView — представление списка лотов для заданных запроса, области
// поиска и ключа сортировки.
func LotView(records []entities.Lot, q, scope, sortKey string) []entities.Lot {
	return View(records, q, scope, LotFields(), lotCmp(sortKey))
}

// Числовые ключи сортируют по значению; отсутствующее значение
// упорядочивается как ноль.
func lotCmp(key string) func(a, b entities.Lot) int {
	coll := newCollator()
	switch key {
	case LotSortNameAsc:
		return func(a, b entities.Lot) int { return coll.CompareString(a.Name, b.Name) }
	case LotSortNameDesc:
		return func(a, b entities.Lot) int { return coll.CompareString(b.Name, a.Name) }
	case LotSortPriceAsc:
		return func(a, b entities.Lot) int { return cmp.Compare(priceOrZero(a), priceOrZero(b)) }
	case LotSortPriceDesc:
		return func(a, b entities.Lot) int { return cmp.Compare(priceOrZero(b), priceOrZero(a)) }
	case LotSortIDAsc:
		return func(a, b entities.Lot) int { return cmp.Compare(idOrZero(a), idOrZero(b)) }
	case LotSortIDDesc:
		return func(a, b entities.Lot) int { return cmp.Compare(idOrZero(b), idOrZero(a)) }
	default:
		return nil
	}
}

func formatID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

func formatPrice(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func priceOrZero(l entities.Lot) float64 {
	if l.Price == nil {
		return 0
	}
	return *l.Price
}

func idOrZero(l entities.Lot) int64 {
	if l.ID == nil {
		return 0
	}
	return *l.ID
}
