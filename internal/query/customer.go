package query

import "tender-crm/internal/entities"

// Ключи сортировки списка контрагентов.
const (
	CustomerSortNameAsc  = "name-asc"
	CustomerSortNameDesc = "name-desc"
	CustomerSortCodeAsc  = "code-asc"
	CustomerSortCodeDesc = "code-desc"
)

// CustomerFields — поля, участвующие в поиске, включая производную метку
// типа контрагента. Код головной организации в поиск не входит.
func CustomerFields() []Field[entities.Customer] {
	return []Field[entities.Customer]{
		{Name: "customerCode", String: func(c entities.Customer) string { return c.Code }},
		{Name: "customerName", String: func(c entities.Customer) string { return c.Name }},
		{Name: "customerInn", String: func(c entities.Customer) string { return c.INN }},
		{Name: "customerKpp", String: func(c entities.Customer) string { return c.KPP }},
		{Name: "customerLegalAddress", String: func(c entities.Customer) string { return c.LegalAddress }},
		{Name: "customerPostalAddress", String: func(c entities.Customer) string { return c.PostalAddress }},
		{Name: "customerEmail", String: func(c entities.Customer) string { return c.Email }},
		{Name: "type", String: func(c entities.Customer) string { return c.Classification.Label() }},
	}
}

// CustomerView — представление списка контрагентов для заданных
// запроса, области поиска и ключа сортировки.
func CustomerView(records []entities.Customer, q, scope, sortKey string) []entities.Customer {
	return View(records, q, scope, CustomerFields(), customerCmp(sortKey))
}

func customerCmp(key string) func(a, b entities.Customer) int {
	coll := newCollator()
	switch key {
	case CustomerSortNameAsc:
		return func(a, b entities.Customer) int { return coll.CompareString(a.Name, b.Name) }
	case CustomerSortNameDesc:
		return func(a, b entities.Customer) int { return coll.CompareString(b.Name, a.Name) }
	case CustomerSortCodeAsc:
		return func(a, b entities.Customer) int { return coll.CompareString(a.Code, b.Code) }
	case CustomerSortCodeDesc:
		return func(a, b entities.Customer) int { return coll.CompareString(b.Code, a.Code) }
	default:
		return nil
	}
}
