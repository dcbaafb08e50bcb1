// Package browse — состояние экранов списка и формы. Каждый экран
// единолично владеет своими данными: список — загруженным набором
// записей, форма — редактируемой записью и картой ошибок. Общего
// изменяемого состояния между экранами нет.
package browse

import (
	"context"
	"slices"

	"tender-crm/internal/client"
	"tender-crm/internal/entities"
	"tender-crm/internal/query"
)

// CustomerList владеет набором контрагентов и параметрами представления.
type CustomerList struct {
	client  *client.CustomerClient
	records []entities.Customer

	Query string
	Scope string
	Sort  string
}

func NewCustomerList(c *client.CustomerClient) *CustomerList {
	return &CustomerList{
		client: c,
		Scope:  query.ScopeAll,
		Sort:   query.CustomerSortNameAsc,
	}
}

// Load перечитывает весь набор. Отказ переводит список в пустое состояние.
func (l *CustomerList) Load(ctx context.Context) error {
	records, err := l.client.FetchAll(ctx)
	if err != nil {
		l.records = nil
		return err
	}
	l.records = records
	return nil
}

// View пересчитывает представление от полного набора; сам набор не
// изменяется.
func (l *CustomerList) View() []entities.Customer {
	return query.CustomerView(l.records, l.Query, l.Scope, l.Sort)
}

// Delete удаляет запись на сервере и, при подтверждённом успехе, из
// локального набора без перечитывания. Неудачное удаление оставляет
// набор нетронутым.
func (l *CustomerList) Delete(ctx context.Context, code string) error {
	if err := l.client.Remove(ctx, code); err != nil {
		return err
	}
	l.records = slices.DeleteFunc(l.records, func(c entities.Customer) bool {
		return c.Code == code
	})
	return nil
}

// LotList владеет набором лотов и параметрами представления.
type LotList struct {
	client  *client.LotClient
	records []entities.Lot

	Query string
	Scope string
	Sort  string
}

func NewLotList(c *client.LotClient) *LotList {
	return &LotList{
		client: c,
		Scope:  query.ScopeAll,
		Sort:   query.LotSortNameAsc,
	}
}

func (l *LotList) Load(ctx context.Context) error {
	records, err := l.client.FetchAll(ctx)
	if err != nil {
		l.records = nil
		return err
	}
	l.records = records
	return nil
}

func (l *LotList) View() []entities.Lot {
	return query.LotView(l.records, l.Query, l.Scope, l.Sort)
}

func (l *LotList) Delete(ctx context.Context, id int64) error {
	if err := l.client.Remove(ctx, id); err != nil {
		return err
	}
	l.records = slices.DeleteFunc(l.records, func(lot entities.Lot) bool {
		return lot.ID != nil && *lot.ID == id
	})
	return nil
}
