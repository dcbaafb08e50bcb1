package client

import (
	"context"
	"net/http"
	"net/url"

	"tender-crm/internal/dto"
	"tender-crm/internal/entities"
)

// CustomerClient — клиент ресурса /api/customers. Ключ записи — код
// контрагента.
type CustomerClient struct {
	res resource[dto.Customer]
}

// NewCustomerClient: httpClient может быть nil, тогда используется
// http.DefaultClient.
func NewCustomerClient(baseURL string, httpClient *http.Client) *CustomerClient {
	return &CustomerClient{res: newResource[dto.Customer](baseURL, "/api/customers", httpClient)}
}

func (c *CustomerClient) FetchAll(ctx context.Context) ([]entities.Customer, error) {
	records, err := c.res.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	customers := make([]entities.Customer, 0, len(records))
	for _, rec := range records {
		customers = append(customers, dto.CustomerToEntity(rec))
	}
	return customers, nil
}

func (c *CustomerClient) FetchOne(ctx context.Context, code string) (entities.Customer, error) {
	rec, err := c.res.fetchOne(ctx, url.PathEscape(code))
	if err != nil {
		return entities.Customer{}, err
	}
	return dto.CustomerToEntity(rec), nil
}

func (c *CustomerClient) Create(ctx context.Context, customer entities.Customer) error {
	return c.res.create(ctx, dto.CustomerFromEntity(customer))
}

func (c *CustomerClient) Update(ctx context.Context, code string, customer entities.Customer) error {
	return c.res.update(ctx, url.PathEscape(code), dto.CustomerFromEntity(customer))
}

func (c *CustomerClient) Remove(ctx context.Context, code string) error {
	return c.res.remove(ctx, url.PathEscape(code))
}
