package client

import (
	"context"
	"net/http"
	"strconv"

	"tender-crm/internal/dto"
	"tender-crm/internal/entities"
)

// LotClient — клиент ресурса /api/lots. Ключ записи — серверный id.
type LotClient struct {
	res resource[dto.Lot]
}

func NewLotClient(baseURL string, httpClient *http.Client) *LotClient {
	return &LotClient{res: newResource[dto.Lot](baseURL, "/api/lots", httpClient)}
}

func (c *LotClient) FetchAll(ctx context.Context) ([]entities.Lot, error) {
	records, err := c.res.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	lots := make([]entities.Lot, 0, len(records))
	for _, rec := range records {
		lots = append(lots, dto.LotToEntity(rec))
	}
	return lots, nil
}

func (c *LotClient) FetchOne(ctx context.Context, id int64) (entities.Lot, error) {
	rec, err := c.res.fetchOne(ctx, strconv.FormatInt(id, 10))
	if err != nil {
		return entities.Lot{}, err
	}
	return dto.LotToEntity(rec), nil
}

// Create отправляет лот без id: идентификатор назначает сервер.
func (c *LotClient) Create(ctx context.Context, lot entities.Lot) error {
	payload := dto.LotFromEntity(lot)
	payload.ID = nil
	return c.res.create(ctx, payload)
}

func (c *LotClient) Update(ctx context.Context, id int64, lot entities.Lot) error {
	return c.res.update(ctx, strconv.FormatInt(id, 10), dto.LotFromEntity(lot))
}

func (c *LotClient) Remove(ctx context.Context, id int64) error {
	return c.res.remove(ctx, strconv.FormatInt(id, 10))
}
