package dto

import "tender-crm/internal/entities"

// Lot — лот в формате ресурса /api/lots. ID опускается в теле создания,
// его назначает сервер.
type Lot struct {
	ID            *int64   `json:"id,omitempty"`
	LotName       string   `json:"lotName" validate:"required,max=255"`
	CustomerCode  string   `json:"customerCode" validate:"required,max=32"`
	Price         *float64 `json:"price" validate:"required,gt=0"`
	CurrencyCode  string   `json:"currencyCode" validate:"required,oneof=RUB USD EUR"`
	NdsRate       string   `json:"ndsRate" validate:"required,oneof='Без НДС' 18% 20%"`
	PlaceDelivery string   `json:"placeDelivery" validate:"max=255"`
	DateDelivery  string   `json:"dateDelivery" validate:"omitempty,datetime=2006-01-02 15:04"`
}

func LotToEntity(d Lot) entities.Lot {
	return entities.Lot{
		ID:            d.ID,
		Name:          d.LotName,
		CustomerCode:  d.CustomerCode,
		Price:         d.Price,
		CurrencyCode:  d.CurrencyCode,
		NDSRate:       d.NdsRate,
		PlaceDelivery: d.PlaceDelivery,
		DateDelivery:  d.DateDelivery,
	}
}

func LotFromEntity(l entities.Lot) Lot {
	return Lot{
		ID:            l.ID,
		LotName:       l.Name,
		CustomerCode:  l.CustomerCode,
		Price:         l.Price,
		CurrencyCode:  l.CurrencyCode,
		NdsRate:       l.NDSRate,
		PlaceDelivery: l.PlaceDelivery,
		DateDelivery:  l.DateDelivery,
	}
}
