package entities

import (
	"bytes"
	"encoding/gob"
	"errors"
)

// DeliveryDateLayout — формат срока поставки «YYYY-MM-DD HH:mm».
const DeliveryDateLayout = "2006-01-02 15:04"

// CurrencyCodes — допустимые валюты цены лота.
var CurrencyCodes = []string{"RUB", "USD", "EUR"}

// NDSRates — допустимые ставки НДС, сверяются с точным написанием.
var NDSRates = []string{"Без НДС", "18%", "20%"}

// Lot — коммерческий лот. ID назначает сервер, до первого сохранения
// он отсутствует. Price отсутствует, пока цена не введена.
type Lot struct {
	ID            *int64
	Name          string
	CustomerCode  string
	Price         *float64
	CurrencyCode  string
	NDSRate       string
	PlaceDelivery string
	DateDelivery  string // «YYYY-MM-DD HH:mm»
}

var ErrLotNotFound = errors.New("lot not found")

func (l *Lot) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(l); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (l *Lot) Unmarshal(data []byte) error {
	return gob.NewDecoder(bytes.NewBuffer(data)).Decode(l)
}

func init() {
	gob.Register(Lot{})
}
