package entities

import (
	"bytes"
	"encoding/gob"
	"errors"
)

// Classification — тип контрагента. Вместо пары взаимоисключающих флагов
// используется перечисление: состояние «оба флага истинны» невыразимо.
type Classification int

const (
	Unclassified Classification = iota
	Organization
	Person
)

// Label возвращает отображаемую метку типа (пустая строка для Unclassified).
func (c Classification) Label() string {
	switch c {
	case Organization:
		return "Юр. лицо"
	case Person:
		return "Физ. лицо"
	default:
		return ""
	}
}

// Customer — контрагент. Code назначается извне при создании и
// после этого неизменяем: это идентичность записи на всё время жизни.
type Customer struct {
	Code           string
	Name           string
	Classification Classification
	INN            string
	KPP            string
	LegalAddress   string
	PostalAddress  string
	Email          string
	CodeMain       string
}

var (
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrConflict — нарушение ограничений хранилища (дубликат ключа,
	// внешний ключ, check). Общий для обоих видов записей.
	ErrConflict = errors.New("record conflicts with existing data")
)

func (c *Customer) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Customer) Unmarshal(data []byte) error {
	return gob.NewDecoder(bytes.NewBuffer(data)).Decode(c)
}

func init() {
	gob.Register(Customer{})
}
