package repo

import (
	"database/sql"
	"time"

	"tender-crm/internal/entities"
)

type Customer struct {
	Code           string         `db:"customer_code"`
	Name           string         `db:"customer_name"`
	IsOrganization bool           `db:"is_organization"`
	IsPerson       bool           `db:"is_person"`
	INN            sql.NullString `db:"customer_inn"`
	KPP            sql.NullString `db:"customer_kpp"`
	LegalAddress   sql.NullString `db:"customer_legal_address"`
	PostalAddress  sql.NullString `db:"customer_postal_address"`
	Email          sql.NullString `db:"customer_email"`
	CodeMain       sql.NullString `db:"customer_code_main"`
}

type Lot struct {
	ID            int64           `db:"id"`
	Name          string          `db:"lot_name"`
	CustomerCode  string          `db:"customer_code"`
	Price         sql.NullFloat64 `db:"price"`
	CurrencyCode  string          `db:"currency_code"`
	NDSRate       string          `db:"nds_rate"`
	PlaceDelivery sql.NullString  `db:"place_delivery"`
	DateDelivery  sql.NullTime    `db:"date_delivery"`
}

func CustomerToEntity(c Customer) entities.Customer {
	class := entities.Unclassified
	switch {
	case c.IsOrganization:
		class = entities.Organization
	case c.IsPerson:
		class = entities.Person
	}

	return entities.Customer{
		Code:           c.Code,
		Name:           c.Name,
		Classification: class,
		INN:            nullStringToString(c.INN),
		KPP:            nullStringToString(c.KPP),
		LegalAddress:   nullStringToString(c.LegalAddress),
		PostalAddress:  nullStringToString(c.PostalAddress),
		Email:          nullStringToString(c.Email),
		CodeMain:       nullStringToString(c.CodeMain),
	}
}

func LotToEntity(l Lot) entities.Lot {
	id := l.ID
	lot := entities.Lot{
		ID:            &id,
		Name:          l.Name,
		CustomerCode:  l.CustomerCode,
		CurrencyCode:  l.CurrencyCode,
		NDSRate:       l.NDSRate,
		PlaceDelivery: nullStringToString(l.PlaceDelivery),
	}

	if l.Price.Valid {
		price := l.Price.Float64
		lot.Price = &price
	}
	if l.DateDelivery.Valid {
		lot.DateDelivery = l.DateDelivery.Time.Format(entities.DeliveryDateLayout)
	}
	return lot
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func nullPrice(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

// nullDeliveryDate разбирает срок поставки из текстового представления
// сущности; пустая строка хранится как NULL.
func nullDeliveryDate(v string) (sql.NullTime, error) {
	if v == "" {
		return sql.NullTime{}, nil
	}
	t, err := time.Parse(entities.DeliveryDateLayout, v)
	if err != nil {
		return sql.NullTime{}, err
	}
	return sql.NullTime{Time: t, Valid: true}, nil
}
