// Package dto описывает сериализуемые представления ресурсов REST API.
// Имена полей — контракт API; классификация контрагента передаётся
// парой булевых флагов, во внутренней модели это перечисление.
package dto

import "tender-crm/internal/entities"

// Customer — контрагент в формате ресурса /api/customers.
type Customer struct {
	CustomerCode          string `json:"customerCode" validate:"required,max=32"`
	CustomerName          string `json:"customerName" validate:"required,max=255"`
	IsOrganization        bool   `json:"isOrganization"`
	IsPerson              bool   `json:"isPerson"`
	CustomerInn           string `json:"customerInn" validate:"omitempty,number,len=10|len=12"`
	CustomerKpp           string `json:"customerKpp" validate:"omitempty,number,len=9"`
	CustomerLegalAddress  string `json:"customerLegalAddress" validate:"max=255"`
	CustomerPostalAddress string `json:"customerPostalAddress" validate:"max=255"`
	CustomerEmail         string `json:"customerEmail" validate:"omitempty,email,max=255"`
	CustomerCodeMain      string `json:"customerCodeMain" validate:"max=32"`
}

func CustomerToEntity(d Customer) entities.Customer {
	class := entities.Unclassified
	switch {
	case d.IsOrganization:
		class = entities.Organization
	case d.IsPerson:
		class = entities.Person
	}

	return entities.Customer{
		Code:           d.CustomerCode,
		Name:           d.CustomerName,
		Classification: class,
		INN:            d.CustomerInn,
		KPP:            d.CustomerKpp,
		LegalAddress:   d.CustomerLegalAddress,
		PostalAddress:  d.CustomerPostalAddress,
		Email:          d.CustomerEmail,
		CodeMain:       d.CustomerCodeMain,
	}
}

func CustomerFromEntity(c entities.Customer) Customer {
	return Customer{
		CustomerCode:          c.Code,
		CustomerName:          c.Name,
		IsOrganization:        c.Classification == entities.Organization,
		IsPerson:              c.Classification == entities.Person,
		CustomerInn:           c.INN,
		CustomerKpp:           c.KPP,
		CustomerLegalAddress:  c.LegalAddress,
		CustomerPostalAddress: c.PostalAddress,
		CustomerEmail:         c.Email,
		CustomerCodeMain:      c.CodeMain,
	}
}
