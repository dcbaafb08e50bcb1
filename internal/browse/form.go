package browse

import (
	"context"
	"errors"
	"strings"

	"tender-crm/internal/client"
	"tender-crm/internal/entities"
	"tender-crm/internal/validation"
)

// ErrNotSaveable: запись в текущем состоянии не проходит проверку
// допустимости сохранения.
var ErrNotSaveable = errors.New("record is not saveable")

// CustomerField — закрытый перечень редактируемых строковых полей формы
// контрагента. Привязка поля к аксессору и валидатору статическая, без
// обращения по строковому имени.
type CustomerField int

const (
	CustomerFieldCode CustomerField = iota
	CustomerFieldName
	CustomerFieldINN
	CustomerFieldKPP
	CustomerFieldLegalAddress
	CustomerFieldPostalAddress
	CustomerFieldEmail
	CustomerFieldCodeMain
)

// CustomerForm владеет редактируемой записью и картой ошибок на время
// редактирования.
type CustomerForm struct {
	client *client.CustomerClient
	mode   validation.Mode
	code   string // идентичность записи в режиме редактирования

	Customer entities.Customer
	Errors   map[string]string
}

// NewCustomerForm создаёт форму в режиме создания с пустой записью.
func NewCustomerForm(c *client.CustomerClient) *CustomerForm {
	return &CustomerForm{
		client: c,
		mode:   validation.ModeCreate,
		Errors: make(map[string]string),
	}
}

// LoadForEdit загружает существующую запись и сразу прогоняет валидаторы:
// ошибки в ранее сохранённых данных видны до первого изменения.
// При отказе вызывающий код возвращается к списку.
func (f *CustomerForm) LoadForEdit(ctx context.Context, code string) error {
	customer, err := f.client.FetchOne(ctx, code)
	if err != nil {
		return err
	}
	f.mode = validation.ModeEdit
	f.code = code
	f.Customer = customer
	f.Errors = validation.CustomerErrors(customer)
	return nil
}

// SetField обновляет строковое поле и перепроверяет его валидатором.
func (f *CustomerForm) SetField(field CustomerField, value string) {
	switch field {
	case CustomerFieldCode:
		if f.mode == validation.ModeEdit {
			return // код неизменяем после создания
		}
		f.Customer.Code = value
	case CustomerFieldName:
		f.Customer.Name = value
	case CustomerFieldINN:
		f.Customer.INN = value
		f.setError(validation.FieldCustomerINN, validation.INN(value))
	case CustomerFieldKPP:
		f.Customer.KPP = value
		f.setError(validation.FieldCustomerKPP, validation.KPP(value))
	case CustomerFieldLegalAddress:
		f.Customer.LegalAddress = value
	case CustomerFieldPostalAddress:
		f.Customer.PostalAddress = value
	case CustomerFieldEmail:
		f.Customer.Email = value
		f.setError(validation.FieldCustomerEmail, validation.Email(value))
	case CustomerFieldCodeMain:
		f.Customer.CodeMain = value
	}
}

// SetOrganization и SetPerson поддерживают взаимную исключительность
// флагов: включение одного сбрасывает другой. Оба выключенных —
// допустимое состояние (тип не указан).
func (f *CustomerForm) SetOrganization(checked bool) {
	switch {
	case checked:
		f.Customer.Classification = entities.Organization
	case f.Customer.Classification == entities.Organization:
		f.Customer.Classification = entities.Unclassified
	}
}

func (f *CustomerForm) SetPerson(checked bool) {
	switch {
	case checked:
		f.Customer.Classification = entities.Person
	case f.Customer.Classification == entities.Person:
		f.Customer.Classification = entities.Unclassified
	}
}

// Saveable — текущая допустимость сохранения записи.
func (f *CustomerForm) Saveable() bool {
	return validation.CustomerSaveable(f.Customer, f.mode)
}

// Save отправляет запись целиком. При отказе запись и ошибки остаются
// во владении формы: введённые данные не теряются.
func (f *CustomerForm) Save(ctx context.Context) error {
	if !f.Saveable() {
		return ErrNotSaveable
	}
	if f.mode == validation.ModeEdit {
		return f.client.Update(ctx, f.code, f.Customer)
	}
	return f.client.Create(ctx, f.Customer)
}

func (f *CustomerForm) setError(key, msg string) {
	if msg == "" {
		delete(f.Errors, key)
		return
	}
	f.Errors[key] = msg
}

// LotField — закрытый перечень редактируемых строковых полей формы лота.
type LotField int

const (
	LotFieldName LotField = iota
	LotFieldCustomerCode
	LotFieldCurrency
	LotFieldNDSRate
	LotFieldPlaceDelivery
	LotFieldDateDelivery
)

// LotForm владеет редактируемым лотом и картой ошибок.
type LotForm struct {
	client *client.LotClient
	mode   validation.Mode
	id     int64

	Lot    entities.Lot
	Errors map[string]string
}

func NewLotForm(c *client.LotClient) *LotForm {
	return &LotForm{
		client: c,
		mode:   validation.ModeCreate,
		Errors: make(map[string]string),
	}
}

func (f *LotForm) LoadForEdit(ctx context.Context, id int64) error {
	lot, err := f.client.FetchOne(ctx, id)
	if err != nil {
		return err
	}
	f.mode = validation.ModeEdit
	f.id = id
	f.Lot = lot
	f.Errors = validation.LotErrors(lot)
	return nil
}

// SetField обновляет строковое поле и перепроверяет его валидатором.
// Код валюты нормализуется к верхнему регистру при вводе.
func (f *LotForm) SetField(field LotField, value string) {
	switch field {
	case LotFieldName:
		f.Lot.Name = value
	case LotFieldCustomerCode:
		f.Lot.CustomerCode = value
	case LotFieldCurrency:
		value = strings.ToUpper(value)
		f.Lot.CurrencyCode = value
		f.setError(validation.FieldLotCurrency, validation.Currency(value))
	case LotFieldNDSRate:
		f.Lot.NDSRate = value
		f.setError(validation.FieldLotNDSRate, validation.NDSRate(value))
	case LotFieldPlaceDelivery:
		f.Lot.PlaceDelivery = value
	case LotFieldDateDelivery:
		f.Lot.DateDelivery = value
		f.setError(validation.FieldLotDateDelivery, validation.DeliveryDate(value))
	}
}

// SetPrice принимает nil как «цена не задана».
func (f *LotForm) SetPrice(price *float64) {
	f.Lot.Price = price
	f.setError(validation.FieldLotPrice, validation.Price(price))
}

func (f *LotForm) Saveable() bool {
	return validation.LotSaveable(f.Lot)
}

func (f *LotForm) Save(ctx context.Context) error {
	if !f.Saveable() {
		return ErrNotSaveable
	}
	if f.mode == validation.ModeEdit {
		return f.client.Update(ctx, f.id, f.Lot)
	}
	return f.client.Create(ctx, f.Lot)
}

func (f *LotForm) setError(key, msg string) {
	if msg == "" {
		delete(f.Errors, key)
		return
	}
	f.Errors[key] = msg
}
