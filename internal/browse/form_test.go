package browse_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tender-crm/internal/browse"
	"tender-crm/internal/client"
	"tender-crm/internal/entities"
	"tender-crm/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerForm_CreateFlow(t *testing.T) {
	var saved map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&saved))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	form := browse.NewCustomerForm(client.NewCustomerClient(srv.URL, srv.Client()))
	assert.False(t, form.Saveable())

	form.SetField(browse.CustomerFieldCode, "C1")
	form.SetField(browse.CustomerFieldName, "Альфа")
	form.SetField(browse.CustomerFieldLegalAddress, "Москва")
	form.SetOrganization(true)
	require.True(t, form.Saveable())

	require.NoError(t, form.Save(context.Background()))
	assert.Equal(t, "C1", saved["customerCode"])
	assert.Equal(t, true, saved["isOrganization"])
}

func TestCustomerForm_FieldRevalidation(t *testing.T) {
	form := browse.NewCustomerForm(nil)

	form.SetField(browse.CustomerFieldINN, "12345")
	assert.Equal(t, "ИНН: 10 или 12 цифр", form.Errors[validation.FieldCustomerINN])

	// исправление значения убирает ошибку из карты
	form.SetField(browse.CustomerFieldINN, "1234567890")
	_, ok := form.Errors[validation.FieldCustomerINN]
	assert.False(t, ok)
}

func TestCustomerForm_NotSaveable(t *testing.T) {
	form := browse.NewCustomerForm(nil)
	form.SetField(browse.CustomerFieldName, "Альфа")

	err := form.Save(context.Background())
	assert.ErrorIs(t, err, browse.ErrNotSaveable)
}

func TestCustomerForm_ClassificationMutuallyExclusive(t *testing.T) {
	form := browse.NewCustomerForm(nil)

	form.SetOrganization(true)
	assert.Equal(t, entities.Organization, form.Customer.Classification)

	form.SetPerson(true)
	assert.Equal(t, entities.Person, form.Customer.Classification)

	form.SetPerson(false)
	assert.Equal(t, entities.Unclassified, form.Customer.Classification)

	// снятие неактивного флага не трогает активный
	form.SetOrganization(true)
	form.SetPerson(false)
	assert.Equal(t, entities.Organization, form.Customer.Classification)
}

func TestCustomerForm_EditFlow(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			// ранее сохранённая запись с некорректным ИНН
			w.Write([]byte(`{"customerCode":"C1","customerName":"Альфа","customerLegalAddress":"Москва","customerInn":"12345"}`))
			return
		}
		gotMethod = r.Method
		gotPath = r.URL.Path
	}))
	defer srv.Close()

	form := browse.NewCustomerForm(client.NewCustomerClient(srv.URL, srv.Client()))
	require.NoError(t, form.LoadForEdit(context.Background(), "C1"))

	// ошибки видны сразу после загрузки, до первого изменения
	assert.Equal(t, "ИНН: 10 или 12 цифр", form.Errors[validation.FieldCustomerINN])
	assert.False(t, form.Saveable())

	// код неизменяем в режиме редактирования
	form.SetField(browse.CustomerFieldCode, "C999")
	assert.Equal(t, "C1", form.Customer.Code)

	form.SetField(browse.CustomerFieldINN, "1234567890")
	require.True(t, form.Saveable())

	require.NoError(t, form.Save(context.Background()))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/customers/C1", gotPath)
}

func TestLotForm_CurrencyNormalized(t *testing.T) {
	form := browse.NewLotForm(nil)

	form.SetField(browse.LotFieldCurrency, "usd")
	assert.Equal(t, "USD", form.Lot.CurrencyCode)
	assert.Empty(t, form.Errors)

	form.SetField(browse.LotFieldCurrency, "xxx")
	assert.Equal(t, "Только RUB, USD или EUR", form.Errors[validation.FieldLotCurrency])
}

func TestLotForm_PriceValidation(t *testing.T) {
	price := func(v float64) *float64 { return &v }
	form := browse.NewLotForm(nil)

	form.SetPrice(price(0))
	assert.Equal(t, "Цена должна быть > 0", form.Errors[validation.FieldLotPrice])

	form.SetPrice(price(100))
	assert.Empty(t, form.Errors)

	form.SetPrice(nil)
	assert.Empty(t, form.Errors)
}

func TestLotForm_SaveCreate(t *testing.T) {
	var saved map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&saved))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	price := 100.0
	form := browse.NewLotForm(client.NewLotClient(srv.URL, srv.Client()))
	form.SetField(browse.LotFieldName, "Бумага")
	form.SetField(browse.LotFieldCustomerCode, "C1")
	form.SetField(browse.LotFieldCurrency, "rub")
	form.SetField(browse.LotFieldNDSRate, "20%")
	form.SetPrice(&price)
	require.True(t, form.Saveable())

	require.NoError(t, form.Save(context.Background()))
	assert.Equal(t, "RUB", saved["currencyCode"])
	_, hasID := saved["id"]
	assert.False(t, hasID)
}

func TestLotForm_BadDeliveryDateBlocksSave(t *testing.T) {
	price := 100.0
	form := browse.NewLotForm(nil)
	form.SetField(browse.LotFieldName, "Бумага")
	form.SetField(browse.LotFieldCustomerCode, "C1")
	form.SetField(browse.LotFieldCurrency, "RUB")
	form.SetField(browse.LotFieldNDSRate, "20%")
	form.SetPrice(&price)

	form.SetField(browse.LotFieldDateDelivery, "2024-02-30 10:00")
	assert.Equal(t, "Некорректная дата", form.Errors[validation.FieldLotDateDelivery])
	assert.False(t, form.Saveable())

	form.SetField(browse.LotFieldDateDelivery, "2024-03-01 10:00")
	assert.True(t, form.Saveable())
}
