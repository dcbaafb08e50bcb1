package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tender-crm/internal/entities"
	"tender-crm/internal/handler"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCustomerService struct {
	listFn   func() ([]entities.Customer, error)
	getFn    func(code string) (entities.Customer, error)
	createFn func(c entities.Customer) error
	updateFn func(code string, c entities.Customer) error
	deleteFn func(code string) error
}

func (s *stubCustomerService) ListCustomers(ctx context.Context) ([]entities.Customer, error) {
	return s.listFn()
}

func (s *stubCustomerService) GetCustomer(ctx context.Context, code string) (entities.Customer, error) {
	return s.getFn(code)
}

func (s *stubCustomerService) CreateCustomer(ctx context.Context, c entities.Customer) error {
	return s.createFn(c)
}

func (s *stubCustomerService) UpdateCustomer(ctx context.Context, code string, c entities.Customer) error {
	return s.updateFn(code, c)
}

func (s *stubCustomerService) DeleteCustomer(ctx context.Context, code string) error {
	return s.deleteFn(code)
}

func newCustomerRouter(svc handler.CustomerService) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	handler.NewCustomerHandler(logger, svc).Init(r)
	return r
}

func TestCustomerHandler_List(t *testing.T) {
	testCases := []struct {
		name       string
		listFn     func() ([]entities.Customer, error)
		wantStatus int
		wantBody   string
	}{
		{
			name: "success",
			listFn: func() ([]entities.Customer, error) {
				return []entities.Customer{
					{Code: "C1", Name: "Альфа", Classification: entities.Organization},
				}, nil
			},
			wantStatus: http.StatusOK,
			wantBody:   `"customerCode":"C1"`,
		},
		{
			name: "empty list is json array",
			listFn: func() ([]entities.Customer, error) {
				return nil, nil
			},
			wantStatus: http.StatusOK,
			wantBody:   `[]`,
		},
		{
			name: "internal error",
			listFn: func() ([]entities.Customer, error) {
				return nil, errors.New("db error")
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `"internal server error"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := newCustomerRouter(&stubCustomerService{listFn: tc.listFn})

			req := httptest.NewRequest(http.MethodGet, "/api/customers/", nil)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			res := rr.Result()
			defer res.Body.Close()
			body, err := io.ReadAll(res.Body)
			require.NoError(t, err)

			assert.Equal(t, tc.wantStatus, res.StatusCode)
			assert.Contains(t, string(body), tc.wantBody)
		})
	}
}

func TestCustomerHandler_Get(t *testing.T) {
	testCases := []struct {
		name       string
		code       string
		getFn      func(code string) (entities.Customer, error)
		wantStatus int
		wantBody   string
	}{
		{
			name: "success",
			code: "C1",
			getFn: func(code string) (entities.Customer, error) {
				return entities.Customer{Code: code, Name: "Альфа", Classification: entities.Person}, nil
			},
			wantStatus: http.StatusOK,
			wantBody:   `"isPerson":true`,
		},
		{
			name: "not found",
			code: "missing",
			getFn: func(code string) (entities.Customer, error) {
				return entities.Customer{}, entities.ErrCustomerNotFound
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `"customer not found"`,
		},
		{
			name: "internal error",
			code: "C1",
			getFn: func(code string) (entities.Customer, error) {
				return entities.Customer{}, errors.New("db error")
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `"internal server error"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := newCustomerRouter(&stubCustomerService{getFn: tc.getFn})

			req := httptest.NewRequest(http.MethodGet, "/api/customers/"+tc.code, nil)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			res := rr.Result()
			defer res.Body.Close()
			body, err := io.ReadAll(res.Body)
			require.NoError(t, err)

			assert.Equal(t, tc.wantStatus, res.StatusCode)
			assert.Contains(t, string(body), tc.wantBody)
		})
	}
}

func TestCustomerHandler_Create(t *testing.T) {
	validBody := `{"customerCode":"C1","customerName":"Альфа","isOrganization":true,"isPerson":false}`

	testCases := []struct {
		name       string
		body       string
		createFn   func(c entities.Customer) error
		wantStatus int
		wantBody   string
	}{
		{
			name: "created",
			body: validBody,
			createFn: func(c entities.Customer) error {
				return nil
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"customerCode":"C1"`,
		},
		{
			name:       "malformed json",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `"invalid request body"`,
		},
		{
			name:       "missing required code",
			body:       `{"customerName":"Альфа"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `"CustomerCode"`,
		},
		{
			name:       "bad inn rejected",
			body:       `{"customerCode":"C1","customerName":"Альфа","customerInn":"12345"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `"CustomerInn"`,
		},
		{
			name: "duplicate key",
			body: validBody,
			createFn: func(c entities.Customer) error {
				return entities.ErrConflict
			},
			wantStatus: http.StatusConflict,
			wantBody:   `"customer conflicts with existing data"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := newCustomerRouter(&stubCustomerService{createFn: tc.createFn})

			req := httptest.NewRequest(http.MethodPost, "/api/customers/", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			res := rr.Result()
			defer res.Body.Close()
			body, err := io.ReadAll(res.Body)
			require.NoError(t, err)

			assert.Equal(t, tc.wantStatus, res.StatusCode)
			assert.Contains(t, string(body), tc.wantBody)
		})
	}
}

func TestCustomerHandler_Create_PassesEntity(t *testing.T) {
	var got entities.Customer
	r := newCustomerRouter(&stubCustomerService{
		createFn: func(c entities.Customer) error {
			got = c
			return nil
		},
	})

	body := `{"customerCode":"C1","customerName":"Альфа","isOrganization":false,"isPerson":true,"customerInn":"123456789012"}`
	req := httptest.NewRequest(http.MethodPost, "/api/customers/", strings.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, entities.Person, got.Classification)
	assert.Equal(t, "123456789012", got.INN)
}

func TestCustomerHandler_Update(t *testing.T) {
	validBody := `{"customerCode":"C1","customerName":"Новое"}`

	testCases := []struct {
		name       string
		updateFn   func(code string, c entities.Customer) error
		wantStatus int
	}{
		{
			name:       "updated",
			updateFn:   func(code string, c entities.Customer) error { return nil },
			wantStatus: http.StatusOK,
		},
		{
			name:       "not found",
			updateFn:   func(code string, c entities.Customer) error { return entities.ErrCustomerNotFound },
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "conflict",
			updateFn:   func(code string, c entities.Customer) error { return entities.ErrConflict },
			wantStatus: http.StatusConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := newCustomerRouter(&stubCustomerService{updateFn: tc.updateFn})

			req := httptest.NewRequest(http.MethodPut, "/api/customers/C1", strings.NewReader(validBody))
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
		})
	}
}

func TestCustomerHandler_Delete(t *testing.T) {
	var deleted string
	r := newCustomerRouter(&stubCustomerService{
		deleteFn: func(code string) error {
			deleted = code
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/customers/C1", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "C1", deleted)
	assert.Empty(t, rr.Body.String())
}

func TestCustomerHandler_Delete_ReferencedByLots(t *testing.T) {
	r := newCustomerRouter(&stubCustomerService{
		deleteFn: func(code string) error {
			return entities.ErrConflict
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/customers/C1", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), `"customer is referenced by existing lots"`)
}

func TestCustomerHandler_ValidationErrorShape(t *testing.T) {
	r := newCustomerRouter(&stubCustomerService{})

	body := `{"customerCode":"C1","customerName":"Альфа","customerEmail":"not-an-email"}`
	req := httptest.NewRequest(http.MethodPost, "/api/customers/", strings.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp struct {
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "invalid request", resp.Message)
	assert.Contains(t, resp.Fields, "CustomerEmail")
}
