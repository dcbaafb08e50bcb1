package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"tender-crm/internal/entities"
	"tender-crm/internal/service"
	"tender-crm/pkg/cache"
	"tender-crm/pkg/trm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCustomerRepo struct {
	listFn   func(ctx context.Context) ([]entities.Customer, error)
	getFn    func(ctx context.Context, code string) (entities.Customer, error)
	createFn func(ctx context.Context, c entities.Customer) error
	updateFn func(ctx context.Context, code string, c entities.Customer) error
	deleteFn func(ctx context.Context, code string) error

	getCalls int
}

func (r *stubCustomerRepo) ListCustomers(ctx context.Context) ([]entities.Customer, error) {
	return r.listFn(ctx)
}

func (r *stubCustomerRepo) GetCustomer(ctx context.Context, code string) (entities.Customer, error) {
	r.getCalls++
	return r.getFn(ctx, code)
}

func (r *stubCustomerRepo) CreateCustomer(ctx context.Context, c entities.Customer) error {
	return r.createFn(ctx, c)
}

func (r *stubCustomerRepo) UpdateCustomer(ctx context.Context, code string, c entities.Customer) error {
	return r.updateFn(ctx, code, c)
}

func (r *stubCustomerRepo) DeleteCustomer(ctx context.Context, code string) error {
	return r.deleteFn(ctx, code)
}

// fakeTxManager выполняет callback без настоящей транзакции.
type fakeTxManager struct{}

func (fakeTxManager) BeginTx(ctx context.Context) (context.Context, trm.Transaction, error) {
	return ctx, nil, nil
}

func (fakeTxManager) Do(ctx context.Context, callback func(ctx context.Context) error) error {
	return callback(ctx)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCache() *cache.LRUCache {
	return cache.NewLRUCache(100, time.Minute)
}

func TestCustomerService_GetCustomer_CachesResult(t *testing.T) {
	valid := entities.Customer{Code: "C1", Name: "Альфа"}
	repo := &stubCustomerRepo{
		getFn: func(ctx context.Context, code string) (entities.Customer, error) {
			return valid, nil
		},
	}
	svc := service.NewCustomerService(testLogger(), fakeTxManager{}, repo, testCache())

	got, err := svc.GetCustomer(context.Background(), "C1")
	require.NoError(t, err)
	assert.Equal(t, valid, got)

	// повторный запрос обслуживается из кэша
	got, err = svc.GetCustomer(context.Background(), "C1")
	require.NoError(t, err)
	assert.Equal(t, valid, got)
	assert.Equal(t, 1, repo.getCalls)
}

func TestCustomerService_GetCustomer_NotFound(t *testing.T) {
	repo := &stubCustomerRepo{
		getFn: func(ctx context.Context, code string) (entities.Customer, error) {
			return entities.Customer{}, entities.ErrCustomerNotFound
		},
	}
	svc := service.NewCustomerService(testLogger(), fakeTxManager{}, repo, testCache())

	_, err := svc.GetCustomer(context.Background(), "missing")
	assert.ErrorIs(t, err, entities.ErrCustomerNotFound)
}

func TestCustomerService_GetCustomer_CorruptCacheFallsThrough(t *testing.T) {
	valid := entities.Customer{Code: "C1", Name: "Альфа"}
	repo := &stubCustomerRepo{
		getFn: func(ctx context.Context, code string) (entities.Customer, error) {
			return valid, nil
		},
	}
	c := testCache()
	c.Set("customer:C1", []byte("broken"))

	svc := service.NewCustomerService(testLogger(), fakeTxManager{}, repo, c)

	got, err := svc.GetCustomer(context.Background(), "C1")
	require.NoError(t, err)
	assert.Equal(t, valid, got)
	assert.Equal(t, 1, repo.getCalls)
}

func TestCustomerService_UpdateCustomer(t *testing.T) {
	dbErr := errors.New("db error")

	testCases := []struct {
		name    string
		getErr  error
		updErr  error
		wantErr error
	}{
		{name: "OK"},
		{name: "record missing", getErr: entities.ErrCustomerNotFound, wantErr: entities.ErrCustomerNotFound},
		{name: "update fails", updErr: dbErr, wantErr: dbErr},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubCustomerRepo{
				getFn: func(ctx context.Context, code string) (entities.Customer, error) {
					return entities.Customer{Code: code}, tc.getErr
				},
				updateFn: func(ctx context.Context, code string, c entities.Customer) error {
					return tc.updErr
				},
			}
			svc := service.NewCustomerService(testLogger(), fakeTxManager{}, repo, testCache())

			err := svc.UpdateCustomer(context.Background(), "C1", entities.Customer{Code: "C1", Name: "Новое"})
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCustomerService_UpdateCustomer_InvalidatesCache(t *testing.T) {
	stale := entities.Customer{Code: "C1", Name: "Старое"}
	fresh := entities.Customer{Code: "C1", Name: "Новое"}

	current := stale
	repo := &stubCustomerRepo{
		getFn: func(ctx context.Context, code string) (entities.Customer, error) {
			return current, nil
		},
		updateFn: func(ctx context.Context, code string, c entities.Customer) error {
			current = c
			return nil
		},
	}
	svc := service.NewCustomerService(testLogger(), fakeTxManager{}, repo, testCache())

	got, err := svc.GetCustomer(context.Background(), "C1")
	require.NoError(t, err)
	require.Equal(t, stale, got)

	require.NoError(t, svc.UpdateCustomer(context.Background(), "C1", fresh))

	got, err = svc.GetCustomer(context.Background(), "C1")
	require.NoError(t, err)
	assert.Equal(t, fresh, got)
}

func TestCustomerService_DeleteCustomer_InvalidatesCache(t *testing.T) {
	valid := entities.Customer{Code: "C1", Name: "Альфа"}
	repo := &stubCustomerRepo{
		getFn: func(ctx context.Context, code string) (entities.Customer, error) {
			return valid, nil
		},
		deleteFn: func(ctx context.Context, code string) error { return nil },
	}
	c := testCache()
	svc := service.NewCustomerService(testLogger(), fakeTxManager{}, repo, c)

	_, err := svc.GetCustomer(context.Background(), "C1")
	require.NoError(t, err)
	require.Equal(t, 1, c.Size())

	require.NoError(t, svc.DeleteCustomer(context.Background(), "C1"))
	assert.Equal(t, 0, c.Size())
}

func TestCustomerService_WarmUpCache(t *testing.T) {
	repo := &stubCustomerRepo{
		listFn: func(ctx context.Context) ([]entities.Customer, error) {
			return []entities.Customer{
				{Code: "C1"}, {Code: "C2"}, {Code: "C3"},
			}, nil
		},
	}
	c := testCache()
	svc := service.NewCustomerService(testLogger(), fakeTxManager{}, repo, c)

	require.NoError(t, svc.WarmUpCache(context.Background(), 2))
	assert.Equal(t, 2, c.Size())
}
