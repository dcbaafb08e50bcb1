package service

import (
	"context"
	"log/slog"

	"tender-crm/internal/entities"
	"tender-crm/pkg/trm"
)

type CustomerRepo interface {
	ListCustomers(ctx context.Context) ([]entities.Customer, error)
	GetCustomer(ctx context.Context, code string) (entities.Customer, error)
	CreateCustomer(ctx context.Context, c entities.Customer) error
	UpdateCustomer(ctx context.Context, code string, c entities.Customer) error
	DeleteCustomer(ctx context.Context, code string) error
}

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Remove(key string)
}

type customerService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      CustomerRepo
	cache     Cache
}

func NewCustomerService(logger *slog.Logger, txManager trm.Manager, repo CustomerRepo, cache Cache) *customerService {
	return &customerService{
		logger:    logger.With(slog.String("service", "customer")),
		txManager: txManager,
		repo:      repo,
		cache:     cache,
	}
}

func (s *customerService) ListCustomers(ctx context.Context) ([]entities.Customer, error) {
	return s.repo.ListCustomers(ctx)
}

func (s *customerService) GetCustomer(ctx context.Context, code string) (entities.Customer, error) {
	key := customerCacheKey(code)
	if data, ok := s.cache.Get(key); ok {
		var customer entities.Customer
		if err := customer.Unmarshal(data); err == nil {
			return customer, nil
		}
		// повреждённая запись кэша не фатальна, идём в хранилище
		s.logger.Warn("failed to unmarshal cached customer", slog.String("code", code))
	}

	customer, err := s.repo.GetCustomer(ctx, code)
	if err != nil {
		return entities.Customer{}, err
	}

	if data, err := customer.Marshal(); err == nil {
		s.cache.Set(key, data)
	}
	return customer, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, c entities.Customer) error {
	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		return err
	}
	s.logger.Debug("customer created", slog.String("code", c.Code))
	return nil
}

// UpdateCustomer проверяет существование записи и обновляет её в одной
// транзакции, затем сбрасывает кэш.
func (s *customerService) UpdateCustomer(ctx context.Context, code string, c entities.Customer) error {
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetCustomer(ctx, code); err != nil {
			return err
		}
		return s.repo.UpdateCustomer(ctx, code, c)
	})
	if err != nil {
		return err
	}

	s.cache.Remove(customerCacheKey(code))
	s.logger.Debug("customer updated", slog.String("code", code))
	return nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, code string) error {
	if err := s.repo.DeleteCustomer(ctx, code); err != nil {
		return err
	}
	s.cache.Remove(customerCacheKey(code))
	s.logger.Debug("customer deleted", slog.String("code", code))
	return nil
}

// WarmUpCache прогревает кэш первыми count записями.
func (s *customerService) WarmUpCache(ctx context.Context, count int) error {
	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return err
	}

	for i, customer := range customers {
		if i >= count {
			break
		}
		if data, err := customer.Marshal(); err == nil {
			s.cache.Set(customerCacheKey(customer.Code), data)
		}
	}
	return nil
}

func customerCacheKey(code string) string {
	return "customer:" + code
}
