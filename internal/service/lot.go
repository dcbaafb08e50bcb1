package service

import (
	"context"
	"log/slog"
	"strconv"

	"tender-crm/internal/entities"
	"tender-crm/pkg/trm"
)

type LotRepo interface {
	ListLots(ctx context.Context) ([]entities.Lot, error)
	GetLot(ctx context.Context, id int64) (entities.Lot, error)
	CreateLot(ctx context.Context, l entities.Lot) (int64, error)
	UpdateLot(ctx context.Context, id int64, l entities.Lot) error
	DeleteLot(ctx context.Context, id int64) error
}

type lotService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      LotRepo
	cache     Cache
}

func NewLotService(logger *slog.Logger, txManager trm.Manager, repo LotRepo, cache Cache) *lotService {
	return &lotService{
		logger:    logger.With(slog.String("service", "lot")),
		txManager: txManager,
		repo:      repo,
		cache:     cache,
	}
}

func (s *lotService) ListLots(ctx context.Context) ([]entities.Lot, error) {
	return s.repo.ListLots(ctx)
}

func (s *lotService) GetLot(ctx context.Context, id int64) (entities.Lot, error) {
	key := lotCacheKey(id)
	if data, ok := s.cache.Get(key); ok {
		var lot entities.Lot
		if err := lot.Unmarshal(data); err == nil {
			return lot, nil
		}
		s.logger.Warn("failed to unmarshal cached lot", slog.Int64("id", id))
	}

	lot, err := s.repo.GetLot(ctx, id)
	if err != nil {
		return entities.Lot{}, err
	}

	if data, err := lot.Marshal(); err == nil {
		s.cache.Set(key, data)
	}
	return lot, nil
}

func (s *lotService) CreateLot(ctx context.Context, l entities.Lot) (int64, error) {
	id, err := s.repo.CreateLot(ctx, l)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("lot created", slog.Int64("id", id))
	return id, nil
}

// UpdateLot проверяет существование записи и обновляет её в одной
// транзакции, затем сбрасывает кэш.
func (s *lotService) UpdateLot(ctx context.Context, id int64, l entities.Lot) error {
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetLot(ctx, id); err != nil {
			return err
		}
		return s.repo.UpdateLot(ctx, id, l)
	})
	if err != nil {
		return err
	}

	s.cache.Remove(lotCacheKey(id))
	s.logger.Debug("lot updated", slog.Int64("id", id))
	return nil
}

func (s *lotService) DeleteLot(ctx context.Context, id int64) error {
	if err := s.repo.DeleteLot(ctx, id); err != nil {
		return err
	}
	s.cache.Remove(lotCacheKey(id))
	s.logger.Debug("lot deleted", slog.Int64("id", id))
	return nil
}

// WarmUpCache прогревает кэш первыми count записями.
func (s *lotService) WarmUpCache(ctx context.Context, count int) error {
	lots, err := s.repo.ListLots(ctx)
	if err != nil {
		return err
	}

	for i, lot := range lots {
		if i >= count {
			break
		}
		if lot.ID == nil {
			continue
		}
		if data, err := lot.Marshal(); err == nil {
			s.cache.Set(lotCacheKey(*lot.ID), data)
		}
	}
	return nil
}

func lotCacheKey(id int64) string {
	return "lot:" + strconv.FormatInt(id, 10)
}
