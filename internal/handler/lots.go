package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"tender-crm/internal/dto"
	"tender-crm/internal/entities"
	"tender-crm/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type LotService interface {
	ListLots(ctx context.Context) ([]entities.Lot, error)
	GetLot(ctx context.Context, id int64) (entities.Lot, error)
	CreateLot(ctx context.Context, l entities.Lot) (int64, error)
	UpdateLot(ctx context.Context, id int64, l entities.Lot) error
	DeleteLot(ctx context.Context, id int64) error
}

type LotHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      LotService
}

func NewLotHandler(logger *slog.Logger, svc LotService) *LotHandler {
	return &LotHandler{
		logger:   logger.With(slog.String("handler", "lots")),
		validate: validator.New(),
		svc:      svc,
	}
}

func (h *LotHandler) Init(r chi.Router) {
	r.Route("/api/lots", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List возвращает все лоты.
// @Summary      Список лотов
// @Tags         lots
// @Success      200  {array}  dto.Lot
// @Router       /api/lots [get]
func (h *LotHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	lots, err := h.svc.ListLots(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list lots", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	payload := make([]dto.Lot, 0, len(lots))
	for _, l := range lots {
		payload = append(payload, dto.LotFromEntity(l))
	}
	utils.WriteJSON(w, payload, http.StatusOK)
}

// Get возвращает лот по id.
// @Summary      Получить лот
// @Tags         lots
// @Param        id  path  int  true  "Идентификатор лота"
// @Success      200  {object}  dto.Lot
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /api/lots/{id} [get]
func (h *LotHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.lotID(w, r)
	if !ok {
		return
	}

	lot, err := h.svc.GetLot(ctx, id)
	if errors.Is(err, entities.ErrLotNotFound) {
		utils.WriteError(w, "lot not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get lot", slog.Any("error", err), slog.Int64("id", id))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, dto.LotFromEntity(lot), http.StatusOK)
}

// Create создаёт лот; идентификатор назначает база и возвращает в ответе.
// @Summary      Создать лот
// @Tags         lots
// @Param        lot  body  dto.Lot  true  "Лот без id"
// @Success      201  {object}  dto.Lot
// @Failure      400  {object}  utils.ValidationErrorResponse
// @Failure      409  {object}  utils.ErrorResponse
// @Router       /api/lots [post]
func (h *LotHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body dto.Lot
	if err := utils.DecodeBody(r, &body); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(body); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	id, err := h.svc.CreateLot(ctx, dto.LotToEntity(body))
	if errors.Is(err, entities.ErrConflict) {
		recordWrites.WithLabelValues("lots", "create", "conflict").Inc()
		utils.WriteError(w, "lot conflicts with existing data", http.StatusConflict)
		return
	}
	if err != nil {
		recordWrites.WithLabelValues("lots", "create", "error").Inc()
		h.logger.ErrorContext(ctx, "failed to create lot", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	recordWrites.WithLabelValues("lots", "create", "ok").Inc()
	body.ID = &id
	utils.WriteJSON(w, body, http.StatusCreated)
}

// Update обновляет лот целиком.
// @Summary      Обновить лот
// @Tags         lots
// @Param        id   path  int      true  "Идентификатор лота"
// @Param        lot  body  dto.Lot  true  "Лот"
// @Success      200  {object}  dto.Lot
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /api/lots/{id} [put]
func (h *LotHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.lotID(w, r)
	if !ok {
		return
	}

	var body dto.Lot
	if err := utils.DecodeBody(r, &body); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(body); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	err := h.svc.UpdateLot(ctx, id, dto.LotToEntity(body))
	switch {
	case errors.Is(err, entities.ErrLotNotFound):
		recordWrites.WithLabelValues("lots", "update", "not_found").Inc()
		utils.WriteError(w, "lot not found", http.StatusNotFound)
		return
	case errors.Is(err, entities.ErrConflict):
		recordWrites.WithLabelValues("lots", "update", "conflict").Inc()
		utils.WriteError(w, "lot conflicts with existing data", http.StatusConflict)
		return
	case err != nil:
		recordWrites.WithLabelValues("lots", "update", "error").Inc()
		h.logger.ErrorContext(ctx, "failed to update lot", slog.Any("error", err), slog.Int64("id", id))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	recordWrites.WithLabelValues("lots", "update", "ok").Inc()
	body.ID = &id
	utils.WriteJSON(w, body, http.StatusOK)
}

// Delete удаляет лот. Удаление отсутствующей записи не ошибка.
// @Summary      Удалить лот
// @Tags         lots
// @Param        id  path  int  true  "Идентификатор лота"
// @Success      204
// @Router       /api/lots/{id} [delete]
func (h *LotHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.lotID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteLot(ctx, id); err != nil {
		recordWrites.WithLabelValues("lots", "delete", "error").Inc()
		h.logger.ErrorContext(ctx, "failed to delete lot", slog.Any("error", err), slog.Int64("id", id))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	recordWrites.WithLabelValues("lots", "delete", "ok").Inc()
	w.WriteHeader(http.StatusNoContent)
}

func (h *LotHandler) lotID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteError(w, "invalid lot id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
