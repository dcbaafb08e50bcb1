package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"tender-crm/internal/dto"
	"tender-crm/internal/entities"
	"tender-crm/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type CustomerService interface {
	ListCustomers(ctx context.Context) ([]entities.Customer, error)
	GetCustomer(ctx context.Context, code string) (entities.Customer, error)
	CreateCustomer(ctx context.Context, c entities.Customer) error
	UpdateCustomer(ctx context.Context, code string, c entities.Customer) error
	DeleteCustomer(ctx context.Context, code string) error
}

type CustomerHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      CustomerService
}

func NewCustomerHandler(logger *slog.Logger, svc CustomerService) *CustomerHandler {
	return &CustomerHandler{
		logger:   logger.With(slog.String("handler", "customers")),
		validate: validator.New(),
		svc:      svc,
	}
}

func (h *CustomerHandler) Init(r chi.Router) {
	r.Route("/api/customers", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{code}", h.Get)
		r.Put("/{code}", h.Update)
		r.Delete("/{code}", h.Delete)
	})
}

// List возвращает всех контрагентов.
// @Summary      Список контрагентов
// @Tags         customers
// @Success      200  {array}  dto.Customer
// @Router       /api/customers [get]
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	customers, err := h.svc.ListCustomers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list customers", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	payload := make([]dto.Customer, 0, len(customers))
	for _, c := range customers {
		payload = append(payload, dto.CustomerFromEntity(c))
	}
	utils.WriteJSON(w, payload, http.StatusOK)
}

// Get возвращает контрагента по коду.
// @Summary      Получить контрагента
// @Tags         customers
// @Param        code  path  string  true  "Код контрагента"
// @Success      200  {object}  dto.Customer
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /api/customers/{code} [get]
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := chi.URLParam(r, "code")

	customer, err := h.svc.GetCustomer(ctx, code)
	if errors.Is(err, entities.ErrCustomerNotFound) {
		utils.WriteError(w, "customer not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get customer", slog.Any("error", err), slog.String("code", code))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, dto.CustomerFromEntity(customer), http.StatusOK)
}

// Create создаёт контрагента с кодом, назначенным клиентом.
// @Summary      Создать контрагента
// @Tags         customers
// @Param        customer  body  dto.Customer  true  "Контрагент"
// @Success      201  {object}  dto.Customer
// @Failure      400  {object}  utils.ValidationErrorResponse
// @Failure      409  {object}  utils.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body dto.Customer
	if err := utils.DecodeBody(r, &body); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(body); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	err := h.svc.CreateCustomer(ctx, dto.CustomerToEntity(body))
	if errors.Is(err, entities.ErrConflict) {
		recordWrites.WithLabelValues("customers", "create", "conflict").Inc()
		utils.WriteError(w, "customer conflicts with existing data", http.StatusConflict)
		return
	}
	if err != nil {
		recordWrites.WithLabelValues("customers", "create", "error").Inc()
		h.logger.ErrorContext(ctx, "failed to create customer", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	recordWrites.WithLabelValues("customers", "create", "ok").Inc()
	utils.WriteJSON(w, body, http.StatusCreated)
}

// Update обновляет контрагента целиком.
// @Summary      Обновить контрагента
// @Tags         customers
// @Param        code      path  string        true  "Код контрагента"
// @Param        customer  body  dto.Customer  true  "Контрагент"
// @Success      200  {object}  dto.Customer
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /api/customers/{code} [put]
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := chi.URLParam(r, "code")

	var body dto.Customer
	if err := utils.DecodeBody(r, &body); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(body); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	err := h.svc.UpdateCustomer(ctx, code, dto.CustomerToEntity(body))
	switch {
	case errors.Is(err, entities.ErrCustomerNotFound):
		recordWrites.WithLabelValues("customers", "update", "not_found").Inc()
		utils.WriteError(w, "customer not found", http.StatusNotFound)
		return
	case errors.Is(err, entities.ErrConflict):
		recordWrites.WithLabelValues("customers", "update", "conflict").Inc()
		utils.WriteError(w, "customer conflicts with existing data", http.StatusConflict)
		return
	case err != nil:
		recordWrites.WithLabelValues("customers", "update", "error").Inc()
		h.logger.ErrorContext(ctx, "failed to update customer", slog.Any("error", err), slog.String("code", code))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	recordWrites.WithLabelValues("customers", "update", "ok").Inc()
	utils.WriteJSON(w, body, http.StatusOK)
}

// Delete удаляет контрагента. Удаление отсутствующей записи не ошибка,
// но контрагент, на которого ссылаются лоты, не удаляется.
// @Summary      Удалить контрагента
// @Tags         customers
// @Param        code  path  string  true  "Код контрагента"
// @Success      204
// @Failure      409  {object}  utils.ErrorResponse
// @Router       /api/customers/{code} [delete]
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := chi.URLParam(r, "code")

	err := h.svc.DeleteCustomer(ctx, code)
	switch {
	case errors.Is(err, entities.ErrConflict):
		recordWrites.WithLabelValues("customers", "delete", "conflict").Inc()
		utils.WriteError(w, "customer is referenced by existing lots", http.StatusConflict)
		return
	case err != nil:
		recordWrites.WithLabelValues("customers", "delete", "error").Inc()
		h.logger.ErrorContext(ctx, "failed to delete customer", slog.Any("error", err), slog.String("code", code))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	recordWrites.WithLabelValues("customers", "delete", "ok").Inc()
	w.WriteHeader(http.StatusNoContent)
}
