package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tender-crm/internal/entities"
	"tender-crm/pkg/trm"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var customerColumns = []string{
	"customer_code", "customer_name", "is_organization", "is_person",
	"customer_inn", "customer_kpp", "customer_legal_address",
	"customer_postal_address", "customer_email", "customer_code_main",
}

var lotColumns = []string{
	"id", "lot_name", "customer_code", "price",
	"currency_code", "nds_rate", "place_delivery", "date_delivery",
}

type postgresRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewPostgresRepo(db *sqlx.DB) *postgresRepo {
	return &postgresRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *postgresRepo) ListCustomers(ctx context.Context) ([]entities.Customer, error) {
	query, args := r.qb.Select(customerColumns...).
		From("customers").
		OrderBy("customer_code").
		MustSql()

	var customers []Customer
	if err := r.selectContext(ctx, &customers, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select customers: %w", err)
	}

	result := make([]entities.Customer, 0, len(customers))
	for _, c := range customers {
		result = append(result, CustomerToEntity(c))
	}
	return result, nil
}

func (r *postgresRepo) GetCustomer(ctx context.Context, code string) (entities.Customer, error) {
	query, args := r.qb.Select(customerColumns...).
		From("customers").
		Where(sq.Eq{"customer_code": code}).
		MustSql()

	var customer Customer
	err := r.getContext(ctx, &customer, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Customer{}, entities.ErrCustomerNotFound
	}
	if err != nil {
		return entities.Customer{}, fmt.Errorf("failed to get customer: %w", err)
	}
	return CustomerToEntity(customer), nil
}

func (r *postgresRepo) CreateCustomer(ctx context.Context, c entities.Customer) error {
	query, args := r.qb.Insert("customers").
		Columns(customerColumns...).
		Values(
			c.Code, c.Name,
			c.Classification == entities.Organization,
			c.Classification == entities.Person,
			nullString(c.INN), nullString(c.KPP),
			nullString(c.LegalAddress), nullString(c.PostalAddress),
			nullString(c.Email), nullString(c.CodeMain),
		).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create customer: %w", translateConstraint(err))
	}
	return nil
}

func (r *postgresRepo) UpdateCustomer(ctx context.Context, code string, c entities.Customer) error {
	query, args := r.qb.Update("customers").
		Set("customer_name", c.Name).
		Set("is_organization", c.Classification == entities.Organization).
		Set("is_person", c.Classification == entities.Person).
		Set("customer_inn", nullString(c.INN)).
		Set("customer_kpp", nullString(c.KPP)).
		Set("customer_legal_address", nullString(c.LegalAddress)).
		Set("customer_postal_address", nullString(c.PostalAddress)).
		Set("customer_email", nullString(c.Email)).
		Set("customer_code_main", nullString(c.CodeMain)).
		Where(sq.Eq{"customer_code": code}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", translateConstraint(err))
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return entities.ErrCustomerNotFound
	}
	return nil
}

// DeleteCustomer идемпотентно: удаление отсутствующей записи не ошибка.
func (r *postgresRepo) DeleteCustomer(ctx context.Context, code string) error {
	query, args := r.qb.Delete("customers").
		Where(sq.Eq{"customer_code": code}).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete customer: %w", translateConstraint(err))
	}
	return nil
}

func (r *postgresRepo) ListLots(ctx context.Context) ([]entities.Lot, error) {
	query, args := r.qb.Select(lotColumns...).
		From("lots").
		OrderBy("id").
		MustSql()

	var lots []Lot
	if err := r.selectContext(ctx, &lots, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select lots: %w", err)
	}

	result := make([]entities.Lot, 0, len(lots))
	for _, l := range lots {
		result = append(result, LotToEntity(l))
	}
	return result, nil
}

func (r *postgresRepo) GetLot(ctx context.Context, id int64) (entities.Lot, error) {
	query, args := r.qb.Select(lotColumns...).
		From("lots").
		Where(sq.Eq{"id": id}).
		MustSql()

	var lot Lot
	err := r.getContext(ctx, &lot, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Lot{}, entities.ErrLotNotFound
	}
	if err != nil {
		return entities.Lot{}, fmt.Errorf("failed to get lot: %w", err)
	}
	return LotToEntity(lot), nil
}

// CreateLot возвращает идентификатор, назначенный базой.
func (r *postgresRepo) CreateLot(ctx context.Context, l entities.Lot) (int64, error) {
	date, err := nullDeliveryDate(l.DateDelivery)
	if err != nil {
		return 0, fmt.Errorf("invalid delivery date: %w", err)
	}

	query, args := r.qb.Insert("lots").
		Columns("lot_name", "customer_code", "price", "currency_code",
			"nds_rate", "place_delivery", "date_delivery").
		Values(l.Name, l.CustomerCode, nullPrice(l.Price), l.CurrencyCode,
			l.NDSRate, nullString(l.PlaceDelivery), date).
		Suffix("RETURNING id").
		MustSql()

	var id int64
	if err := r.getContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("failed to create lot: %w", translateConstraint(err))
	}
	return id, nil
}

func (r *postgresRepo) UpdateLot(ctx context.Context, id int64, l entities.Lot) error {
	date, err := nullDeliveryDate(l.DateDelivery)
	if err != nil {
		return fmt.Errorf("invalid delivery date: %w", err)
	}

	query, args := r.qb.Update("lots").
		Set("lot_name", l.Name).
		Set("customer_code", l.CustomerCode).
		Set("price", nullPrice(l.Price)).
		Set("currency_code", l.CurrencyCode).
		Set("nds_rate", l.NDSRate).
		Set("place_delivery", nullString(l.PlaceDelivery)).
		Set("date_delivery", date).
		Where(sq.Eq{"id": id}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update lot: %w", translateConstraint(err))
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return entities.ErrLotNotFound
	}
	return nil
}

func (r *postgresRepo) DeleteLot(ctx context.Context, id int64) error {
	query, args := r.qb.Delete("lots").
		Where(sq.Eq{"id": id}).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete lot: %w", err)
	}
	return nil
}

// translateConstraint переводит нарушения ограничений постгреса
// (дубликат ключа, внешний ключ, check) в доменную ошибку конфликта.
func translateConstraint(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505", "23503", "23514":
			return fmt.Errorf("%w: %s", entities.ErrConflict, pqErr.Message)
		}
	}
	return err
}

func (r *postgresRepo) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if tx := trm.ExtractTx(ctx); tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return r.db.ExecContext(ctx, query, args...)
}

func (r *postgresRepo) getContext(ctx context.Context, dest any, query string, args ...any) error {
	if tx := trm.ExtractTx(ctx); tx != nil {
		return tx.GetContext(ctx, dest, query, args...)
	}
	return r.db.GetContext(ctx, dest, query, args...)
}

func (r *postgresRepo) selectContext(ctx context.Context, dest any, query string, args ...any) error {
	if tx := trm.ExtractTx(ctx); tx != nil {
		return tx.SelectContext(ctx, dest, query, args...)
	}
	return r.db.SelectContext(ctx, dest, query, args...)
}
