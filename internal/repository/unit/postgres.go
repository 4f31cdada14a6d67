package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/you-humble/supplement-inventory/internal/model"
)

const unitsTable = "units"

var unitColumns = []string{
	"id", "product_id", "sku", "lot_code", "purchase_order_id",
	"warehouse_id", "country", "state", "expiration_date", "cost",
	"reference", "reason",
	"received_at", "transferred_at", "arrived_at", "reserved_at", "sold_at", "disposed_at", "updated_at",
}

type pgRepository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

// NewPostgresUnitRepository stores units in the units table created by the
// goose migrations.
func NewPostgresUnitRepository(pool *pgxpool.Pool) *pgRepository {
	return &pgRepository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *pgRepository) UnitByID(ctx context.Context, id string) (*model.Unit, error) {
	const op = "unit.pgRepository.UnitByID"

	sqlStr, args, err := r.sb.
		Select(unitColumns...).
		From(unitsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	u, err := scanUnit(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUnitNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return u, nil
}

func (r *pgRepository) ListByProduct(ctx context.Context, productID string) ([]*model.Unit, error) {
	const op = "unit.pgRepository.ListByProduct"

	sqlStr, args, err := r.sb.
		Select(unitColumns...).
		From(unitsTable).
		Where(sq.Eq{"product_id": productID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]*model.Unit, 0)
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}

	return out, nil
}

func (r *pgRepository) CreateBatch(ctx context.Context, units []*model.Unit) error {
	const op = "unit.pgRepository.CreateBatch"

	q := r.sb.Insert(unitsTable).Columns(unitColumns...)
	n := 0
	for _, u := range units {
		if u == nil {
			continue
		}
		if u.ID == "" {
			return fmt.Errorf("%s: unit ID is empty", op)
		}
		q = q.Values(
			u.ID, u.ProductID, u.SKU, u.LotCode, u.PurchaseOrderID,
			u.WarehouseID, u.Country, string(u.State), u.ExpirationDate, u.Cost,
			u.Reference, u.Reason,
			u.ReceivedAt, u.TransferredAt, u.ArrivedAt, u.ReservedAt, u.SoldAt, u.DisposedAt, u.UpdatedAt,
		)
		n++
	}
	if n == 0 {
		return nil
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := r.pool.Exec(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UpdateLifecycle persists u only if the stored unit is still in state from.
func (r *pgRepository) UpdateLifecycle(ctx context.Context, u *model.Unit, from model.UnitState) error {
	const op = "unit.pgRepository.UpdateLifecycle"

	sqlStr, args, err := r.sb.
		Update(unitsTable).
		SetMap(sq.Eq{
			"state":          string(u.State),
			"warehouse_id":   u.WarehouseID,
			"country":        u.Country,
			"reference":      u.Reference,
			"reason":         u.Reason,
			"transferred_at": u.TransferredAt,
			"arrived_at":     u.ArrivedAt,
			"reserved_at":    u.ReservedAt,
			"sold_at":        u.SoldAt,
			"disposed_at":    u.DisposedAt,
			"updated_at":     u.UpdatedAt,
		}).
		Where(sq.Eq{"id": u.ID, "state": string(from)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ct, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if ct.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM units WHERE id = $1)", u.ID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return model.ErrUnitNotFound
	}
	return errors.Join(model.ErrInvalidTransition,
		fmt.Errorf("unit %s is no longer %s", u.ID, from))
}

func scanUnit(row pgx.Row) (*model.Unit, error) {
	var (
		u     model.Unit
		state string
	)
	err := row.Scan(
		&u.ID, &u.ProductID, &u.SKU, &u.LotCode, &u.PurchaseOrderID,
		&u.WarehouseID, &u.Country, &state, &u.ExpirationDate, &u.Cost,
		&u.Reference, &u.Reason,
		&u.ReceivedAt, &u.TransferredAt, &u.ArrivedAt, &u.ReservedAt, &u.SoldAt, &u.DisposedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.State = model.UnitState(state)
	return &u, nil
}
