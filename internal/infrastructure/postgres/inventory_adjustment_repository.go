package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
)

var _ repository.InventoryAdjustmentRepository = (*InventoryAdjustmentRepo)(nil)

// InventoryAdjustmentRepo implementación del puerto InventoryAdjustmentRepository.
// Los ajustes son inmutables: solo insert y lectura.
type InventoryAdjustmentRepo struct {
	q Querier
}

// NewInventoryAdjustmentRepository construye el adaptador.
func NewInventoryAdjustmentRepository(q Querier) *InventoryAdjustmentRepo {
	return &InventoryAdjustmentRepo{q: q}
}

const adjustmentSelect = `SELECT a.id, a.product_id, p.name, a.adjustment_type, a.quantity,
	a.stock_before, a.stock_after, a.reason, a.notes, a.created_at
	FROM inventory_adjustments a
	JOIN products p ON p.id = a.product_id`

func scanAdjustment(row pgx.Row) (*entity.InventoryAdjustment, error) {
	var a entity.InventoryAdjustment
	err := row.Scan(&a.ID, &a.ProductID, &a.ProductName, &a.AdjustmentType, &a.Quantity,
		&a.StockBefore, &a.StockAfter, &a.Reason, &a.Notes, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create registra un ajuste.
func (r *InventoryAdjustmentRepo) Create(a *entity.InventoryAdjustment) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO inventory_adjustments (id, product_id, adjustment_type, quantity, stock_before, stock_after, reason, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.ProductID, a.AdjustmentType, a.Quantity, a.StockBefore, a.StockAfter, a.Reason, a.Notes, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert adjustment: %w", err)
	}
	return nil
}

// GetByID obtiene un ajuste.
func (r *InventoryAdjustmentRepo) GetByID(id string) (*entity.InventoryAdjustment, error) {
	a, err := scanAdjustment(r.q.QueryRow(context.Background(), adjustmentSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}
	return a, nil
}

// adjustmentWhere arma las cláusulas de filtro compartidas entre List y Count.
func adjustmentWhere(f repository.AdjustmentFilters) (string, []any) {
	where := ` WHERE 1=1`
	var args []any
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(` AND p.name ILIKE $%d`, len(args))
	}
	if f.ProductID != "" {
		args = append(args, f.ProductID)
		where += fmt.Sprintf(` AND a.product_id = $%d`, len(args))
	}
	if f.Type != nil {
		args = append(args, *f.Type)
		where += fmt.Sprintf(` AND a.adjustment_type = $%d`, len(args))
	}
	if f.Reason != nil {
		args = append(args, *f.Reason)
		where += fmt.Sprintf(` AND a.reason = $%d`, len(args))
	}
	if f.FromDate != nil {
		args = append(args, *f.FromDate)
		where += fmt.Sprintf(` AND a.created_at >= $%d`, len(args))
	}
	if f.ToDate != nil {
		args = append(args, *f.ToDate)
		where += fmt.Sprintf(` AND a.created_at <= $%d`, len(args))
	}
	return where, args
}

// List lista ajustes del más reciente al más antiguo.
func (r *InventoryAdjustmentRepo) List(f repository.AdjustmentFilters) ([]*entity.InventoryAdjustment, error) {
	where, args := adjustmentWhere(f)
	args = append(args, f.Limit, f.Offset)
	query := adjustmentSelect + where + fmt.Sprintf(` ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryAdjustment
	for rows.Next() {
		a, err := scanAdjustment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Count cuenta ajustes bajo los mismos filtros de List.
func (r *InventoryAdjustmentRepo) Count(f repository.AdjustmentFilters) (int, error) {
	where, args := adjustmentWhere(f)
	query := `SELECT COUNT(*) FROM inventory_adjustments a JOIN products p ON p.id = a.product_id` + where
	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count adjustments: %w", err)
	}
	return total, nil
}
