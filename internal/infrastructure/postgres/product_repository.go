package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/taller-pos-api/internal/domain"
	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (id, category_id, name, description, unit, stock, min_stock, cost_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CategoryID, p.Name, p.Description, p.Unit, p.Stock, p.MinStock,
		p.CostPrice, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProductAlreadyExists
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

const productSelect = `
	SELECT p.id, p.category_id, p.name, p.description, p.unit, p.stock, p.min_stock, p.cost_price,
		p.created_at, p.updated_at, c.id, c.name, c.description
	FROM products p
	JOIN categories c ON c.id = p.category_id`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var c entity.Category
	err := row.Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Unit, &p.Stock, &p.MinStock,
		&p.CostPrice, &p.CreatedAt, &p.UpdatedAt, &c.ID, &c.Name, &c.Description,
	)
	if err != nil {
		return nil, err
	}
	p.Category = &c
	return &p, nil
}

// GetByID obtiene un producto vigente con su categoría.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(),
		productSelect+` WHERE p.id = $1 AND p.deleted_at IS NULL`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByName obtiene un producto por nombre, incluidos los archivados, para la
// política de revive.
func (r *ProductRepo) GetByName(name string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(),
		`SELECT id, category_id, name, description, unit, stock, min_stock, cost_price, created_at, updated_at, deleted_at
		 FROM products WHERE name = $1`, name,
	).Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Unit, &p.Stock, &p.MinStock,
		&p.CostPrice, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by name: %w", err)
	}
	return &p, nil
}

// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) y la devuelve.
// Es la base del patrón leer-verificar-descontar del stock.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(),
		`SELECT id, category_id, name, description, unit, stock, min_stock, cost_price, created_at, updated_at
		 FROM products WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, id,
	).Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Unit, &p.Stock, &p.MinStock,
		&p.CostPrice, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock product: %w", err)
	}
	return &p, nil
}

func productWhere(f repository.ProductFilters, args *[]any) string {
	where := ` WHERE p.deleted_at IS NULL`
	if f.Search != "" {
		*args = append(*args, "%"+f.Search+"%")
		where += fmt.Sprintf(` AND p.name ILIKE $%d`, len(*args))
	}
	if f.CategoryID != "" {
		*args = append(*args, f.CategoryID)
		where += fmt.Sprintf(` AND p.category_id = $%d`, len(*args))
	}
	if f.LowStock {
		where += ` AND p.stock <= p.min_stock`
	}
	return where
}

// List lista productos con filtros y paginación.
func (r *ProductRepo) List(f repository.ProductFilters) ([]*entity.Product, error) {
	var args []any
	query := productSelect + productWhere(f, &args)
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(` ORDER BY p.name LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Count cuenta productos que cumplen los filtros.
func (r *ProductRepo) Count(f repository.ProductFilters) (int, error) {
	var args []any
	query := `SELECT COUNT(*) FROM products p` + productWhere(f, &args)
	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

// Update actualiza un producto sin tocar su stock.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products SET category_id = $2, name = $3, description = $4, unit = $5,
			min_stock = $6, cost_price = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CategoryID, p.Name, p.Description, p.Unit, p.MinStock, p.CostPrice, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProductAlreadyExists
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock fija el stock resultante de un producto.
func (r *ProductRepo) UpdateStock(productID string, newStock int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`,
		productID, newStock,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// BulkUpdateStock aplica varias actualizaciones de stock en la misma unidad de trabajo.
func (r *ProductRepo) BulkUpdateStock(updates []entity.StockUpdate) error {
	for _, u := range updates {
		if err := r.UpdateStock(u.ProductID, u.NewStock); err != nil {
			return err
		}
	}
	return nil
}

// SoftDelete archiva un producto.
func (r *ProductRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}
	return nil
}

// Restore revive un producto archivado.
func (r *ProductRepo) Restore(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET deleted_at = NULL, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("restore product: %w", err)
	}
	return nil
}
