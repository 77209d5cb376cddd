package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo proyecciones de solo lectura para el dashboard.
// Solo cuenta ventas COMPLETED para ingresos y top de ítems.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// OrdersByStatus cuenta órdenes vigentes agrupadas por estado.
func (r *AnalyticsRepo) OrdersByStatus() ([]repository.OrderStatusCount, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT status, COUNT(*) FROM orders WHERE deleted_at IS NULL GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("orders by status: %w", err)
	}
	defer rows.Close()
	var counts []repository.OrderStatusCount
	for rows.Next() {
		var c repository.OrderStatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// Revenue agrega los totales de ventas completadas en el rango.
func (r *AnalyticsRepo) Revenue(from, to time.Time) (*repository.RevenueSummary, error) {
	var s repository.RevenueSummary
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(total_usd), 0), COALESCE(SUM(total_ves), 0), COUNT(*)
		 FROM sales
		 WHERE deleted_at IS NULL AND status = 'COMPLETED' AND created_at >= $1 AND created_at <= $2`,
		from, to,
	).Scan(&s.TotalUSD, &s.TotalVES, &s.SalesCount)
	if err != nil {
		return nil, fmt.Errorf("revenue: %w", err)
	}
	return &s, nil
}

// TopItems une líneas de servicio y de producto de ventas completadas
// y devuelve los más vendidos por cantidad.
func (r *AnalyticsRepo) TopItems(from, to time.Time, limit int) ([]repository.TopItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT t.id, t.name, t.kind, SUM(t.quantity)::int AS qty, SUM(t.revenue) AS revenue FROM (
			SELECT sv.id, sv.name, 'SERVICE' AS kind, d.quantity, d.subtotal AS revenue
			FROM sale_details d
			JOIN sales s ON s.id = d.sale_id
			JOIN services sv ON sv.id = d.service_id
			WHERE d.deleted_at IS NULL AND s.deleted_at IS NULL AND s.status = 'COMPLETED'
			  AND s.created_at >= $1 AND s.created_at <= $2
			UNION ALL
			SELECT p.id, p.name, 'PRODUCT' AS kind, d.quantity, d.subtotal AS revenue
			FROM sale_details d
			JOIN sales s ON s.id = d.sale_id
			JOIN products p ON p.id = d.product_id
			WHERE d.deleted_at IS NULL AND s.deleted_at IS NULL AND s.status = 'COMPLETED'
			  AND s.created_at >= $1 AND s.created_at <= $2
		) t
		GROUP BY t.id, t.name, t.kind
		ORDER BY qty DESC
		LIMIT $3`,
		from, to, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top items: %w", err)
	}
	defer rows.Close()
	var items []repository.TopItem
	for rows.Next() {
		var it repository.TopItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Kind, &it.Quantity, &it.Revenue); err != nil {
			return nil, fmt.Errorf("scan top item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// LowStockProducts lista productos vigentes con stock en o bajo su mínimo.
func (r *AnalyticsRepo) LowStockProducts(limit int) ([]repository.LowStockProduct, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, stock, min_stock
		 FROM products
		 WHERE deleted_at IS NULL AND stock <= min_stock
		 ORDER BY stock - min_stock ASC, name
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("low stock products: %w", err)
	}
	defer rows.Close()
	var list []repository.LowStockProduct
	for rows.Next() {
		var p repository.LowStockProduct
		if err := rows.Scan(&p.ID, &p.Name, &p.Stock, &p.MinStock); err != nil {
			return nil, fmt.Errorf("scan low stock product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
