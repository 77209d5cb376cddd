// Package stock concentra las reglas de mutación de inventario. Todas las
// funciones operan sobre un ProductRepository atado a la transacción del
// caller; nunca abren transacción propia.
package stock

import (
	"sort"

	"github.com/jhoicas/taller-pos-api/internal/domain"
	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
)

// Deduction cantidad a descontar de un producto dentro de un lote.
type Deduction struct {
	ProductID string
	Quantity  int
}

// DeductOne descuenta qty unidades de un producto bajo bloqueo de fila.
// El patrón es leer-con-lock, verificar, escribir: con el SELECT FOR UPDATE
// dos descuentos concurrentes del mismo producto se serializan y el stock
// nunca queda negativo.
func DeductOne(products repository.ProductRepository, productID string, qty int) error {
	product, err := products.GetForUpdate(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ProductNotFound(productID)
	}
	if product.Stock < qty {
		return domain.InsufficientStock(product.Name, product.Stock, qty)
	}
	return products.UpdateStock(productID, product.Stock-qty)
}

// DeductMany descuenta un lote de líneas en una sola pasada. Las líneas del
// mismo producto se agrupan antes de verificar, así un lote que en conjunto
// excede el stock se rechaza completo. Los bloqueos se toman en orden de ID
// para que dos lotes concurrentes no se interbloqueen; las escrituras van en
// un único BulkUpdateStock.
func DeductMany(products repository.ProductRepository, deductions []Deduction) error {
	wanted := make(map[string]int, len(deductions))
	ids := make([]string, 0, len(deductions))
	for _, d := range deductions {
		if _, seen := wanted[d.ProductID]; !seen {
			ids = append(ids, d.ProductID)
		}
		wanted[d.ProductID] += d.Quantity
	}
	sort.Strings(ids)

	updates := make([]entity.StockUpdate, 0, len(ids))
	for _, id := range ids {
		product, err := products.GetForUpdate(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ProductNotFound(id)
		}
		if product.Stock < wanted[id] {
			return domain.InsufficientStock(product.Name, product.Stock, wanted[id])
		}
		updates = append(updates, entity.StockUpdate{ProductID: id, NewStock: product.Stock - wanted[id]})
	}
	if len(updates) == 0 {
		return nil
	}
	return products.BulkUpdateStock(updates)
}

// Restore devuelve qty unidades al stock de un producto. Si el producto ya no
// existe (fue borrado después de venderse) la restauración se omite en
// silencio: el histórico de la línea vale más que el contador.
func Restore(products repository.ProductRepository, productID string, qty int) error {
	product, err := products.GetForUpdate(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return nil
	}
	return products.UpdateStock(productID, product.Stock+qty)
}

// Apply aplica un ajuste manual de inventario y devuelve el stock
// antes/después para el registro de auditoría. Un ajuste OUT que dejaría el
// stock negativo se rechaza.
func Apply(products repository.ProductRepository, productID string, adjType entity.AdjustmentType, qty int) (before, after int, err error) {
	product, err := products.GetForUpdate(productID)
	if err != nil {
		return 0, 0, err
	}
	if product == nil {
		return 0, 0, domain.ProductNotFound(productID)
	}
	before = product.Stock
	switch adjType {
	case entity.AdjustmentIn:
		after = before + qty
	case entity.AdjustmentOut:
		if before < qty {
			return 0, 0, domain.ErrInsufficientAdjustmentStock
		}
		after = before - qty
	default:
		return 0, 0, domain.Internal("tipo de ajuste desconocido: %s", adjType)
	}
	return before, after, products.UpdateStock(productID, after)
}
