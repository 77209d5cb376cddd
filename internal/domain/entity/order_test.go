package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
)

func TestOrderCanTransitionTo(t *testing.T) {
	all := []entity.OrderStatus{
		entity.OrderStatusPending,
		entity.OrderStatusInProgress,
		entity.OrderStatusCompleted,
		entity.OrderStatusCancelled,
	}

	// Tabla dirigida: toda combinación fuera de ella está prohibida.
	allowed := map[entity.OrderStatus]map[entity.OrderStatus]bool{
		entity.OrderStatusPending:    {entity.OrderStatusInProgress: true, entity.OrderStatusCancelled: true},
		entity.OrderStatusInProgress: {entity.OrderStatusCompleted: true, entity.OrderStatusCancelled: true},
		entity.OrderStatusCompleted:  {entity.OrderStatusCancelled: true},
		entity.OrderStatusCancelled:  {},
	}

	for _, from := range all {
		for _, to := range all {
			o := &entity.Order{Status: from}
			assert.Equal(t, allowed[from][to], o.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestSaleCanTransitionTo(t *testing.T) {
	all := []entity.SaleStatus{
		entity.SaleStatusCompleted,
		entity.SaleStatusRefunded,
		entity.SaleStatusCancelled,
	}

	allowed := map[entity.SaleStatus]map[entity.SaleStatus]bool{
		entity.SaleStatusCompleted: {entity.SaleStatusRefunded: true},
		entity.SaleStatusRefunded:  {entity.SaleStatusCancelled: true},
		entity.SaleStatusCancelled: {},
	}

	for _, from := range all {
		for _, to := range all {
			s := &entity.Sale{Status: from}
			assert.Equal(t, allowed[from][to], s.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestSaleAcceptsPayments(t *testing.T) {
	assert.True(t, (&entity.Sale{Status: entity.SaleStatusCompleted}).AcceptsPayments())
	assert.False(t, (&entity.Sale{Status: entity.SaleStatusRefunded}).AcceptsPayments())
	assert.False(t, (&entity.Sale{Status: entity.SaleStatusCancelled}).AcceptsPayments())
}

func TestItemRef(t *testing.T) {
	svc := entity.ServiceRef("s1")
	assert.True(t, svc.IsService())
	assert.False(t, svc.IsProduct())
	assert.True(t, svc.Valid())
	assert.NotNil(t, svc.ServiceID())
	assert.Nil(t, svc.ProductID())

	prod := entity.ProductRef("p1")
	assert.True(t, prod.IsProduct())
	assert.NotNil(t, prod.ProductID())

	assert.False(t, entity.ItemRef{}.Valid())
}

func TestItemRefFromColumns(t *testing.T) {
	id := "x"

	assert.Equal(t, entity.ServiceRef("x"), entity.ItemRefFromColumns(&id, nil))
	assert.Equal(t, entity.ProductRef("x"), entity.ItemRefFromColumns(nil, &id))
	assert.False(t, entity.ItemRefFromColumns(nil, nil).Valid())
}

func TestPaymentTargetFromColumns(t *testing.T) {
	id := "x"

	assert.Equal(t, entity.OrderTarget("x"), entity.PaymentTargetFromColumns(&id, nil))
	assert.Equal(t, entity.SaleTarget("x"), entity.PaymentTargetFromColumns(nil, &id))
}

func TestPaymentIsReversal(t *testing.T) {
	assert.True(t, (&entity.Payment{AmountUSD: decimal.NewFromInt(-5)}).IsReversal())
	assert.False(t, (&entity.Payment{AmountUSD: decimal.NewFromInt(5)}).IsReversal())
	assert.False(t, (&entity.Payment{AmountUSD: decimal.Zero}).IsReversal())
}

func TestOrderDetailSubtotal(t *testing.T) {
	d := &entity.OrderDetail{Quantity: 3, PriceAtTime: decimal.RequireFromString("8.50")}
	assert.True(t, d.Subtotal().Equal(decimal.RequireFromString("25.50")))
}
