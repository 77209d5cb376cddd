package domain

import (
	"errors"
	"fmt"
)

// Code identifica cada variante de error de negocio. El conjunto es cerrado:
// los handlers HTTP despachan por código, nunca por inspección de tipos.
type Code string

const (
	// No encontrado
	CodeOrderNotFound         Code = "ORDER_NOT_FOUND"
	CodeOrderDetailNotFound   Code = "ORDER_DETAIL_NOT_FOUND"
	CodeSaleNotFound          Code = "SALE_NOT_FOUND"
	CodePaymentNotFound       Code = "PAYMENT_NOT_FOUND"
	CodeProductNotFound       Code = "PRODUCT_NOT_FOUND"
	CodeServiceNotFound       Code = "SERVICE_NOT_FOUND"
	CodeCategoryNotFound      Code = "CATEGORY_NOT_FOUND"
	CodeCustomerNotFound      Code = "CUSTOMER_NOT_FOUND"
	CodePaymentMethodNotFound Code = "PAYMENT_METHOD_NOT_FOUND"
	CodeContactNotFound       Code = "CONTACT_NOT_FOUND"
	CodeAdjustmentNotFound    Code = "ADJUSTMENT_NOT_FOUND"

	// Conflicto
	CodeCategoryAlreadyExists      Code = "CATEGORY_ALREADY_EXISTS"
	CodeServiceAlreadyExists       Code = "SERVICE_ALREADY_EXISTS"
	CodeProductAlreadyExists       Code = "PRODUCT_ALREADY_EXISTS"
	CodePaymentMethodAlreadyExists Code = "PAYMENT_METHOD_ALREADY_EXISTS"
	CodeContactAlreadyExists       Code = "CONTACT_ALREADY_EXISTS"
	CodeOrderAlreadyPaid           Code = "ORDER_ALREADY_PAID"
	CodeSaleAlreadyPaid            Code = "SALE_ALREADY_PAID"
	CodeOrderAlreadyHasSale        Code = "ORDER_ALREADY_HAS_SALE"

	// Validación
	CodeInvalidOrderStatusTransition Code = "INVALID_ORDER_STATUS_TRANSITION"
	CodeInvalidSaleStatusTransition  Code = "INVALID_SALE_STATUS_TRANSITION"
	CodeInvalidOrderDetail           Code = "INVALID_ORDER_DETAIL"
	CodeInvalidOrderForSale          Code = "INVALID_ORDER_FOR_SALE"
	CodeInsufficientStock            Code = "INSUFFICIENT_STOCK"
	CodeInsufficientAdjustmentStock  Code = "INSUFFICIENT_ADJUSTMENT_STOCK"
	CodeInvalidAdjustment            Code = "INVALID_ADJUSTMENT"
	CodeInvalidPaymentAmount         Code = "INVALID_PAYMENT_AMOUNT"
	CodeInvalidPaymentTarget         Code = "INVALID_PAYMENT_TARGET"
	CodeInvalidPaymentStatus         Code = "INVALID_PAYMENT_STATUS"
	CodePaymentExceedsOrderTotal     Code = "PAYMENT_EXCEEDS_ORDER_TOTAL"
	CodePaymentExceedsSaleTotal      Code = "PAYMENT_EXCEEDS_SALE_TOTAL"
	CodeSalePaymentsTotalMismatch    Code = "SALE_PAYMENTS_TOTAL_MISMATCH"
	CodeReversalRequiresNotes        Code = "REVERSAL_REQUIRES_NOTES"
	CodeServiceInactive              Code = "SERVICE_INACTIVE"
	CodePaymentMethodInactive        Code = "PAYMENT_METHOD_INACTIVE"
	CodeSaleNotPayable               Code = "SALE_NOT_PAYABLE"
)

// BusinessError error de negocio: corregible por el caller, se propaga intacto
// hasta el boundary HTTP donde se mapea al status correspondiente.
type BusinessError struct {
	Code    Code
	Status  int // equivalente HTTP (404, 409, 422...)
	Message string
}

func (e *BusinessError) Error() string { return e.Message }

// Is compara por Code, de modo que errors.Is(err, domain.ErrOrderNotFound)
// funciona aunque el mensaje lleve datos del caso concreto.
func (e *BusinessError) Is(target error) bool {
	var be *BusinessError
	if errors.As(target, &be) {
		return e.Code == be.Code
	}
	return false
}

func business(code Code, status int, format string, args ...any) *BusinessError {
	return &BusinessError{Code: code, Status: status, Message: fmt.Sprintf(format, args...)}
}

// Centinelas para errors.Is. Los constructores de abajo producen la misma
// variante con el mensaje del caso concreto.
var (
	ErrOrderNotFound         = business(CodeOrderNotFound, 404, "orden no encontrada")
	ErrOrderDetailNotFound   = business(CodeOrderDetailNotFound, 404, "detalle de orden no encontrado")
	ErrSaleNotFound          = business(CodeSaleNotFound, 404, "venta no encontrada")
	ErrPaymentNotFound       = business(CodePaymentNotFound, 404, "pago no encontrado")
	ErrProductNotFound       = business(CodeProductNotFound, 404, "producto no encontrado")
	ErrServiceNotFound       = business(CodeServiceNotFound, 404, "servicio no encontrado")
	ErrCategoryNotFound      = business(CodeCategoryNotFound, 404, "categoría no encontrada")
	ErrCustomerNotFound      = business(CodeCustomerNotFound, 404, "cliente no encontrado")
	ErrPaymentMethodNotFound = business(CodePaymentMethodNotFound, 404, "método de pago no encontrado")
	ErrContactNotFound       = business(CodeContactNotFound, 404, "contacto no encontrado")
	ErrAdjustmentNotFound    = business(CodeAdjustmentNotFound, 404, "ajuste de inventario no encontrado")

	ErrCategoryAlreadyExists      = business(CodeCategoryAlreadyExists, 409, "la categoría ya existe")
	ErrServiceAlreadyExists       = business(CodeServiceAlreadyExists, 409, "el servicio ya existe")
	ErrProductAlreadyExists       = business(CodeProductAlreadyExists, 409, "el producto ya existe")
	ErrPaymentMethodAlreadyExists = business(CodePaymentMethodAlreadyExists, 409, "el método de pago ya existe")
	ErrContactAlreadyExists       = business(CodeContactAlreadyExists, 409, "el contacto ya existe")
	ErrOrderAlreadyPaid           = business(CodeOrderAlreadyPaid, 409, "la orden ya está pagada")
	ErrSaleAlreadyPaid            = business(CodeSaleAlreadyPaid, 409, "la venta ya está pagada")
	ErrOrderAlreadyHasSale        = business(CodeOrderAlreadyHasSale, 409, "la orden ya tiene una venta asociada")

	ErrInvalidOrderStatusTransition = business(CodeInvalidOrderStatusTransition, 422, "transición de estado de orden inválida")
	ErrInvalidSaleStatusTransition  = business(CodeInvalidSaleStatusTransition, 422, "transición de estado de venta inválida")
	ErrInvalidOrderDetail           = business(CodeInvalidOrderDetail, 422, "detalle de orden inválido")
	ErrInvalidOrderForSale          = business(CodeInvalidOrderForSale, 422, "la orden no está lista para generar una venta")
	ErrInsufficientStock            = business(CodeInsufficientStock, 409, "stock insuficiente")
	ErrInsufficientAdjustmentStock  = business(CodeInsufficientAdjustmentStock, 409, "el ajuste dejaría el stock en negativo")
	ErrInvalidAdjustment            = business(CodeInvalidAdjustment, 422, "ajuste de inventario inválido")
	ErrInvalidPaymentAmount         = business(CodeInvalidPaymentAmount, 422, "monto de pago inválido")
	ErrInvalidPaymentTarget         = business(CodeInvalidPaymentTarget, 422, "el pago debe apuntar a exactamente una orden o una venta")
	ErrInvalidPaymentStatus         = business(CodeInvalidPaymentStatus, 422, "estado de cobro inválido")
	ErrPaymentExceedsOrderTotal     = business(CodePaymentExceedsOrderTotal, 422, "el pago excede el total de la orden")
	ErrPaymentExceedsSaleTotal      = business(CodePaymentExceedsSaleTotal, 422, "el pago excede el total de la venta")
	ErrSalePaymentsTotalMismatch    = business(CodeSalePaymentsTotalMismatch, 422, "los pagos no cuadran con el total de la venta")
	ErrReversalRequiresNotes        = business(CodeReversalRequiresNotes, 422, "un pago negativo (reverso) requiere notas")
	ErrServiceInactive              = business(CodeServiceInactive, 422, "el servicio está inactivo")
	ErrPaymentMethodInactive        = business(CodePaymentMethodInactive, 422, "el método de pago está inactivo")
	ErrSaleNotPayable               = business(CodeSaleNotPayable, 409, "la venta no admite pagos en su estado actual")
)

// Constructores con datos del caso. Mantienen el mismo Code que su centinela.

func OrderNotFound(id string) *BusinessError {
	return business(CodeOrderNotFound, 404, "orden %s no encontrada", id)
}

func OrderDetailNotFound(id string) *BusinessError {
	return business(CodeOrderDetailNotFound, 404, "detalle de orden %s no encontrado", id)
}

func SaleNotFound(id string) *BusinessError {
	return business(CodeSaleNotFound, 404, "venta %s no encontrada", id)
}

func PaymentNotFound(id string) *BusinessError {
	return business(CodePaymentNotFound, 404, "pago %s no encontrado", id)
}

func ProductNotFound(id string) *BusinessError {
	return business(CodeProductNotFound, 404, "producto %s no encontrado", id)
}

func ServiceNotFound(id string) *BusinessError {
	return business(CodeServiceNotFound, 404, "servicio %s no encontrado", id)
}

func CustomerNotFound(id string) *BusinessError {
	return business(CodeCustomerNotFound, 404, "cliente %s no encontrado", id)
}

func PaymentMethodNotFound(id string) *BusinessError {
	return business(CodePaymentMethodNotFound, 404, "método de pago %s no encontrado", id)
}

func ServiceInactive(name string) *BusinessError {
	return business(CodeServiceInactive, 422, "el servicio %q está inactivo y no puede agregarse", name)
}

func InsufficientStock(name string, available, requested int) *BusinessError {
	return business(CodeInsufficientStock, 409,
		"stock insuficiente para %q: disponible %d, solicitado %d", name, available, requested)
}

func InvalidOrderStatusTransition(from, to string) *BusinessError {
	return business(CodeInvalidOrderStatusTransition, 422,
		"no se puede pasar la orden de %s a %s", from, to)
}

func InvalidSaleStatusTransition(from, to string) *BusinessError {
	return business(CodeInvalidSaleStatusTransition, 422,
		"no se puede pasar la venta de %s a %s", from, to)
}

// InternalError error no corregible por el caller. Se registra con detalle
// completo y se expone al boundary como fallo genérico sin filtrar internals.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string { return e.Message }

func Internal(format string, args ...any) *InternalError {
	return &InternalError{Message: fmt.Sprintf(format, args...)}
}
