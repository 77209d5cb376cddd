package entity

// ItemKind distingue el tipo de ítem referenciado por una línea.
type ItemKind string

const (
	ItemKindService ItemKind = "SERVICE"
	ItemKindProduct ItemKind = "PRODUCT"
)

// ItemRef referencia exactamente uno de {servicio, producto}. Modela como
// unión etiquetada lo que en la base son dos columnas nullable, eliminando el
// estado inválido "ninguno o ambos".
type ItemRef struct {
	Kind ItemKind
	ID   string
}

// ServiceRef construye la referencia a un servicio.
func ServiceRef(id string) ItemRef {
	return ItemRef{Kind: ItemKindService, ID: id}
}

// ProductRef construye la referencia a un producto.
func ProductRef(id string) ItemRef {
	return ItemRef{Kind: ItemKindProduct, ID: id}
}

// IsService indica si la referencia apunta a un servicio.
func (r ItemRef) IsService() bool { return r.Kind == ItemKindService }

// IsProduct indica si la referencia apunta a un producto.
func (r ItemRef) IsProduct() bool { return r.Kind == ItemKindProduct }

// Valid indica si la referencia está correctamente formada.
func (r ItemRef) Valid() bool {
	return r.ID != "" && (r.Kind == ItemKindService || r.Kind == ItemKindProduct)
}

// ServiceID devuelve el id como puntero si la referencia es a servicio (para persistencia).
func (r ItemRef) ServiceID() *string {
	if r.IsService() {
		id := r.ID
		return &id
	}
	return nil
}

// ProductID devuelve el id como puntero si la referencia es a producto (para persistencia).
func (r ItemRef) ProductID() *string {
	if r.IsProduct() {
		id := r.ID
		return &id
	}
	return nil
}

// ItemRefFromColumns reconstruye la unión desde las dos columnas nullable.
// Devuelve zero value (no Valid) si ambas son nil.
func ItemRefFromColumns(serviceID, productID *string) ItemRef {
	switch {
	case serviceID != nil:
		return ServiceRef(*serviceID)
	case productID != nil:
		return ProductRef(*productID)
	default:
		return ItemRef{}
	}
}
