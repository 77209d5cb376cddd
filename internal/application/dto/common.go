package dto

// PageRequest paginación para listados (page empieza en 1).
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// DefaultPage devuelve la página con valores por defecto aplicados.
func (p PageRequest) DefaultPage() PageRequest {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}

// Offset calcula el offset SQL a partir de la página.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageMeta metadatos de página en respuestas de listado.
type PageMeta struct {
	TotalRecords int `json:"totalRecords"`
	CurrentPage  int `json:"currentPage"`
	Limit        int `json:"limit"`
	TotalPages   int `json:"totalPages"`
}

// NewPageMeta construye los metadatos a partir del total y la página pedida.
func NewPageMeta(totalRecords int, p PageRequest) PageMeta {
	totalPages := totalRecords / p.Limit
	if totalRecords%p.Limit != 0 {
		totalPages++
	}
	return PageMeta{
		TotalRecords: totalRecords,
		CurrentPage:  p.Page,
		Limit:        p.Limit,
		TotalPages:   totalPages,
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListResponse envoltura estándar de listados paginados.
type ListResponse struct {
	Data any      `json:"data"`
	Meta PageMeta `json:"meta"`
}
