package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Status  string `json:"status"` // siempre "fail" o "error"
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Fail construye un ErrorResponse de fallo esperado (4xx).
func Fail(code, message string) ErrorResponse {
	return ErrorResponse{Status: "fail", Code: code, Message: message}
}

// Error construye un ErrorResponse de error interno (5xx) sin filtrar detalle.
func Error(code, message string) ErrorResponse {
	return ErrorResponse{Status: "error", Code: code, Message: message}
}
