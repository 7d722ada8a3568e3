package dto

// ErrorResponse cuerpo de error estándar de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Line señala la línea rechazada en ventas multi-ítem (índice 0-based).
	Line *int `json:"line,omitempty"`
}
