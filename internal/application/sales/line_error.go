package sales

import "fmt"

// Códigos de rechazo por línea.
const (
	RejectNotFound          = "NOT_FOUND"
	RejectAlreadySold       = "ALREADY_SOLD"
	RejectUnavailable       = "UNAVAILABLE"
	RejectInsufficientStock = "INSUFFICIENT_STOCK"
	RejectInvalidQuantity   = "INVALID_QUANTITY"
	RejectInvalidPrice      = "INVALID_PRICE"
)

// LineError identifica qué línea de la venta falló y por qué. El caller de una
// venta multi-ítem recibe la línea y la razón específicas, nunca un fallo
// genérico; la transacción completa ya fue revertida cuando se retorna.
type LineError struct {
	Line int    // índice 0-based de la línea rechazada
	Key  string // llave de búsqueda enviada por el caller
	Code string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("línea %d (%s): %s: %v", e.Line, e.Key, e.Code, e.Err)
}

// Unwrap expone el error de dominio subyacente (errors.Is sigue funcionando).
func (e *LineError) Unwrap() error { return e.Err }
