package entity

// SequenceCounter es la única autoridad para el siguiente valor de un esquema
// de numeración. Muta solo vía incremento bajo bloqueo de fila (SELECT FOR UPDATE)
// dentro de la transacción del caller.
type SequenceCounter struct {
	ScopeKey string // ej. "sale:2025" (por año), "receipt" (global)
	Counter  int64
}
