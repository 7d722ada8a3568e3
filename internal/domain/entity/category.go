package entity

import (
	"strings"
	"time"
)

// Tipos de artículo de una categoría.
const (
	ItemKindSingle = "single" // cada unidad física es un registro propio (IMEI/serial)
	ItemKindBulk   = "bulk"   // muchas unidades comparten un registro con cantidad agregada
)

// Tipos de identificador único para categorías single.
const (
	SKUTypeIMEI   = "imei"
	SKUTypeSerial = "serial"
)

// Category agrupa productos y fija cómo se rastrean sus unidades.
// ItemKind es inmutable una vez existen productos bajo la categoría.
type Category struct {
	ID        string
	Name      string
	ItemKind  string // single | bulk
	SKUType   string // imei | serial (solo single)
	Code      string // prefijo del código de producto, único
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsSingleItem indica si cada unidad se rastrea individualmente.
func (c *Category) IsSingleItem() bool { return c.ItemKind == ItemKindSingle }

// IsBulkItem indica si la categoría maneja cantidad agregada.
func (c *Category) IsBulkItem() bool { return c.ItemKind == ItemKindBulk }

// DeriveCategoryCode deriva el código de una categoría a partir de su nombre:
// primera letra en mayúscula + sufijo fijo "FSL" (ej. "Phones" -> "PFSL").
func DeriveCategoryCode(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return strings.ToUpper(trimmed[:1]) + "FSL"
}
