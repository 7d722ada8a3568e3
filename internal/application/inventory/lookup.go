package inventory

import (
	"context"
	"strings"

	"github.com/fieldmax/pos-api/internal/domain/entity"
	"github.com/fieldmax/pos-api/internal/domain/repository"
)

// LookupUseCase consulta disponibilidad por código de producto, SKU o barcode
// (lectura sin bloqueo; la verdad final la decide el motor de ventas bajo lock).
type LookupUseCase struct {
	productRepo repository.ProductRepository
}

// NewLookupUseCase construye el caso de uso.
func NewLookupUseCase(productRepo repository.ProductRepository) *LookupUseCase {
	return &LookupUseCase{productRepo: productRepo}
}

// Availability es el resultado de una consulta de disponibilidad.
type Availability struct {
	Found    bool
	Status   string
	Quantity int
	// Unidades single que comparten la llave (ej. mismo modelo, distinto serial).
	Units int
}

// LookupAvailability resuelve la llave contra productos activos.
// Para llaves que agrupan varias unidades single, Quantity es el número de
// unidades disponibles; Status es available si hay al menos una, sold si todas
// se vendieron. Para bulk refleja el registro compartido.
func (uc *LookupUseCase) LookupAvailability(_ context.Context, key string) (*Availability, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return &Availability{}, nil
	}
	products, err := uc.productRepo.FindByKey(key)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return &Availability{}, nil
	}

	if products[0].ItemKind == entity.ItemKindBulk {
		p := products[0]
		return &Availability{Found: true, Status: p.Status, Quantity: p.Quantity, Units: 1}, nil
	}

	available := 0
	for _, p := range products {
		if p.Status == entity.StatusAvailable && p.Quantity > 0 {
			available++
		}
	}
	status := entity.StatusSold
	if available > 0 {
		status = entity.StatusAvailable
	}
	return &Availability{Found: true, Status: status, Quantity: available, Units: len(products)}, nil
}
