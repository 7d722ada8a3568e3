package inventory

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/fieldmax/pos-api/internal/domain/entity"
	"github.com/fieldmax/pos-api/internal/domain/repository"
)

// barcodeAttempts acota los reintentos de unicidad antes del fallback por timestamp.
const barcodeAttempts = 5

// NextProductCode calcula el siguiente código de producto para una categoría:
// prefijo de la categoría + número secuencial con cero-padding a 3 dígitos.
// El número sale de un escaneo consultivo del máximo código existente con ese
// prefijo; NO es una secuencia atómica dura. La constraint de unicidad en la
// persistencia es la autoridad final: una colisión (23505) debe disparar un
// reintento con el número recalculado, no un fallo duro.
func NextProductCode(productRepo repository.ProductRepository, category *entity.Category) (string, error) {
	prefix := category.Code
	if prefix == "" {
		return "", fmt.Errorf("categoría %s sin código", category.ID)
	}
	maxCode, err := productRepo.MaxProductCode(prefix)
	if err != nil {
		return "", fmt.Errorf("max código con prefijo %q: %w", prefix, err)
	}
	next := 1
	if maxCode != "" {
		suffix := strings.TrimPrefix(maxCode, prefix)
		if last, perr := strconv.Atoi(suffix); perr == nil {
			next = last + 1
		}
	}
	return fmt.Sprintf("%s%03d", prefix, next), nil
}

// NextBarcode genera un barcode para un producto bulk cuando no se suministró
// uno: segmento de categoría de ancho fijo + secuencial dentro de la categoría
// + sufijo aleatorio. Verifica unicidad por consulta con reintentos acotados y
// cae a un valor derivado del timestamp si todos colisionan. Es seguro
// llamarla dentro de la misma transacción que crea el producto.
func NextBarcode(productRepo repository.ProductRepository, category *entity.Category, now time.Time) (string, error) {
	count, err := productRepo.CountByCategory(category.ID)
	if err != nil {
		return "", fmt.Errorf("contar productos de la categoría: %w", err)
	}
	catSeg := fmt.Sprintf("%03d", categorySegment(category))
	for i := 0; i < barcodeAttempts; i++ {
		candidate := fmt.Sprintf("%s%04d%04d", catSeg, count+1+i, rand.Intn(10000))
		exists, err := productRepo.ExistsBarcode(candidate)
		if err != nil {
			return "", fmt.Errorf("verificar barcode: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
	// Fallback: derivado del timestamp, prácticamente incolisionable.
	return fmt.Sprintf("%s%010d", catSeg, now.UnixNano()%10_000_000_000), nil
}

// categorySegment deriva un identificador numérico estable (0-999) del código
// de la categoría, para el segmento de ancho fijo del barcode.
func categorySegment(category *entity.Category) int {
	sum := 0
	for _, b := range []byte(category.Code) {
		sum += int(b)
	}
	return sum % 1000
}
