package repository

import "github.com/fieldmax/pos-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para productos.
// Las variantes ForUpdate bloquean las filas (SELECT FOR UPDATE) y deben
// usarse dentro de una transacción.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto por el resto de la transacción.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)

	// FindByKey resuelve candidatos activos por código de producto, SKU o barcode
	// (lectura sin bloqueo, para consultas de disponibilidad).
	FindByKey(key string) ([]*entity.Product, error)
	// FindByKeyForUpdate resuelve candidatos activos NO vendidos por la misma
	// llave, bloqueando las filas y ordenando por created_at ascendente (FIFO).
	FindByKeyForUpdate(key string) ([]*entity.Product, error)
	// AnySoldByKey indica si la llave corresponde a unidades ya vendidas
	// (para distinguir "vendido" de "no existe" en los rechazos).
	AnySoldByKey(key string) (bool, error)

	// MaxProductCode devuelve el mayor código existente con el prefijo dado
	// (escaneo consultivo para la numeración de códigos); "" si no hay ninguno.
	MaxProductCode(prefix string) (string, error)
	CountByCategory(categoryID string) (int, error)
	ExistsBarcode(barcode string) (bool, error)
}
