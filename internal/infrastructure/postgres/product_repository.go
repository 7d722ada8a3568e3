package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fieldmax/pos-api/internal/domain"
	"github.com/fieldmax/pos-api/internal/domain/entity"
	"github.com/fieldmax/pos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// productColumns columnas seleccionadas en todas las lecturas de producto.
// item_kind se denormaliza desde la categoría vía JOIN.
const productColumns = `
	p.id, p.category_id, c.item_kind, p.name, p.product_code, p.sku_value, p.barcode,
	p.quantity, p.buying_price, p.selling_price, p.status, p.owner_id, p.is_active,
	p.created_at, p.updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. Cantidad y estado mutan luego solo vía asientos de stock.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, category_id, name, product_code, sku_value, barcode,
			quantity, buying_price, selling_price, status, owner_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.CategoryID, product.Name, product.ProductCode, product.SKUValue,
		product.Barcode, product.Quantity, product.BuyingPrice, product.SellingPrice,
		product.Status, product.OwnerID, product.IsActive, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1`
	p, err := r.getOne(query, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene un producto y bloquea su fila por el resto de la transacción.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
		FOR UPDATE OF p`
	p, err := r.getOne(query, id)
	if err != nil {
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) getOne(query string, args ...any) (*entity.Product, error) {
	var p entity.Product
	var sku, barcode *string
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.CategoryID, &p.ItemKind, &p.Name, &p.ProductCode, &sku, &barcode,
		&p.Quantity, &p.BuyingPrice, &p.SellingPrice, &p.Status, &p.OwnerID, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if sku != nil {
		p.SKUValue = *sku
	}
	if barcode != nil {
		p.Barcode = *barcode
	}
	return &p, nil
}

// Update actualiza cantidad, precios, estado y flags del producto.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, quantity = $3, buying_price = $4, selling_price = $5,
			status = $6, owner_id = $7, is_active = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Quantity, product.BuyingPrice, product.SellingPrice,
		product.Status, product.OwnerID, product.IsActive, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List lista productos activos con paginación.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p JOIN categories c ON c.id = p.category_id
		WHERE p.is_active ORDER BY p.created_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// FindByKey resuelve candidatos activos por código de producto, SKU o barcode (sin bloqueo).
func (r *ProductRepo) FindByKey(key string) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p JOIN categories c ON c.id = p.category_id
		WHERE p.is_active AND (p.product_code = $1 OR p.sku_value = $1 OR p.barcode = $1)
		ORDER BY p.created_at ASC`
	return r.list(query, key)
}

// FindByKeyForUpdate resuelve candidatos activos NO vendidos por la misma llave,
// bloqueando las filas. Orden created_at ascendente: el candidato más antiguo primero.
func (r *ProductRepo) FindByKeyForUpdate(key string) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p JOIN categories c ON c.id = p.category_id
		WHERE p.is_active AND p.status <> 'sold'
			AND (p.product_code = $1 OR p.sku_value = $1 OR p.barcode = $1)
		ORDER BY p.created_at ASC
		FOR UPDATE OF p`
	return r.list(query, key)
}

func (r *ProductRepo) list(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		var sku, barcode *string
		if err := rows.Scan(
			&p.ID, &p.CategoryID, &p.ItemKind, &p.Name, &p.ProductCode, &sku, &barcode,
			&p.Quantity, &p.BuyingPrice, &p.SellingPrice, &p.Status, &p.OwnerID, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if sku != nil {
			p.SKUValue = *sku
		}
		if barcode != nil {
			p.Barcode = *barcode
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// AnySoldByKey indica si la llave corresponde a unidades ya vendidas.
func (r *ProductRepo) AnySoldByKey(key string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(), `
		SELECT EXISTS(
			SELECT 1 FROM products
			WHERE is_active AND status = 'sold'
				AND (product_code = $1 OR sku_value = $1 OR barcode = $1))`, key,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("any sold by key: %w", err)
	}
	return exists, nil
}

// MaxProductCode devuelve el mayor código existente con el prefijo dado; "" si no hay.
func (r *ProductRepo) MaxProductCode(prefix string) (string, error) {
	var code *string
	err := r.q.QueryRow(context.Background(), `
		SELECT MAX(product_code) FROM products WHERE product_code LIKE $1 || '%'`, prefix,
	).Scan(&code)
	if err != nil {
		return "", fmt.Errorf("max product code: %w", err)
	}
	if code == nil {
		return "", nil
	}
	return *code, nil
}

// CountByCategory cuenta los productos de la categoría.
func (r *ProductRepo) CountByCategory(categoryID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return n, nil
}

// ExistsBarcode indica si el barcode ya está en uso.
func (r *ProductRepo) ExistsBarcode(barcode string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM products WHERE barcode = $1)`, barcode,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists barcode: %w", err)
	}
	return exists, nil
}
