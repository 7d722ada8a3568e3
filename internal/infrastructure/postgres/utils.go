package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fieldmax/pos-api/internal/domain"
)

// Códigos SQLSTATE que los repos traducen a errores de dominio.
const (
	codeUniqueViolation  = "23505"
	codeLockNotAvailable = "55P03" // lock_timeout agotado esperando FOR UPDATE
	codeQueryCanceled    = "57014" // statement_timeout / cancelación
)

// isUniqueViolation: el INSERT chocó con un constraint único. El fallback por
// substring cubre drivers que envuelven el PgError en texto plano.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

// isLockContention: la espera por un bloqueo de fila venció (otra tx tiene la
// fila y no soltó a tiempo) o el statement fue cancelado.
func isLockContention(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeLockNotAvailable || pgErr.Code == codeQueryCanceled
	}
	return false
}

// translateTxErr mapea la contención de bloqueos a ErrResourceBusy para que el
// caller la trate como conflicto reintentable; el resto pasa sin tocar.
func translateTxErr(err error) error {
	if err == nil {
		return nil
	}
	if isLockContention(err) {
		return fmt.Errorf("%w: %s", domain.ErrResourceBusy, err.Error())
	}
	return err
}
