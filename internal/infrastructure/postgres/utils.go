package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tu-usuario/retail-pos/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// mapError traduce errores del driver a la taxonomía de dominio:
//   - 23505 unique_violation → ErrDuplicate
//   - 23503 foreign_key_violation / 23514 check_violation → ErrValidationFailed
//   - 40001 serialization_failure / 40P01 deadlock_detected → ErrConflict
//     (el caller reintenta la operación completa desde cero)
//   - clase 08 (conexión), 53 (recursos), 57 (intervención) → ErrStorageUnavailable
//   - errores no-pg (dial, pool cerrado) → ErrStorageUnavailable
//
// La cancelación del contexto del caller pasa sin traducir: un timeout propio
// no es una caída del storage.
//
// Cualquier otro código de pg se envuelve tal cual: no es transitorio ni de
// entrada, y merece investigación.
func mapError(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
		case pgErr.Code == "23503" || pgErr.Code == "23514":
			return fmt.Errorf("%s: %w", op, domain.ErrValidationFailed)
		case pgErr.Code == "40001" || pgErr.Code == "40P01":
			return fmt.Errorf("%s: %w", op, domain.ErrConflict)
		case len(pgErr.Code) >= 2 && (pgErr.Code[:2] == "08" || pgErr.Code[:2] == "53" || pgErr.Code[:2] == "57"):
			return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
}
