package document

import (
	"context"

	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con todos los
// repositorios que participan en una operación de documento: consecutivo,
// cabecera, líneas, movimientos y proyección comparten la misma frontera
// atómica, de modo que un abort revierte también el consecutivo asignado.
type TxRunner interface {
	RunDocument(ctx context.Context, fn func(
		docRepo repository.DocumentRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		seqRepo repository.SequenceRepository,
	) error) error
}
