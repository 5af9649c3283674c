// Package inventory implementa el Stock Ledger: el log append-only de
// movimientos de cantidad por producto y la única regla que actualiza la
// proyección cacheada stock_quantity.
package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
	"github.com/tu-usuario/retail-pos/pkg/logger"
)

// StockLedger registra movimientos de inventario de forma transaccional con
// bloqueo de fila (SELECT FOR UPDATE) sobre el producto. La cantidad cacheada
// es siempre cantidad_anterior + delta leído bajo el lock: dos movimientos
// concurrentes sobre el mismo producto se serializan en el store y ninguno se
// pierde.
type StockLedger struct {
	txRunner    TxRunner
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
	notifier    LowStockNotifier
	log         *logger.Logger
}

// NewStockLedger construye el ledger. notifier puede ser nil (sin alertas).
func NewStockLedger(
	txRunner TxRunner,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	notifier LowStockNotifier,
	log *logger.Logger,
) *StockLedger {
	return &StockLedger{
		txRunner:    txRunner,
		movRepo:     movRepo,
		productRepo: productRepo,
		notifier:    notifier,
		log:         log,
	}
}

// MovementInput entrada para registrar un movimiento.
type MovementInput struct {
	ProductID     string
	Kind          string
	QuantityDelta int64 // firmado; nunca cero
	DocumentType  string
	DocumentID    string
	ReversalOf    string
	Notes         string
	Actor         string // UserID
}

// RecordMovement agrega un movimiento inmutable y ajusta la cantidad cacheada
// en la misma transacción. Devuelve la cantidad resultante; una cantidad
// negativa es sobreventa permitida, el caller decide si advertir. El evento de
// stock bajo (si aplica) se dispara después del commit, best-effort.
func (l *StockLedger) RecordMovement(ctx context.Context, input MovementInput) (movementID string, newQuantity int64, err error) {
	if err := validateInput(input); err != nil {
		return "", 0, err
	}
	var mov *entity.StockMovement
	var ev *LowStockEvent
	err = l.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		var txErr error
		mov, newQuantity, ev, txErr = l.RecordMovementInTx(ctx, movRepo, productRepo, input)
		return txErr
	})
	if err != nil {
		return "", 0, err
	}
	l.EmitLowStock(ev)
	return mov.ID, newQuantity, nil
}

// RecordMovementInTx registra el movimiento usando repositorios atados a la
// transacción del caller (el coordinador de documentos lo invoca así para que
// documento y movimientos compartan una sola frontera atómica). El evento de
// stock bajo devuelto debe emitirse con EmitLowStock SOLO después del commit.
func (l *StockLedger) RecordMovementInTx(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	input MovementInput,
) (*entity.StockMovement, int64, *LowStockEvent, error) {
	if err := validateInput(input); err != nil {
		return nil, 0, nil, err
	}

	// Bloquea la fila del producto; a partir de aquí nadie más lee-modifica
	// stock_quantity hasta el commit.
	product, err := productRepo.GetForUpdate(ctx, input.ProductID)
	if err != nil {
		return nil, 0, nil, err
	}
	if product == nil {
		return nil, 0, nil, domain.ErrNotFound
	}

	newQuantity, err := productRepo.AdjustStock(ctx, input.ProductID, input.QuantityDelta)
	if err != nil {
		return nil, 0, nil, err
	}
	// Chequeo defensivo: el valor devuelto por el store debe coincidir con lo
	// leído bajo el lock más el delta.
	if newQuantity != product.StockQuantity+input.QuantityDelta {
		l.log.Error().
			Str("product_id", input.ProductID).
			Int64("locked_quantity", product.StockQuantity).
			Int64("delta", input.QuantityDelta).
			Int64("returned_quantity", newQuantity).
			Msg("proyección de stock inconsistente dentro de la tx")
		return nil, 0, nil, domain.ErrInvariantViolation
	}

	now := time.Now()
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductID:     input.ProductID,
		Kind:          input.Kind,
		QuantityDelta: input.QuantityDelta,
		DocumentType:  input.DocumentType,
		DocumentID:    input.DocumentID,
		ReversalOf:    input.ReversalOf,
		Notes:         input.Notes,
		CreatedAt:     now,
		CreatedBy:     input.Actor,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, 0, nil, err
	}

	var ev *LowStockEvent
	if newQuantity <= product.MinStockLevel {
		ev = &LowStockEvent{
			ProductID:       product.ID,
			ProductName:     product.Name,
			CurrentQuantity: newQuantity,
			MinLevel:        product.MinStockLevel,
		}
	}
	return mov, newQuantity, ev, nil
}

// EmitLowStock dispara la notificación de stock bajo en una goroutine propia.
// Nunca bloquea ni falla la operación que la originó; los errores solo se
// loguean. ev nil es no-op.
func (l *StockLedger) EmitLowStock(ev *LowStockEvent) {
	if ev == nil || l.notifier == nil {
		return
	}
	event := *ev
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := l.notifier.NotifyLowStock(ctx, event); err != nil {
			l.log.Warn().Err(err).
				Str("product_id", event.ProductID).
				Int64("quantity", event.CurrentQuantity).
				Msg("notificación de stock bajo falló (best-effort)")
		}
	}()
}

// CurrentQuantity lee la proyección cacheada. Solo para display: el camino de
// escritura siempre pasa por RecordMovement, que re-lee bajo lock.
func (l *StockLedger) CurrentQuantity(ctx context.Context, productID string) (int64, error) {
	product, err := l.productRepo.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}
	return product.StockQuantity, nil
}

// Reverse emite un movimiento nuevo con el delta negado apuntando al original
// (ReversalOf); jamás muta ni borra historia. Lo usan los flujos de
// cancelación de documentos.
func (l *StockLedger) Reverse(ctx context.Context, movementID, actor, notes string) (reversalID string, err error) {
	var reversal *entity.StockMovement
	var ev *LowStockEvent
	err = l.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		var txErr error
		reversal, _, ev, txErr = l.ReverseInTx(ctx, movRepo, productRepo, movementID, actor, notes)
		return txErr
	})
	if err != nil {
		return "", err
	}
	l.EmitLowStock(ev)
	return reversal.ID, nil
}

// ReverseInTx versión atada a la transacción del caller.
func (l *StockLedger) ReverseInTx(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	movementID, actor, notes string,
) (*entity.StockMovement, int64, *LowStockEvent, error) {
	original, err := movRepo.GetByID(ctx, movementID)
	if err != nil {
		return nil, 0, nil, err
	}
	if original == nil {
		return nil, 0, nil, domain.ErrNotFound
	}
	return l.RecordMovementInTx(ctx, movRepo, productRepo, MovementInput{
		ProductID:     original.ProductID,
		Kind:          original.Kind,
		QuantityDelta: -original.QuantityDelta,
		DocumentType:  original.DocumentType,
		DocumentID:    original.DocumentID,
		ReversalOf:    original.ID,
		Notes:         notes,
		Actor:         actor,
	})
}

// ListMovements historial de un producto, más reciente primero.
func (l *StockLedger) ListMovements(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return l.movRepo.ListByProduct(ctx, productID, limit, offset)
}

// VerifyProjection recalcula la suma del ledger y la compara con la cantidad
// cacheada. Una discrepancia es ErrInvariantViolation: se loguea para
// investigación y jamás se corrige en silencio.
func (l *StockLedger) VerifyProjection(ctx context.Context, productID string) (int64, error) {
	product, err := l.productRepo.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}
	sum, err := l.movRepo.SumDeltaByProduct(ctx, productID)
	if err != nil {
		return 0, err
	}
	if sum != product.StockQuantity {
		l.log.Error().
			Str("product_id", productID).
			Int64("ledger_sum", sum).
			Int64("cached_quantity", product.StockQuantity).
			Msg("suma del ledger no coincide con la proyección cacheada")
		return sum, domain.ErrInvariantViolation
	}
	return sum, nil
}

func validateInput(input MovementInput) error {
	if input.ProductID == "" {
		return domain.ErrInvalidInput
	}
	if !entity.ValidMovementKind(input.Kind) {
		return domain.ErrInvalidInput
	}
	if input.QuantityDelta == 0 {
		return domain.ErrInvalidInput
	}
	return nil
}
