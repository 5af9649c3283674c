// Package document implementa el coordinador transaccional de documentos:
// orquesta asignación de consecutivo, cálculo de totales, persistencia de
// cabecera/líneas y movimientos de ledger como una sola unidad atómica por
// creación, actualización o cancelación.
package document

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/application/inventory"
	"github.com/tu-usuario/retail-pos/internal/application/sequence"
	"github.com/tu-usuario/retail-pos/internal/domain"
	domaindoc "github.com/tu-usuario/retail-pos/internal/domain/document"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
	"github.com/tu-usuario/retail-pos/pkg/logger"
)

// Coordinator coordina el ciclo de vida completo de los documentos. No
// reintenta nada por su cuenta: ErrConflict y los transitorios suben al
// caller, que reintenta la operación completa desde cero.
type Coordinator struct {
	txRunner    TxRunner
	allocator   *sequence.Allocator
	ledger      *inventory.StockLedger
	docRepo     repository.DocumentRepository
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewCoordinator construye el coordinador.
func NewCoordinator(
	txRunner TxRunner,
	allocator *sequence.Allocator,
	ledger *inventory.StockLedger,
	docRepo repository.DocumentRepository,
	productRepo repository.ProductRepository,
	log *logger.Logger,
) *Coordinator {
	return &Coordinator{
		txRunner:    txRunner,
		allocator:   allocator,
		ledger:      ledger,
		docRepo:     docRepo,
		productRepo: productRepo,
		log:         log,
	}
}

// LineInput línea de documento tal como la envía la capa de requests.
type LineInput struct {
	ProductID       string
	Quantity        int64
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	TaxPercent      decimal.Decimal
}

// CreateDocumentInput entrada de CreateDocument.
type CreateDocumentInput struct {
	Type             string
	PartyID          string // cliente o proveedor según el tipo; opcional
	Notes            string
	DocumentDiscount decimal.Decimal // descuento plano del documento, post-agregación
	Lines            []LineInput
	Actor            string
}

// CreateDocument crea un documento: asigna consecutivo, calcula totales,
// persiste cabecera y líneas y — para los tipos de efecto inmediato —
// registra los movimientos de ledger, todo dentro de una transacción. Si algo
// falla no queda ni documento, ni movimiento, ni consecutivo consumido.
func (c *Coordinator) CreateDocument(ctx context.Context, input CreateDocumentInput) (*entity.Document, error) {
	if !entity.ValidDocumentType(input.Type) {
		return nil, fmt.Errorf("tipo %q: %w", input.Type, domain.ErrValidationFailed)
	}
	if len(input.Lines) == 0 {
		return nil, fmt.Errorf("documento sin líneas: %w", domain.ErrValidationFailed)
	}

	// Prevalidación de productos fuera de la tx (solo lectura); la FK y el
	// lock dentro de la tx siguen siendo la garantía final.
	if err := c.checkProducts(ctx, input.Type, input.Lines); err != nil {
		return nil, err
	}

	totals, err := domaindoc.ComputeTotals(toCalcLines(input.Lines), input.DocumentDiscount)
	if err != nil {
		return nil, err
	}
	rounded := totals.Rounded()

	now := time.Now()
	doc := &entity.Document{
		ID:               uuid.New().String(),
		Type:             input.Type,
		Status:           domaindoc.CreationStatus(input.Type),
		PartyID:          input.PartyID,
		Subtotal:         rounded.Subtotal,
		DocumentDiscount: input.DocumentDiscount,
		DiscountAmount:   rounded.DiscountAmount,
		TaxAmount:        rounded.TaxAmount,
		TotalAmount:      rounded.TotalAmount,
		Notes:            input.Notes,
		CreatedBy:        input.Actor,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for i, in := range input.Lines {
		doc.Lines = append(doc.Lines, &entity.DocumentLine{
			ID:              uuid.New().String(),
			DocumentID:      doc.ID,
			ProductID:       in.ProductID,
			Quantity:        in.Quantity,
			UnitPrice:       in.UnitPrice,
			DiscountPercent: in.DiscountPercent,
			TaxPercent:      in.TaxPercent,
			LineTotal:       rounded.Lines[i].Total,
		})
	}

	var events []*inventory.LowStockEvent
	err = c.txRunner.RunDocument(ctx, func(
		docRepo repository.DocumentRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		seqRepo repository.SequenceRepository,
	) error {
		ref, err := c.allocator.AllocateInTx(ctx, seqRepo, domaindoc.Prefix(input.Type))
		if err != nil {
			return err
		}
		doc.ReferenceNumber = ref

		if err := docRepo.Create(ctx, doc); err != nil {
			return err
		}
		for _, line := range doc.Lines {
			if err := docRepo.CreateLine(ctx, line); err != nil {
				return err
			}
		}

		if !domaindoc.CommitsAtCreation(input.Type) {
			return nil
		}
		events, err = c.recordDocumentMovements(ctx, movRepo, productRepo, doc, input.Actor)
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, ev := range events {
		c.ledger.EmitLowStock(ev)
	}
	c.log.Info().
		Str("document_id", doc.ID).
		Str("type", doc.Type).
		Str("reference", doc.ReferenceNumber).
		Str("status", doc.Status).
		Msg("documento creado")
	return doc, nil
}

// recordDocumentMovements registra los movimientos de ledger de un documento
// según la tabla de efectos de su tipo (un traslado produce salida y entrada
// por línea). Devuelve los eventos de stock bajo para emitir tras el commit.
func (c *Coordinator) recordDocumentMovements(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	doc *entity.Document,
	actor string,
) ([]*inventory.LowStockEvent, error) {
	var events []*inventory.LowStockEvent
	for _, line := range doc.Lines {
		for _, effect := range domaindoc.Effects(doc.Type) {
			_, _, ev, err := c.ledger.RecordMovementInTx(ctx, movRepo, productRepo, inventory.MovementInput{
				ProductID:     line.ProductID,
				Kind:          effect.Kind,
				QuantityDelta: effect.Direction * line.Quantity,
				DocumentType:  doc.Type,
				DocumentID:    doc.ID,
				Notes:         doc.ReferenceNumber,
				Actor:         actor,
			})
			if err != nil {
				return nil, err
			}
			if ev != nil {
				events = append(events, ev)
			}
		}
	}
	return events, nil
}

// TransitionDocument mueve el documento por su ciclo de vida. La transición
// approved → processed registra los movimientos de los tipos diferidos
// (órdenes de compra, cotizaciones) dentro de la misma tx. Para cancelar usar
// CancelDocument (también acepta newStatus = cancelled y delega).
func (c *Coordinator) TransitionDocument(ctx context.Context, id, newStatus, actor string) (*entity.Document, error) {
	if newStatus == entity.DocumentStatusCancelled {
		if err := c.CancelDocument(ctx, id, actor); err != nil {
			return nil, err
		}
		return c.GetDocument(ctx, id)
	}

	var doc *entity.Document
	var events []*inventory.LowStockEvent
	err := c.txRunner.RunDocument(ctx, func(
		docRepo repository.DocumentRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		_ repository.SequenceRepository,
	) error {
		var err error
		doc, err = docRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if !domaindoc.CanTransition(doc.Status, newStatus) {
			return fmt.Errorf("%s → %s en %s: %w", doc.Status, newStatus, doc.ReferenceNumber, domain.ErrIllegalTransition)
		}

		if newStatus == entity.DocumentStatusProcessed && domaindoc.CommitsAtProcessing(doc.Type) {
			doc.Lines, err = docRepo.ListLines(ctx, doc.ID)
			if err != nil {
				return err
			}
			events, err = c.recordDocumentMovements(ctx, movRepo, productRepo, doc, actor)
			if err != nil {
				return err
			}
		}

		doc.Status = newStatus
		return docRepo.UpdateStatus(ctx, doc.ID, newStatus)
	})
	if err != nil {
		return nil, err
	}

	for _, ev := range events {
		c.ledger.EmitLowStock(ev)
	}
	c.log.Info().
		Str("document_id", id).
		Str("reference", doc.ReferenceNumber).
		Str("status", newStatus).
		Msg("documento transicionado")
	return doc, nil
}

// CancelDocument cancela un documento no terminal: emite una reversa por cada
// movimiento de ledger que el documento produjo (historia intacta, deltas
// negados) y deja el estado en cancelled, todo en una transacción. El stock
// queda como estaba justo antes de crear el documento.
func (c *Coordinator) CancelDocument(ctx context.Context, id, actor string) error {
	var events []*inventory.LowStockEvent
	var reference string
	err := c.txRunner.RunDocument(ctx, func(
		docRepo repository.DocumentRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		_ repository.SequenceRepository,
	) error {
		doc, err := docRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if !domaindoc.CanTransition(doc.Status, entity.DocumentStatusCancelled) {
			return fmt.Errorf("cancelar %s en estado %s: %w", doc.ReferenceNumber, doc.Status, domain.ErrIllegalTransition)
		}
		reference = doc.ReferenceNumber

		movements, err := movRepo.ListByDocument(ctx, doc.Type, doc.ID)
		if err != nil {
			return err
		}
		for _, mov := range movements {
			if mov.ReversalOf != "" {
				continue // ya es una reversa; no compensar compensaciones
			}
			_, _, ev, err := c.ledger.ReverseInTx(ctx, movRepo, productRepo, mov.ID, actor,
				"cancelación "+doc.ReferenceNumber)
			if err != nil {
				return err
			}
			if ev != nil {
				events = append(events, ev)
			}
		}
		return docRepo.UpdateStatus(ctx, doc.ID, entity.DocumentStatusCancelled)
	})
	if err != nil {
		return err
	}

	for _, ev := range events {
		c.ledger.EmitLowStock(ev)
	}
	c.log.Info().
		Str("document_id", id).
		Str("reference", reference).
		Msg("documento cancelado")
	return nil
}

// UpdateDocumentInput patch de UpdateDocument. Lines nil conserva las líneas
// actuales; no-nil reemplaza el juego completo.
type UpdateDocumentInput struct {
	PartyID          *string
	Notes            *string
	DocumentDiscount *decimal.Decimal
	Lines            []LineInput
	Actor            string
}

// UpdateDocument reemplaza líneas y recalcula totales conservando el número
// de referencia. Si el documento ya produjo movimientos, reconcilia por
// producto el delta entre cantidades viejas y nuevas a través del ledger:
// nunca sobrescribe stock_quantity con valores enviados por el cliente.
// Solo es legal en draft o pending.
func (c *Coordinator) UpdateDocument(ctx context.Context, id string, patch UpdateDocumentInput) (*entity.Document, error) {
	if patch.Lines != nil {
		header, err := c.docRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if header == nil {
			return nil, domain.ErrNotFound
		}
		if err := c.checkProducts(ctx, header.Type, patch.Lines); err != nil {
			return nil, err
		}
	}

	var doc *entity.Document
	var events []*inventory.LowStockEvent
	err := c.txRunner.RunDocument(ctx, func(
		docRepo repository.DocumentRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		_ repository.SequenceRepository,
	) error {
		var err error
		doc, err = docRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if doc.Status != entity.DocumentStatusDraft && doc.Status != entity.DocumentStatusPending {
			return fmt.Errorf("editar %s en estado %s: %w", doc.ReferenceNumber, doc.Status, domain.ErrIllegalTransition)
		}

		oldLines, err := docRepo.ListLines(ctx, doc.ID)
		if err != nil {
			return err
		}

		newInputs := patch.Lines
		if newInputs == nil {
			newInputs = toLineInputs(oldLines)
		}
		if len(newInputs) == 0 {
			return fmt.Errorf("documento sin líneas: %w", domain.ErrValidationFailed)
		}
		// El descuento plano persistido es base de cálculo sin redondear:
		// un recálculo que no cambia nada produce los mismos totales.
		discount := doc.DocumentDiscount
		if patch.DocumentDiscount != nil {
			discount = *patch.DocumentDiscount
		}
		totals, err := domaindoc.ComputeTotals(toCalcLines(newInputs), discount)
		if err != nil {
			return err
		}
		rounded := totals.Rounded()

		if patch.PartyID != nil {
			doc.PartyID = *patch.PartyID
		}
		if patch.Notes != nil {
			doc.Notes = *patch.Notes
		}
		doc.Subtotal = rounded.Subtotal
		doc.DocumentDiscount = discount
		doc.DiscountAmount = rounded.DiscountAmount
		doc.TaxAmount = rounded.TaxAmount
		doc.TotalAmount = rounded.TotalAmount
		doc.UpdatedAt = time.Now()

		doc.Lines = nil
		for i, in := range newInputs {
			doc.Lines = append(doc.Lines, &entity.DocumentLine{
				ID:              uuid.New().String(),
				DocumentID:      doc.ID,
				ProductID:       in.ProductID,
				Quantity:        in.Quantity,
				UnitPrice:       in.UnitPrice,
				DiscountPercent: in.DiscountPercent,
				TaxPercent:      in.TaxPercent,
				LineTotal:       rounded.Lines[i].Total,
			})
		}
		if err := docRepo.UpdateHeader(ctx, doc); err != nil {
			return err
		}
		if err := docRepo.ReplaceLines(ctx, doc.ID, doc.Lines); err != nil {
			return err
		}

		// Reconciliación de inventario: solo los tipos que ya comprometieron
		// stock al crear (pending) tienen movimientos que ajustar.
		if domaindoc.CommitsAtCreation(doc.Type) && doc.Status == entity.DocumentStatusPending {
			events, err = c.reconcileMovements(ctx, movRepo, productRepo, doc, oldLines, patch.Actor)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, ev := range events {
		c.ledger.EmitLowStock(ev)
	}
	c.log.Info().
		Str("document_id", id).
		Str("reference", doc.ReferenceNumber).
		Msg("documento actualizado")
	return doc, nil
}

// reconcileMovements registra, por producto y por efecto del tipo, un
// movimiento compensatorio igual a la diferencia entre la cantidad nueva y la
// vieja. Cantidad sin cambio no produce movimiento.
func (c *Coordinator) reconcileMovements(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	doc *entity.Document,
	oldLines []*entity.DocumentLine,
	actor string,
) ([]*inventory.LowStockEvent, error) {
	oldQty := make(map[string]int64)
	for _, line := range oldLines {
		oldQty[line.ProductID] += line.Quantity
	}
	newQty := make(map[string]int64)
	for _, line := range doc.Lines {
		newQty[line.ProductID] += line.Quantity
	}
	// Productos presentes en cualquiera de los dos juegos, orden estable por
	// aparición (viejos primero, nuevos después).
	seen := make(map[string]bool)
	var productIDs []string
	for _, line := range oldLines {
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			productIDs = append(productIDs, line.ProductID)
		}
	}
	for _, line := range doc.Lines {
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			productIDs = append(productIDs, line.ProductID)
		}
	}

	var events []*inventory.LowStockEvent
	for _, productID := range productIDs {
		diff := newQty[productID] - oldQty[productID]
		if diff == 0 {
			continue
		}
		for _, effect := range domaindoc.Effects(doc.Type) {
			_, _, ev, err := c.ledger.RecordMovementInTx(ctx, movRepo, productRepo, inventory.MovementInput{
				ProductID:     productID,
				Kind:          effect.Kind,
				QuantityDelta: effect.Direction * diff,
				DocumentType:  doc.Type,
				DocumentID:    doc.ID,
				Notes:         "ajuste por edición " + doc.ReferenceNumber,
				Actor:         actor,
			})
			if err != nil {
				return nil, err
			}
			if ev != nil {
				events = append(events, ev)
			}
		}
	}
	return events, nil
}

// GetDocument lee un documento con sus líneas (fuera de tx, para display).
func (c *Coordinator) GetDocument(ctx context.Context, id string) (*entity.Document, error) {
	doc, err := c.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	doc.Lines, err = c.docRepo.ListLines(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// GetDocumentByReference lee un documento por su número de referencia (el
// identificador que aparece en documentos impresos), con líneas.
func (c *Coordinator) GetDocumentByReference(ctx context.Context, referenceNumber string) (*entity.Document, error) {
	doc, err := c.docRepo.GetByReference(ctx, referenceNumber)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	doc.Lines, err = c.docRepo.ListLines(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ListDocuments lista cabeceras filtrando por tipo y/o estado.
func (c *Coordinator) ListDocuments(ctx context.Context, docType, status string, limit, offset int) ([]*entity.Document, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return c.docRepo.List(ctx, docType, status, limit, offset)
}

func (c *Coordinator) checkProducts(ctx context.Context, docType string, lines []LineInput) error {
	for _, line := range lines {
		if line.ProductID == "" {
			// Los gastos no referencian catálogo; todo lo demás sí.
			if docType == entity.DocumentTypeExpense {
				continue
			}
			return fmt.Errorf("línea sin producto: %w", domain.ErrValidationFailed)
		}
		product, err := c.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("producto %s: %w", line.ProductID, domain.ErrValidationFailed)
		}
	}
	return nil
}

func toCalcLines(lines []LineInput) []domaindoc.LineInput {
	out := make([]domaindoc.LineInput, len(lines))
	for i, in := range lines {
		out[i] = domaindoc.LineInput{
			Quantity:        in.Quantity,
			UnitPrice:       in.UnitPrice,
			DiscountPercent: in.DiscountPercent,
			TaxPercent:      in.TaxPercent,
		}
	}
	return out
}

func toLineInputs(lines []*entity.DocumentLine) []LineInput {
	out := make([]LineInput, len(lines))
	for i, line := range lines {
		out[i] = LineInput{
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: line.DiscountPercent,
			TaxPercent:      line.TaxPercent,
		}
	}
	return out
}
