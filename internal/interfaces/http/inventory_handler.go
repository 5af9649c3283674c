package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/inventory"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// InventoryHandler endpoints del ledger de inventario: ajustes manuales,
// historial de movimientos, cantidad actual y chequeo de consistencia. Los
// movimientos ligados a documentos no entran por aquí sino por el
// coordinador de documentos.
type InventoryHandler struct {
	ledger *inventory.StockLedger
}

// NewInventoryHandler construye el handler de inventario.
func NewInventoryHandler(ledger *inventory.StockLedger) *InventoryHandler {
	return &InventoryHandler{ledger: ledger}
}

// Kinds aceptados como movimiento manual. Los de documento (sale, purchase,
// etc.) solo los produce el coordinador.
var manualKinds = map[string]bool{
	entity.MovementKindManualAdjustment: true,
	entity.MovementKindDamage:           true,
	entity.MovementKindTheft:            true,
	entity.MovementKindInitialStock:     true,
}

// RegisterAdjustment maneja POST /api/v1/inventory/movements.
func (h *InventoryHandler) RegisterAdjustment(c *fiber.Ctx) error {
	var req dto.RegisterAdjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body inválido")
	}
	if !manualKinds[req.Kind] {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "VALIDATION_FAILED",
			Message: "kind debe ser manual_adjustment, damage, theft o initial_stock",
		})
	}
	movementID, newQty, err := h.ledger.RecordMovement(c.Context(), inventory.MovementInput{
		ProductID:     req.ProductID,
		Kind:          req.Kind,
		QuantityDelta: req.QuantityDelta,
		Notes:         req.Notes,
		Actor:         GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AdjustmentResponse{
		MovementID:  movementID,
		NewQuantity: newQty,
	})
}

// ReverseMovement maneja POST /api/v1/inventory/movements/:id/reverse.
func (h *InventoryHandler) ReverseMovement(c *fiber.Ctx) error {
	var req struct {
		Notes string `json:"notes,omitempty"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "body inválido")
		}
	}
	reversalID, err := h.ledger.Reverse(c.Context(), c.Params("id"), GetUserID(c), req.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"reversal_id": reversalID})
}

// ListMovements maneja GET /api/v1/inventory/products/:id/movements.
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "query inválida")
	}
	page.DefaultPage()
	movements, err := h.ledger.ListMovements(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, len(movements))
	for i, m := range movements {
		out[i] = toMovementResponse(m)
	}
	return c.JSON(out)
}

// CurrentQuantity maneja GET /api/v1/inventory/products/:id/quantity.
func (h *InventoryHandler) CurrentQuantity(c *fiber.Ctx) error {
	qty, err := h.ledger.CurrentQuantity(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"product_id": c.Params("id"), "quantity": qty})
}

// VerifyProjection maneja GET /api/v1/inventory/products/:id/projection. Una
// discrepancia responde 200 con consistent=false: el endpoint es diagnóstico,
// no un error del request.
func (h *InventoryHandler) VerifyProjection(c *fiber.Ctx) error {
	productID := c.Params("id")
	sum, err := h.ledger.VerifyProjection(c.Context(), productID)
	if err != nil && !errors.Is(err, domain.ErrInvariantViolation) {
		return respondError(c, err)
	}
	cached, qerr := h.ledger.CurrentQuantity(c.Context(), productID)
	if qerr != nil {
		return respondError(c, qerr)
	}
	return c.JSON(dto.ProjectionResponse{
		ProductID:      productID,
		LedgerSum:      sum,
		CachedQuantity: cached,
		Consistent:     err == nil,
	})
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Kind:          m.Kind,
		QuantityDelta: m.QuantityDelta,
		DocumentType:  m.DocumentType,
		DocumentID:    m.DocumentID,
		ReversalOf:    m.ReversalOf,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}
