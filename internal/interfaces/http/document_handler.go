package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/application/document"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/sequence"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// DocumentHandler endpoints de documentos transaccionales: ventas, órdenes de
// compra, cotizaciones, devoluciones, traslados y gastos.
type DocumentHandler struct {
	coordinator *document.Coordinator
	allocator   *sequence.Allocator
}

// NewDocumentHandler construye el handler de documentos.
func NewDocumentHandler(coordinator *document.Coordinator, allocator *sequence.Allocator) *DocumentHandler {
	return &DocumentHandler{coordinator: coordinator, allocator: allocator}
}

// Create maneja POST /api/v1/documents.
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body inválido")
	}
	doc, err := h.coordinator.CreateDocument(c.Context(), document.CreateDocumentInput{
		Type:             req.Type,
		PartyID:          req.PartyID,
		Notes:            req.Notes,
		DocumentDiscount: req.DocumentDiscount,
		Lines:            toLineInputs(req.Lines),
		Actor:            GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDocumentResponse(doc))
}

// CreateExpense maneja POST /api/v1/expenses. Un gasto es un documento de una
// sola línea sin producto: monto como precio unitario, cantidad 1, y el
// impuesto plano convertido a porcentaje sobre el monto base. El modelo
// porcentual topa el impuesto en el 100% de la base, así que un tax_amount
// mayor que amount se rechaza aquí con mensaje explícito.
func (h *DocumentHandler) CreateExpense(c *fiber.Ctx) error {
	var req dto.CreateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body inválido")
	}
	if !req.Amount.IsPositive() || req.TaxAmount.IsNegative() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "VALIDATION_FAILED",
			Message: "amount debe ser > 0 y tax_amount >= 0",
		})
	}
	if req.TaxAmount.GreaterThan(req.Amount) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "VALIDATION_FAILED",
			Message: "tax_amount no puede superar amount: el impuesto máximo es el 100% de la base",
		})
	}
	taxPercent := decimal.Zero
	if req.TaxAmount.IsPositive() {
		taxPercent = req.TaxAmount.Div(req.Amount).Mul(decimal.NewFromInt(100))
	}
	doc, err := h.coordinator.CreateDocument(c.Context(), document.CreateDocumentInput{
		Type:  entity.DocumentTypeExpense,
		Notes: req.Notes,
		Lines: []document.LineInput{{
			Quantity:   1,
			UnitPrice:  req.Amount,
			TaxPercent: taxPercent,
		}},
		Actor: GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDocumentResponse(doc))
}

// GetByID maneja GET /api/v1/documents/:id (con líneas).
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	doc, err := h.coordinator.GetDocument(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toDocumentResponse(doc))
}

// GetByReference maneja GET /api/v1/documents/ref/:reference.
func (h *DocumentHandler) GetByReference(c *fiber.Ctx) error {
	doc, err := h.coordinator.GetDocumentByReference(c.Context(), c.Params("reference"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toDocumentResponse(doc))
}

// List maneja GET /api/v1/documents?type=&status=&limit=&offset=.
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "query inválida")
	}
	page.DefaultPage()
	docs, err := h.coordinator.ListDocuments(c.Context(),
		c.Query("type"), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.DocumentResponse, len(docs))
	for i, d := range docs {
		out[i] = toDocumentResponse(d)
	}
	return c.JSON(out)
}

// Update maneja PUT /api/v1/documents/:id (solo draft/pending).
func (h *DocumentHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body inválido")
	}
	patch := document.UpdateDocumentInput{
		PartyID:          req.PartyID,
		Notes:            req.Notes,
		DocumentDiscount: req.DocumentDiscount,
		Actor:            GetUserID(c),
	}
	if req.Lines != nil {
		patch.Lines = toLineInputs(req.Lines)
	}
	doc, err := h.coordinator.UpdateDocument(c.Context(), c.Params("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toDocumentResponse(doc))
}

// Transition maneja POST /api/v1/documents/:id/transition.
func (h *DocumentHandler) Transition(c *fiber.Ctx) error {
	var req dto.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body inválido")
	}
	doc, err := h.coordinator.TransitionDocument(c.Context(), c.Params("id"), req.Status, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toDocumentResponse(doc))
}

// Cancel maneja POST /api/v1/documents/:id/cancel.
func (h *DocumentHandler) Cancel(c *fiber.Ctx) error {
	if err := h.coordinator.CancelDocument(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": entity.DocumentStatusCancelled})
}

// ListSequences maneja GET /api/v1/sequences: estado de los contadores de
// consecutivo por prefijo.
func (h *DocumentHandler) ListSequences(c *fiber.Ctx) error {
	counters, err := h.allocator.Counters(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SequenceResponse, len(counters))
	for i, ctr := range counters {
		out[i] = dto.SequenceResponse{
			Prefix:    ctr.Prefix,
			LastValue: ctr.LastValue,
			Padding:   ctr.Padding,
			UpdatedAt: ctr.UpdatedAt,
		}
	}
	return c.JSON(out)
}

func toLineInputs(lines []dto.DocumentLineRequest) []document.LineInput {
	out := make([]document.LineInput, len(lines))
	for i, l := range lines {
		out[i] = document.LineInput{
			ProductID:       l.ProductID,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			DiscountPercent: l.DiscountPercent,
			TaxPercent:      l.TaxPercent,
		}
	}
	return out
}

func toDocumentResponse(d *entity.Document) *dto.DocumentResponse {
	resp := &dto.DocumentResponse{
		ID:               d.ID,
		Type:             d.Type,
		ReferenceNumber:  d.ReferenceNumber,
		Status:           d.Status,
		PartyID:          d.PartyID,
		Subtotal:         d.Subtotal,
		DocumentDiscount: d.DocumentDiscount,
		DiscountAmount:   d.DiscountAmount,
		TaxAmount:        d.TaxAmount,
		TotalAmount:      d.TotalAmount,
		Notes:            d.Notes,
		CreatedBy:        d.CreatedBy,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
	for _, l := range d.Lines {
		resp.Lines = append(resp.Lines, dto.DocumentLineResponse{
			ID:              l.ID,
			ProductID:       l.ProductID,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			DiscountPercent: l.DiscountPercent,
			TaxPercent:      l.TaxPercent,
			LineTotal:       l.LineTotal,
		})
	}
	return resp
}
