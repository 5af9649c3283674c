package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/usecase"
)

// PartyHandler endpoints de clientes y proveedores.
type PartyHandler struct {
	partyUC *usecase.PartyUseCase
}

// NewPartyHandler construye el handler de terceros.
func NewPartyHandler(partyUC *usecase.PartyUseCase) *PartyHandler {
	return &PartyHandler{partyUC: partyUC}
}

// CreateCustomer maneja POST /api/v1/customers.
func (h *PartyHandler) CreateCustomer(c *fiber.Ctx) error {
	var req dto.PartyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body inválido")
	}
	customer, err := h.partyUC.CreateCustomer(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// GetCustomer maneja GET /api/v1/customers/:id.
func (h *PartyHandler) GetCustomer(c *fiber.Ctx) error {
	customer, err := h.partyUC.GetCustomer(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customer)
}

// UpdateCustomer maneja PUT /api/v1/customers/:id.
func (h *PartyHandler) UpdateCustomer(c *fiber.Ctx) error {
	var req dto.PartyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body inválido")
	}
	customer, err := h.partyUC.UpdateCustomer(c.Context(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customer)
}

// ListCustomers maneja GET /api/v1/customers.
func (h *PartyHandler) ListCustomers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "query inválida")
	}
	page.DefaultPage()
	customers, err := h.partyUC.ListCustomers(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customers)
}

// CreateSupplier maneja POST /api/v1/suppliers.
func (h *PartyHandler) CreateSupplier(c *fiber.Ctx) error {
	var req dto.PartyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body inválido")
	}
	supplier, err := h.partyUC.CreateSupplier(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(supplier)
}

// GetSupplier maneja GET /api/v1/suppliers/:id.
func (h *PartyHandler) GetSupplier(c *fiber.Ctx) error {
	supplier, err := h.partyUC.GetSupplier(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(supplier)
}

// UpdateSupplier maneja PUT /api/v1/suppliers/:id.
func (h *PartyHandler) UpdateSupplier(c *fiber.Ctx) error {
	var req dto.PartyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body inválido")
	}
	supplier, err := h.partyUC.UpdateSupplier(c.Context(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(supplier)
}

// ListSuppliers maneja GET /api/v1/suppliers.
func (h *PartyHandler) ListSuppliers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "query inválida")
	}
	page.DefaultPage()
	suppliers, err := h.partyUC.ListSuppliers(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(suppliers)
}
