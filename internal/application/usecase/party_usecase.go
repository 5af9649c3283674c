package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// PartyUseCase CRUD de clientes y proveedores.
type PartyUseCase struct {
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
}

// NewPartyUseCase construye el caso de uso.
func NewPartyUseCase(customerRepo repository.CustomerRepository, supplierRepo repository.SupplierRepository) *PartyUseCase {
	return &PartyUseCase{customerRepo: customerRepo, supplierRepo: supplierRepo}
}

// CreateCustomer registra un cliente.
func (uc *PartyUseCase) CreateCustomer(ctx context.Context, in dto.PartyRequest) (*dto.PartyResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customerResponse(customer), nil
}

// GetCustomer obtiene un cliente.
func (uc *PartyUseCase) GetCustomer(ctx context.Context, id string) (*dto.PartyResponse, error) {
	customer, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return customerResponse(customer), nil
}

// UpdateCustomer modifica los datos de contacto de un cliente.
func (uc *PartyUseCase) UpdateCustomer(ctx context.Context, id string, in dto.PartyRequest) (*dto.PartyResponse, error) {
	customer, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	customer.Name = in.Name
	customer.TaxID = in.TaxID
	customer.Email = in.Email
	customer.Phone = in.Phone
	customer.Address = in.Address
	customer.UpdatedAt = time.Now()
	if err := uc.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customerResponse(customer), nil
}

// ListCustomers lista clientes.
func (uc *PartyUseCase) ListCustomers(ctx context.Context, limit, offset int) ([]*dto.PartyResponse, error) {
	customers, err := uc.customerRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PartyResponse, len(customers))
	for i, c := range customers {
		out[i] = customerResponse(c)
	}
	return out, nil
}

// CreateSupplier registra un proveedor.
func (uc *PartyUseCase) CreateSupplier(ctx context.Context, in dto.PartyRequest) (*dto.PartyResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplierResponse(supplier), nil
}

// GetSupplier obtiene un proveedor.
func (uc *PartyUseCase) GetSupplier(ctx context.Context, id string) (*dto.PartyResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	return supplierResponse(supplier), nil
}

// UpdateSupplier modifica los datos de contacto de un proveedor.
func (uc *PartyUseCase) UpdateSupplier(ctx context.Context, id string, in dto.PartyRequest) (*dto.PartyResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier.Name = in.Name
	supplier.TaxID = in.TaxID
	supplier.Email = in.Email
	supplier.Phone = in.Phone
	supplier.Address = in.Address
	supplier.UpdatedAt = time.Now()
	if err := uc.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplierResponse(supplier), nil
}

// ListSuppliers lista proveedores.
func (uc *PartyUseCase) ListSuppliers(ctx context.Context, limit, offset int) ([]*dto.PartyResponse, error) {
	suppliers, err := uc.supplierRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PartyResponse, len(suppliers))
	for i, s := range suppliers {
		out[i] = supplierResponse(s)
	}
	return out, nil
}

func customerResponse(c *entity.Customer) *dto.PartyResponse {
	return &dto.PartyResponse{
		ID: c.ID, Name: c.Name, TaxID: c.TaxID, Email: c.Email,
		Phone: c.Phone, Address: c.Address, IsActive: c.IsActive, CreatedAt: c.CreatedAt,
	}
}

func supplierResponse(s *entity.Supplier) *dto.PartyResponse {
	return &dto.PartyResponse{
		ID: s.ID, Name: s.Name, TaxID: s.TaxID, Email: s.Email,
		Phone: s.Phone, Address: s.Address, IsActive: s.IsActive, CreatedAt: s.CreatedAt,
	}
}
