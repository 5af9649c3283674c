package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/retail-pos/internal/domain/document"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados: draft → pending → {approved | rejected} → processed,
// cancelled alcanzable desde todo estado no terminal.
// ──────────────────────────────────────────────────────────────────────────────

func TestCanTransition_CaminoFeliz(t *testing.T) {
	assert.True(t, document.CanTransition(entity.DocumentStatusDraft, entity.DocumentStatusPending))
	assert.True(t, document.CanTransition(entity.DocumentStatusPending, entity.DocumentStatusApproved))
	assert.True(t, document.CanTransition(entity.DocumentStatusPending, entity.DocumentStatusRejected))
	assert.True(t, document.CanTransition(entity.DocumentStatusApproved, entity.DocumentStatusProcessed))
}

func TestCanTransition_SaltosIlegales(t *testing.T) {
	// no se salta la aprobación
	assert.False(t, document.CanTransition(entity.DocumentStatusDraft, entity.DocumentStatusApproved))
	assert.False(t, document.CanTransition(entity.DocumentStatusDraft, entity.DocumentStatusProcessed))
	assert.False(t, document.CanTransition(entity.DocumentStatusPending, entity.DocumentStatusProcessed))
	// no hay marcha atrás
	assert.False(t, document.CanTransition(entity.DocumentStatusApproved, entity.DocumentStatusPending))
	assert.False(t, document.CanTransition(entity.DocumentStatusPending, entity.DocumentStatusDraft))
}

func TestCanTransition_TerminalesNoSalen(t *testing.T) {
	terminals := []string{
		entity.DocumentStatusRejected,
		entity.DocumentStatusProcessed,
		entity.DocumentStatusCancelled,
	}
	all := []string{
		entity.DocumentStatusDraft, entity.DocumentStatusPending,
		entity.DocumentStatusApproved, entity.DocumentStatusRejected,
		entity.DocumentStatusProcessed, entity.DocumentStatusCancelled,
	}
	for _, from := range terminals {
		for _, to := range all {
			assert.False(t, document.CanTransition(from, to),
				"%s → %s no debe ser legal", from, to)
		}
	}
}

func TestCanTransition_CancelledDesdeNoTerminales(t *testing.T) {
	for _, from := range []string{
		entity.DocumentStatusDraft,
		entity.DocumentStatusPending,
		entity.DocumentStatusApproved,
	} {
		assert.True(t, document.CanTransition(from, entity.DocumentStatusCancelled),
			"%s → cancelled debe ser legal", from)
	}
}

// Los tipos de efecto diferido nacen en draft (pasan por aprobación); el
// resto nace en pending (inmediatez de mostrador).
func TestCreationStatus_PorTipo(t *testing.T) {
	assert.Equal(t, entity.DocumentStatusDraft, document.CreationStatus(entity.DocumentTypePurchaseOrder))
	assert.Equal(t, entity.DocumentStatusDraft, document.CreationStatus(entity.DocumentTypeQuotation))

	for _, dt := range []string{
		entity.DocumentTypeSale, entity.DocumentTypeSaleReturn,
		entity.DocumentTypePurchaseReturn, entity.DocumentTypeTransfer,
		entity.DocumentTypeExpense,
	} {
		assert.Equal(t, entity.DocumentStatusPending, document.CreationStatus(dt), dt)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tabla de efectos sobre inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestEffects_PorTipo(t *testing.T) {
	cases := []struct {
		docType string
		want    []document.StockEffect
	}{
		{entity.DocumentTypeSale, []document.StockEffect{{Kind: entity.MovementKindSale, Direction: -1}}},
		{entity.DocumentTypeSaleReturn, []document.StockEffect{{Kind: entity.MovementKindSaleReturn, Direction: +1}}},
		{entity.DocumentTypePurchaseReturn, []document.StockEffect{{Kind: entity.MovementKindPurchaseReturn, Direction: -1}}},
		{entity.DocumentTypePurchaseOrder, []document.StockEffect{{Kind: entity.MovementKindPurchase, Direction: +1}}},
		{entity.DocumentTypeQuotation, []document.StockEffect{{Kind: entity.MovementKindSale, Direction: -1}}},
		{entity.DocumentTypeTransfer, []document.StockEffect{
			{Kind: entity.MovementKindTransferOut, Direction: -1},
			{Kind: entity.MovementKindTransferIn, Direction: +1},
		}},
		{entity.DocumentTypeExpense, []document.StockEffect{}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, document.Effects(tc.docType), tc.docType)
	}
}

// Un traslado no cambia la cantidad neta: sus efectos suman cero.
func TestEffects_TrasladoNetoCero(t *testing.T) {
	var net int64
	for _, e := range document.Effects(entity.DocumentTypeTransfer) {
		net += e.Direction
	}
	assert.Zero(t, net)
}

// Cada tipo compromete inventario al crear, al procesar, o nunca; jamás en
// ambos momentos.
func TestCommits_ExclusionMutua(t *testing.T) {
	for _, dt := range []string{
		entity.DocumentTypeSale, entity.DocumentTypePurchaseOrder,
		entity.DocumentTypeQuotation, entity.DocumentTypeSaleReturn,
		entity.DocumentTypePurchaseReturn, entity.DocumentTypeTransfer,
		entity.DocumentTypeExpense,
	} {
		assert.False(t, document.CommitsAtCreation(dt) && document.CommitsAtProcessing(dt), dt)
	}
	assert.True(t, document.CommitsAtCreation(entity.DocumentTypeSale))
	assert.True(t, document.CommitsAtProcessing(entity.DocumentTypePurchaseOrder))
	assert.False(t, document.CommitsAtCreation(entity.DocumentTypeExpense))
	assert.False(t, document.CommitsAtProcessing(entity.DocumentTypeExpense))
}

func TestPrefix_PorTipo(t *testing.T) {
	assert.Equal(t, "SALE", document.Prefix(entity.DocumentTypeSale))
	assert.Equal(t, "PO", document.Prefix(entity.DocumentTypePurchaseOrder))
	assert.Equal(t, "QUO", document.Prefix(entity.DocumentTypeQuotation))
	assert.Equal(t, "SRET", document.Prefix(entity.DocumentTypeSaleReturn))
	assert.Equal(t, "PRET", document.Prefix(entity.DocumentTypePurchaseReturn))
	assert.Equal(t, "TRF", document.Prefix(entity.DocumentTypeTransfer))
	assert.Equal(t, "EXP", document.Prefix(entity.DocumentTypeExpense))
	assert.Empty(t, document.Prefix("no-existe"))
}
