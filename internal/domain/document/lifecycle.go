// Package document contiene la lógica pura del motor de documentos: máquina
// de estados del ciclo de vida, reglas de efecto sobre inventario por tipo y
// la calculadora de totales. Sin I/O ni estado; todo es determinista.
package document

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// transitions define las aristas legales del ciclo de vida:
// draft → pending → {approved | rejected} → (approved) → processed.
// cancelled se maneja aparte: alcanzable desde cualquier estado no terminal.
var transitions = map[string][]string{
	entity.DocumentStatusDraft:    {entity.DocumentStatusPending},
	entity.DocumentStatusPending:  {entity.DocumentStatusApproved, entity.DocumentStatusRejected},
	entity.DocumentStatusApproved: {entity.DocumentStatusProcessed},
}

// CanTransition indica si el paso from → to es legal.
// cancelled es legal desde todo estado no terminal.
func CanTransition(from, to string) bool {
	if to == entity.DocumentStatusCancelled {
		return !isTerminal(from)
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func isTerminal(status string) bool {
	switch status {
	case entity.DocumentStatusRejected, entity.DocumentStatusProcessed, entity.DocumentStatusCancelled:
		return true
	}
	return false
}

// CreationStatus devuelve el estado inicial según el tipo: los tipos de efecto
// inmediato (venta de mostrador, devoluciones, traslados, gastos) nacen en
// pending; órdenes de compra y cotizaciones nacen en draft y pasan por
// aprobación antes de tocar inventario.
func CreationStatus(docType string) string {
	switch docType {
	case entity.DocumentTypePurchaseOrder, entity.DocumentTypeQuotation:
		return entity.DocumentStatusDraft
	}
	return entity.DocumentStatusPending
}
