package entity

import "time"

// SequenceCounter guarda el último consecutivo emitido para un prefijo de
// documento. Una fila por prefijo, propiedad exclusiva del Sequence Allocator;
// el incremento es atómico en el store (nunca leer-parsear-incrementar).
type SequenceCounter struct {
	Prefix    string
	LastValue int64
	Padding   int // ancho del cero-relleno en el número formateado (default 6)
	UpdatedAt time.Time
}
