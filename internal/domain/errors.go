package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Reordenamiento.
	ErrItemNotInScope    = errors.New("el elemento no pertenece a la lista")
	ErrDuplicateOrder    = errors.New("valores de orden duplicados en la lista")
	ErrUnsafeOrder       = errors.New("valor de orden fuera del rango seguro")
	ErrReorderInProgress = errors.New("ya hay un reordenamiento en curso para esta lista")

	// Pedido por WhatsApp.
	ErrStoreClosed       = errors.New("la tienda está cerrada")
	ErrStoreNoWhatsApp   = errors.New("la tienda no tiene WhatsApp configurado")
	ErrEmptyCart         = errors.New("el carrito está vacío")
	ErrComplementRuleBad = errors.New("la selección de complementos no cumple las reglas del grupo")
)
