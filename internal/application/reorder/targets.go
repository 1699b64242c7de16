package reorder

// Target par tabla/campo de orden sobre el que actúa el intercambio.
// Label es el nombre de la entidad en los mensajes al usuario.
type Target struct {
	Kind  string
	Table string
	Field string
	Label string
}

var (
	Categories = Target{
		Kind:  "categories",
		Table: "categories",
		Field: "order",
		Label: "categorias",
	}
	Products = Target{
		Kind:  "products",
		Table: "products",
		Field: "display_order",
		Label: "produtos",
	}
	ProductGroups = Target{
		Kind:  "product_complement_groups",
		Table: "product_complement_groups",
		Field: "order",
		Label: "complementos",
	}
	ComplementItems = Target{
		Kind:  "complement_items",
		Table: "complement_items",
		Field: "order",
		Label: "complementos",
	}
	SpecificComplements = Target{
		Kind:  "product_specific_complements",
		Table: "product_specific_complements",
		Field: "order",
		Label: "complementos",
	}
)

// Targets todas las variantes, en el orden en que las recorre la auditoría.
var Targets = []Target{Categories, Products, ProductGroups, ComplementItems, SpecificComplements}

// SuccessMessage notificación mostrada tras un movimiento exitoso.
func (t Target) SuccessMessage() string {
	return "ordem das " + t.Label + " atualizada"
}

// FailureMessage notificación mostrada cuando falla alguna actualización.
func (t Target) FailureMessage() string {
	return "erro ao atualizar ordem das " + t.Label
}
