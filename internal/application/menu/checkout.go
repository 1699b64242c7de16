package menu

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/cardapio-api/internal/application/dto"
	"github.com/jhoicas/cardapio-api/internal/domain"
	"github.com/jhoicas/cardapio-api/internal/domain/entity"
)

const maxLineQuantity = 99

// CheckoutUseCase convierte un carrito en un pedido listo para enviar por WhatsApp.
// Los precios siempre salen del menú público, nunca del cliente.
type CheckoutUseCase struct {
	menu        *MenuUseCase
	countryCode string
	printer     *message.Printer
	log         zerolog.Logger
}

// NewCheckoutUseCase construye el caso de uso. countryCode se antepone a números sin código de país.
func NewCheckoutUseCase(menu *MenuUseCase, countryCode string, log zerolog.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{
		menu:        menu,
		countryCode: entity.WhatsAppDigits(countryCode),
		printer:     message.NewPrinter(language.BrazilianPortuguese),
		log:         log,
	}
}

type pricedLine struct {
	qty         int
	name        string
	size        string
	note        string
	unit        decimal.Decimal
	total       decimal.Decimal
	complements []pricedComplement
}

type pricedComplement struct {
	qty   int
	name  string
	price decimal.Decimal
}

// Checkout valida el carrito contra el menú de la tienda y arma mensaje y enlace wa.me.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, slug string, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	store, err := uc.menu.repos.Stores.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	if !store.Open {
		return nil, domain.ErrStoreClosed
	}
	phone := uc.whatsAppNumber(store.WhatsApp)
	if phone == "" {
		return nil, domain.ErrStoreNoWhatsApp
	}
	if err := validateCustomer(in); err != nil {
		return nil, err
	}

	m, err := uc.menu.forStore(ctx, store)
	if err != nil {
		return nil, err
	}
	products := make(map[int64]*dto.MenuProduct)
	for ci := range m.Categories {
		for pi := range m.Categories[ci].Products {
			p := &m.Categories[ci].Products[pi]
			products[p.ID] = p
		}
	}

	lines := make([]pricedLine, 0, len(in.Items))
	subtotal := decimal.Zero
	for i, cl := range in.Items {
		pl, err := priceLine(products, cl)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		subtotal = subtotal.Add(pl.total)
		lines = append(lines, *pl)
	}

	fee := decimal.Zero
	if in.DeliveryType == entity.DeliveryDelivery {
		fee = store.DeliveryFee
	}
	total := subtotal.Add(fee)
	ref := strings.ToUpper(uuid.NewString()[:8])
	text := uc.orderMessage(store, in, ref, lines, subtotal, fee, total)

	uc.log.Info().
		Str("loja", store.Slug).
		Str("referencia", ref).
		Int("itens", len(lines)).
		Str("total", total.StringFixed(2)).
		Msg("pedido gerado para WhatsApp")

	return &dto.CheckoutResponse{
		Reference:   ref,
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Total:       total,
		Message:     text,
		WhatsAppURL: "https://wa.me/" + phone + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20"),
	}, nil
}

func validateCustomer(in dto.CheckoutRequest) error {
	if len(in.Items) == 0 {
		return domain.ErrEmptyCart
	}
	if strings.TrimSpace(in.CustomerName) == "" {
		return fmt.Errorf("%w: customer_name es requerido", domain.ErrInvalidInput)
	}
	switch in.DeliveryType {
	case entity.DeliveryPickup:
	case entity.DeliveryDelivery:
		if strings.TrimSpace(in.Address) == "" {
			return fmt.Errorf("%w: address es requerido para entrega", domain.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: delivery_type debe ser pickup o delivery", domain.ErrInvalidInput)
	}
	return nil
}

// priceLine calcula el precio unitario (tamaño o base + complementos) y valida las reglas de cada grupo.
func priceLine(products map[int64]*dto.MenuProduct, cl dto.CartLine) (*pricedLine, error) {
	p, ok := products[cl.ProductID]
	if !ok {
		return nil, fmt.Errorf("%w: producto %d no disponible", domain.ErrInvalidInput, cl.ProductID)
	}
	if cl.Quantity < 1 || cl.Quantity > maxLineQuantity {
		return nil, fmt.Errorf("%w: quantity entre 1 y %d", domain.ErrInvalidInput, maxLineQuantity)
	}

	pl := &pricedLine{qty: cl.Quantity, name: p.Name, note: strings.TrimSpace(cl.Note), unit: p.Price}
	switch {
	case len(p.Sizes) > 0 && cl.SizeID == nil:
		return nil, fmt.Errorf("%w: %s requiere tamaño", domain.ErrInvalidInput, p.Name)
	case len(p.Sizes) == 0 && cl.SizeID != nil:
		return nil, fmt.Errorf("%w: %s no tiene tamaños", domain.ErrInvalidInput, p.Name)
	case cl.SizeID != nil:
		found := false
		for _, s := range p.Sizes {
			if s.ID == *cl.SizeID {
				pl.unit, pl.size, found = s.Price, s.Name, true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: tamaño %d no pertenece a %s", domain.ErrInvalidInput, *cl.SizeID, p.Name)
		}
	}

	type choice struct {
		group  int
		option dto.MenuOption
	}
	options := make(map[int64]choice)
	for gi, g := range p.Groups {
		for _, o := range g.Options {
			options[o.ID] = choice{group: gi, option: o}
		}
	}
	counts := make([]int, len(p.Groups))
	for _, cc := range cl.Complements {
		ch, ok := options[cc.ItemID]
		if !ok {
			return nil, fmt.Errorf("%w: complemento %d no disponible para %s", domain.ErrInvalidInput, cc.ItemID, p.Name)
		}
		if cc.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity de complemento inválida", domain.ErrInvalidInput)
		}
		counts[ch.group] += cc.Quantity
		pl.unit = pl.unit.Add(ch.option.Price.Mul(decimal.NewFromInt(int64(cc.Quantity))))
		pl.complements = append(pl.complements, pricedComplement{qty: cc.Quantity, name: ch.option.Name, price: ch.option.Price})
	}
	for gi, g := range p.Groups {
		if counts[gi] < g.MinSelect || (g.MaxSelect > 0 && counts[gi] > g.MaxSelect) {
			return nil, fmt.Errorf("%w: %s (%d elegidos, mínimo %d, máximo %d)", domain.ErrComplementRuleBad, g.Title, counts[gi], g.MinSelect, g.MaxSelect)
		}
	}
	pl.total = pl.unit.Mul(decimal.NewFromInt(int64(cl.Quantity)))
	return pl, nil
}

func (uc *CheckoutUseCase) whatsAppNumber(raw string) string {
	digits := entity.WhatsAppDigits(raw)
	if digits == "" {
		return ""
	}
	if len(digits) <= 11 && uc.countryCode != "" {
		return uc.countryCode + digits
	}
	return digits
}

func (uc *CheckoutUseCase) money(d decimal.Decimal) string {
	return uc.printer.Sprintf("R$ %.2f", d.InexactFloat64())
}

func (uc *CheckoutUseCase) orderMessage(
	store *entity.Store,
	in dto.CheckoutRequest,
	ref string,
	lines []pricedLine,
	subtotal, fee, total decimal.Decimal,
) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Novo pedido #%s*\n", ref)
	fmt.Fprintf(&b, "Loja: %s\n", store.Name)
	fmt.Fprintf(&b, "Cliente: %s\n\n", strings.TrimSpace(in.CustomerName))

	for _, l := range lines {
		name := l.name
		if l.size != "" {
			name += " (" + l.size + ")"
		}
		fmt.Fprintf(&b, "%dx %s - %s\n", l.qty, name, uc.money(l.total))
		for _, c := range l.complements {
			fmt.Fprintf(&b, "   + %dx %s (%s)\n", c.qty, c.name, uc.money(c.price))
		}
		if l.note != "" {
			fmt.Fprintf(&b, "   Obs: %s\n", l.note)
		}
	}

	fmt.Fprintf(&b, "\nSubtotal: %s\n", uc.money(subtotal))
	if in.DeliveryType == entity.DeliveryDelivery {
		fmt.Fprintf(&b, "Taxa de entrega: %s\n", uc.money(fee))
	}
	fmt.Fprintf(&b, "*Total: %s*\n\n", uc.money(total))

	if in.DeliveryType == entity.DeliveryDelivery {
		fmt.Fprintf(&b, "Entrega: %s\n", strings.TrimSpace(in.Address))
	} else {
		b.WriteString("Retirada no local\n")
	}
	if pm := strings.TrimSpace(in.PaymentMethod); pm != "" {
		fmt.Fprintf(&b, "Pagamento: %s\n", pm)
	}
	if note := strings.TrimSpace(in.Note); note != "" {
		fmt.Fprintf(&b, "Obs: %s\n", note)
	}
	return b.String()
}
