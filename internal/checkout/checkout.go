package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/warungmanto/storefront/internal/domain"
	"github.com/warungmanto/storefront/internal/pricing"
)

const (
	DefaultShopName       = "Warung Manto"
	DefaultWhatsAppURL    = "https://api.whatsapp.com/send"
	DefaultWhatsAppNumber = "6281234567890"
)

// Builder renders order summaries and WhatsApp deep links
type Builder struct {
	ShopName      string
	BaseURL       string
	DefaultNumber string
}

// NewBuilder fills empty fields with the shop defaults
func NewBuilder(shopName, baseURL, defaultNumber string) *Builder {
	if shopName == "" {
		shopName = DefaultShopName
	}
	if baseURL == "" {
		baseURL = DefaultWhatsAppURL
	}
	if defaultNumber == "" {
		defaultNumber = DefaultWhatsAppNumber
	}
	return &Builder{ShopName: shopName, BaseURL: baseURL, DefaultNumber: defaultNumber}
}

// Summary is the rendered order
type Summary struct {
	Message    string
	GrandTotal float64
}

// BuildMessage renders the numbered order lines, the total and the customer block.
// An empty customer name is allowed here; callers decide whether it is required.
func (b *Builder) BuildMessage(items []domain.CartItem, customer domain.CustomerInfo) Summary {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Halo %s! 👋\nSaya ingin memesan:\n\n", b.ShopName)

	grandTotal := 0.0
	for i, item := range items {
		res := pricing.ForItem(item)
		subtotal := res.PricePerUnit * float64(item.Quantity)
		grandTotal += subtotal

		tierLabel := ""
		if !res.IsBase() {
			tierLabel = " (" + res.TierName + ")"
		}
		fmt.Fprintf(&sb, "%d. %s x%d%s — %s\n", i+1, item.Name, item.Quantity, tierLabel, pricing.FormatRupiah(subtotal))
	}

	fmt.Fprintf(&sb, "\n*Total: %s*\n", pricing.FormatRupiah(grandTotal))
	if customer.Name != "" {
		sb.WriteString("\nNama: " + customer.Name)
	}
	if customer.Address != "" {
		sb.WriteString("\nAlamat: " + customer.Address)
	}

	return Summary{Message: sb.String(), GrandTotal: grandTotal}
}

// GenerateURL returns the WhatsApp link carrying the order summary.
// An empty destination uses the builder's default number.
func (b *Builder) GenerateURL(items []domain.CartItem, customer domain.CustomerInfo, destination string) string {
	return b.link(b.BuildMessage(items, customer).Message, destination)
}

func (b *Builder) link(message, destination string) string {
	if destination == "" {
		destination = b.DefaultNumber
	}
	q := url.Values{}
	q.Set("phone", destination)
	q.Set("text", message)
	return b.BaseURL + "?" + q.Encode()
}

// Checkout is the result handed back to the storefront
type Checkout struct {
	URL        string  `json:"url"`
	Message    string  `json:"message"`
	GrandTotal float64 `json:"grand_total"`
}

// Build renders the message and link together
func (b *Builder) Build(items []domain.CartItem, customer domain.CustomerInfo, destination string) Checkout {
	summary := b.BuildMessage(items, customer)
	return Checkout{
		URL:        b.link(summary.Message, destination),
		Message:    summary.Message,
		GrandTotal: summary.GrandTotal,
	}
}

// GenerateURL builds a link with the default shop settings
func GenerateURL(items []domain.CartItem, customer domain.CustomerInfo, destination string) string {
	return NewBuilder("", "", "").GenerateURL(items, customer, destination)
}
