// Package receipt renders finalized transactions as plain-text receipts
// sized for thermal printers.
package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/dnoor/kasir/internal/domain"
)

// Settings controls receipt layout and branding. The zero value is not
// usable; start from DefaultSettings and override fields explicitly.
type Settings struct {
	BusinessName        string
	FooterText          string
	ShowReceiptNumber   bool
	ReceiptNumberPrefix string
	ShowDateTime        bool
	// Width is the line width in characters. 32 fits 58mm paper,
	// 42 fits 80mm.
	Width int
}

// DefaultSettings returns the standard receipt configuration.
func DefaultSettings() Settings {
	return Settings{
		BusinessName:        "Dapur El Noor",
		FooterText:          "Thank you for choosing us!\nPlease come again!",
		ShowReceiptNumber:   true,
		ReceiptNumberPrefix: "INV-",
		ShowDateTime:        true,
		Width:               32,
	}
}

// FormatRupiah renders an amount as Indonesian rupiah with dot thousand
// separators, e.g. 15000 -> "Rp15.000".
func FormatRupiah(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	if negative {
		return "-Rp" + b.String()
	}
	return "Rp" + b.String()
}

// Render produces the plain-text receipt for one transaction.
func Render(tx *domain.Transaction, settings Settings) string {
	if settings.Width <= 0 {
		settings.Width = DefaultSettings().Width
	}

	var b strings.Builder
	line := func(s string) { b.WriteString(s); b.WriteByte('\n') }

	line(center(settings.BusinessName, settings.Width))
	line(strings.Repeat("=", settings.Width))

	if settings.ShowReceiptNumber {
		line("Receipt: " + settings.ReceiptNumberPrefix + shortID(tx.ID))
	}
	if settings.ShowDateTime {
		line("Date: " + tx.Timestamp.Format(time.DateTime))
	}
	line("Customer: " + tx.Customer)
	line("Payment: " + strings.ToUpper(string(tx.PaymentMethod)))
	line(strings.Repeat("-", settings.Width))

	if tx.OrderDetails != nil {
		for _, item := range tx.OrderDetails.Items {
			left := fmt.Sprintf("%dx %s", item.Quantity, item.Name)
			line(spread(left, FormatRupiah(item.Price*item.Quantity), settings.Width))
			for _, topping := range item.SelectedToppings {
				line(spread("  + "+topping.Name, FormatRupiah(topping.Price), settings.Width))
			}
			if item.Notes != "" {
				line("  Note: " + item.Notes)
			}
		}
		line(strings.Repeat("-", settings.Width))
	}

	line(spread("Total:", FormatRupiah(tx.Amount), settings.Width))
	if tx.IsCash() {
		line(spread("Payment:", FormatRupiah(tx.PaymentAmount), settings.Width))
		line(spread("Change:", FormatRupiah(tx.Change), settings.Width))
	}
	line(strings.Repeat("=", settings.Width))

	for _, footer := range strings.Split(settings.FooterText, "\n") {
		line(center(footer, settings.Width))
	}

	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

// spread left-aligns one string and right-aligns the other on one line,
// falling back to a single space when they do not fit.
func spread(left, right string, width int) string {
	gap := width - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
