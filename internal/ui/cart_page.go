package ui

import (
	"fmt"
	"strings"

	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/format"
	"github.com/nikolayk812/shopcart/internal/totals"
)

// CartPage renders the cart lines and the running total at /cart.
type CartPage struct {
	styles Styles
	lines  []domain.CartLine
	cursor int
}

func NewCartPage(styles Styles) CartPage {
	return CartPage{styles: styles}
}

func (p *CartPage) setLines(lines []domain.CartLine) {
	p.lines = lines
	if p.cursor >= len(lines) {
		p.cursor = max(len(lines)-1, 0)
	}
}

func (p *CartPage) moveCursor(delta int) {
	if len(p.lines) == 0 {
		return
	}
	p.cursor = min(max(p.cursor+delta, 0), len(p.lines)-1)
}

func (p CartPage) selected() (domain.CartLine, bool) {
	if p.cursor >= len(p.lines) {
		return domain.CartLine{}, false
	}
	return p.lines[p.cursor], true
}

func (p CartPage) View() string {
	var sb strings.Builder

	sb.WriteString(p.styles.Title.Render("Cart"))
	sb.WriteString("\n")

	if len(p.lines) == 0 {
		sb.WriteString(p.styles.Muted.Render("Your cart is empty."))
		sb.WriteString("\n")
	}

	for i, line := range p.lines {
		row := fmt.Sprintf("%-40s [-] %3d [+]  %s",
			truncate(line.Title, 40), line.Quantity, p.styles.Price.Render(format.GBP(line.Subtotal().Amount)))

		if i == p.cursor {
			sb.WriteString(p.styles.Selected.Render("> " + row))
		} else {
			sb.WriteString(p.styles.Item.Render(row))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(p.styles.Muted.Render(fmt.Sprintf("Items: %d", totals.Units(p.lines))))
	sb.WriteString("\n")
	sb.WriteString(p.styles.Total.Render("Total: " + format.GBP(totals.Sum(p.lines))))

	return sb.String()
}
