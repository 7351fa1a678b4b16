package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikolayk812/shopcart/internal/catalogview"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/format"
)

type catalogLoadedMsg struct {
	state domain.CatalogState
}

// CatalogPage renders the product list at the root route.
type CatalogPage struct {
	controller *catalogview.Controller
	spinner    spinner.Model
	styles     Styles

	state  domain.CatalogState
	inCart map[domain.ProductID]bool
	cursor int
}

func NewCatalogPage(controller *catalogview.Controller, styles Styles) CatalogPage {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Price

	return CatalogPage{
		controller: controller,
		spinner:    sp,
		styles:     styles,
		state:      controller.State(),
		inCart:     make(map[domain.ProductID]bool),
	}
}

func (p CatalogPage) Init(ctx context.Context) tea.Cmd {
	controller := p.controller
	return tea.Batch(p.spinner.Tick, func() tea.Msg {
		return catalogLoadedMsg{state: controller.Mount(ctx)}
	})
}

func (p CatalogPage) loading() bool {
	return p.state.Phase == domain.CatalogIdle || p.state.Phase == domain.CatalogLoading
}

func (p CatalogPage) Update(msg tea.Msg) (CatalogPage, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		p.state = msg.state
		p.cursor = 0
		return p, nil
	case spinner.TickMsg:
		if !p.loading() {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *CatalogPage) moveCursor(delta int) {
	n := len(p.state.Products)
	if n == 0 {
		return
	}
	p.cursor = min(max(p.cursor+delta, 0), n-1)
}

func (p CatalogPage) selected() (domain.Product, bool) {
	if p.state.Phase != domain.CatalogReady || p.cursor >= len(p.state.Products) {
		return domain.Product{}, false
	}
	return p.state.Products[p.cursor], true
}

// refreshInCart asks the controller which listed products are already in the cart.
func (p *CatalogPage) refreshInCart(ctx context.Context) error {
	inCart, err := p.controller.InCart(ctx)
	if err != nil {
		return err
	}
	p.inCart = inCart
	return nil
}

func (p CatalogPage) View() string {
	var sb strings.Builder

	sb.WriteString(p.styles.Title.Render("Products"))
	sb.WriteString("\n")

	switch p.state.Phase {
	case domain.CatalogFailed:
		sb.WriteString(p.styles.Error.Render(catalogview.FailureMessage))
		return sb.String()
	case domain.CatalogIdle, domain.CatalogLoading:
		sb.WriteString(p.spinner.View() + " Loading products...")
		return sb.String()
	}

	if len(p.state.Products) == 0 {
		sb.WriteString(p.styles.Muted.Render("No products available."))
		return sb.String()
	}

	for i, product := range p.state.Products {
		line := fmt.Sprintf("%-40s %s", truncate(product.Title, 40), p.styles.Price.Render(format.GBP(product.Price)))
		if p.inCart[product.ID] {
			line += " " + p.styles.Added.Render("[added]")
		}

		if i == p.cursor {
			sb.WriteString(p.styles.Selected.Render("> " + line))
		} else {
			sb.WriteString(p.styles.Item.Render(line))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
