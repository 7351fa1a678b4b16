// Package ui is the interactive terminal storefront: a header with the cart
// widget, the product list at "/" and the cart at "/cart".
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nikolayk812/shopcart/internal/catalogview"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/port"
	"go.uber.org/zap"
)

type Route string

const (
	RouteCatalog Route = "/"
	RouteCart    Route = "/cart"
)

type cartLoadedMsg struct {
	lines []domain.CartLine
	err   error
}

type Options struct {
	Version string
	Now     func() time.Time
	Logger  *zap.Logger
}

// Model is the root bubbletea model. The cart store is injected once and
// shared by the header, catalog and cart views.
type Model struct {
	ctx    context.Context
	cart   port.CartStore
	logger *zap.Logger

	route   Route
	catalog CatalogPage
	cartPg  CartPage
	count   int
	err     error

	keys    keyMap
	help    help.Model
	styles  Styles
	version string
	year    int
	width   int
}

func New(ctx context.Context, controller *catalogview.Controller, cart port.CartStore, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	styles := DefaultStyles()

	return Model{
		ctx:     ctx,
		cart:    cart,
		logger:  opts.Logger.Named("ui"),
		route:   RouteCatalog,
		catalog: NewCatalogPage(controller, styles),
		cartPg:  NewCartPage(styles),
		keys:    defaultKeyMap(),
		help:    help.New(),
		styles:  styles,
		version: opts.Version,
		year:    opts.Now().Year(),
	}
}

func (m Model) Init() tea.Cmd {
	store, ctx := m.cart, m.ctx
	return tea.Batch(m.catalog.Init(ctx), func() tea.Msg {
		lines, err := store.Snapshot(ctx)
		return cartLoadedMsg{lines: lines, err: err}
	})
}

func (m Model) Route() Route {
	return m.route
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case cartLoadedMsg:
		m.applyCart(msg.lines, msg.err)
		return m, nil

	case catalogLoadedMsg:
		var cmd tea.Cmd
		m.catalog, cmd = m.catalog.Update(msg)
		m.setErr(m.catalog.refreshInCart(m.ctx))
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.catalog, cmd = m.catalog.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	m.err = nil

	switch m.route {
	case RouteCatalog:
		switch {
		case key.Matches(msg, m.keys.ToCart):
			m.navigate(RouteCart)
		case key.Matches(msg, m.keys.Up):
			m.catalog.moveCursor(-1)
		case key.Matches(msg, m.keys.Down):
			m.catalog.moveCursor(1)
		case key.Matches(msg, m.keys.Add):
			m.addSelected()
		}

	case RouteCart:
		switch {
		case key.Matches(msg, m.keys.ToShop):
			m.navigate(RouteCatalog)
		case key.Matches(msg, m.keys.Up):
			m.cartPg.moveCursor(-1)
		case key.Matches(msg, m.keys.Down):
			m.cartPg.moveCursor(1)
		case key.Matches(msg, m.keys.Increase):
			m.mutateSelected(m.cart.Increase)
		case key.Matches(msg, m.keys.Decrease):
			m.mutateSelected(m.cart.Decrease)
		case key.Matches(msg, m.keys.Remove):
			m.mutateSelected(m.cart.Remove)
		}
	}

	return m, nil
}

func (m *Model) navigate(route Route) {
	m.route = route
	m.reloadCart()
}

// addSelected adds the highlighted product unless it is already in the cart,
// mirroring the disabled "add" affordance.
func (m *Model) addSelected() {
	product, ok := m.catalog.selected()
	if !ok || m.catalog.inCart[product.ID] {
		return
	}

	if err := m.catalog.controller.AddToCart(m.ctx, product.ID); err != nil {
		m.setErr(err)
		return
	}

	m.reloadCart()
}

func (m *Model) mutateSelected(op func(context.Context, domain.ProductID) error) {
	line, ok := m.cartPg.selected()
	if !ok {
		return
	}

	if err := op(m.ctx, line.ID); err != nil {
		m.setErr(err)
		return
	}

	m.reloadCart()
}

func (m *Model) reloadCart() {
	lines, err := m.cart.Snapshot(m.ctx)
	m.applyCart(lines, err)
}

func (m *Model) applyCart(lines []domain.CartLine, err error) {
	if err != nil {
		m.setErr(err)
		return
	}

	m.cartPg.setLines(lines)
	m.count = len(lines)
	m.setErr(m.catalog.refreshInCart(m.ctx))
}

func (m *Model) setErr(err error) {
	if err == nil {
		return
	}
	m.logger.Error("cart operation failed", zap.Error(err))
	m.err = err
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.headerView())
	sb.WriteString("\n\n")

	switch m.route {
	case RouteCart:
		sb.WriteString(m.cartPg.View())
		sb.WriteString("\n\n")
		sb.WriteString(m.help.ShortHelpView(m.keys.cartHelp()))
	default:
		sb.WriteString(m.catalog.View())
		sb.WriteString("\n")
		sb.WriteString(m.help.ShortHelpView(m.keys.catalogHelp()))
	}

	if m.err != nil {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Error.Render(m.err.Error()))
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render(fmt.Sprintf("shopcart %d. All rights reserved. v.%s", m.year, m.version)))
	sb.WriteString("\n")

	return sb.String()
}

func (m Model) headerView() string {
	logo := m.styles.Logo.Render("shopcart")
	widget := m.styles.Widget.Render(fmt.Sprintf("Cart (%d)", m.count))

	row := lipgloss.JoinHorizontal(lipgloss.Center, logo, widget)
	if m.width > 0 {
		gap := max(m.width-lipgloss.Width(logo)-lipgloss.Width(widget)-2, 1)
		row = lipgloss.JoinHorizontal(lipgloss.Center, logo, strings.Repeat(" ", gap), widget)
	}

	return m.styles.Header.Render(row)
}
