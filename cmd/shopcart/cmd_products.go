package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/nikolayk812/shopcart/internal/catalogview"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/format"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (c *cli) newProductsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "Fetch and print the product catalog",
		Args:  cobra.NoArgs,
		RunE: c.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			state, err := c.mountCatalog(cmd, a.controller)
			if err != nil {
				return err
			}

			inCart, err := a.controller.InCart(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(state.Products))
			for _, p := range state.Products {
				marker := ""
				if inCart[p.ID] {
					marker = "added"
				}
				rows = append(rows, []string{strconv.FormatInt(int64(p.ID), 10), p.Title, format.GBP(p.Price), marker})
			}

			fmt.Fprintln(cmd.OutOrStdout(), newTable("ID", "Title", "Price", "Cart").Rows(rows...).String())
			return nil
		}),
	}
}

func (c *cli) mountCatalog(cmd *cobra.Command, controller *catalogview.Controller) (domain.CatalogState, error) {
	state := controller.Mount(cmd.Context())
	if state.Phase != domain.CatalogReady {
		c.logger.Debug("catalog not ready", zap.Stringer("phase", state.Phase), zap.Error(state.Err))
		return state, errors.New(catalogview.FailureMessage)
	}
	return state, nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}
