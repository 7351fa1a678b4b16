package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nikolayk812/shopcart/internal/cart"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/format"
	"github.com/nikolayk812/shopcart/internal/totals"
	"github.com/spf13/cobra"
)

func (c *cli) newCartCmd() *cobra.Command {
	cartCmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect and change the persisted cart",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print the cart lines and total",
		Args:  cobra.NoArgs,
		RunE: c.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			return printCart(cmd, a.store)
		}),
	}

	addCmd := &cobra.Command{
		Use:   "add [product-id]",
		Short: "Add a catalog product to the cart with quantity 1",
		Args:  cobra.ExactArgs(1),
		RunE: c.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}

			if _, err := c.mountCatalog(cmd, a.controller); err != nil {
				return err
			}

			if err := a.controller.AddToCart(cmd.Context(), id); err != nil {
				return err
			}
			return printCart(cmd, a.store)
		}),
	}

	incCmd := &cobra.Command{
		Use:   "inc [product-id]",
		Short: "Increase the quantity of a cart line by one",
		Args:  cobra.ExactArgs(1),
		RunE:  c.withProduct(func(ctx context.Context, s *cart.Store, id domain.ProductID) error { return s.Increase(ctx, id) }),
	}

	decCmd := &cobra.Command{
		Use:   "dec [product-id]",
		Short: "Decrease the quantity of a cart line by one, removing it at zero",
		Args:  cobra.ExactArgs(1),
		RunE:  c.withProduct(func(ctx context.Context, s *cart.Store, id domain.ProductID) error { return s.Decrease(ctx, id) }),
	}

	removeCmd := &cobra.Command{
		Use:     "rm [product-id]",
		Aliases: []string{"remove"},
		Short:   "Remove a product from the cart",
		Args:    cobra.ExactArgs(1),
		RunE:    c.withProduct(func(ctx context.Context, s *cart.Store, id domain.ProductID) error { return s.Remove(ctx, id) }),
	}

	setCmd := &cobra.Command{
		Use:   "set [product-id] [quantity]",
		Short: "Set the quantity of a cart line to a positive integer",
		Args:  cobra.ExactArgs(2),
		RunE: c.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}

			quantity, err := cart.ParseQuantity(args[1])
			if err != nil {
				return err
			}

			if err := a.store.SetQuantity(cmd.Context(), id, quantity); err != nil {
				return err
			}
			return printCart(cmd, a.store)
		}),
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every line from the cart",
		Args:  cobra.NoArgs,
		RunE: c.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			if err := a.store.Clear(cmd.Context()); err != nil {
				return err
			}
			return printCart(cmd, a.store)
		}),
	}

	cartCmd.AddCommand(listCmd, addCmd, incCmd, decCmd, removeCmd, setCmd, clearCmd)

	return cartCmd
}

func (c *cli) withApp(fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), c.cfg, c.configPath, c.logger)
		if err != nil {
			return err
		}
		defer a.close()

		return fn(cmd, a, args)
	}
}

func (c *cli) withProduct(op func(ctx context.Context, s *cart.Store, id domain.ProductID) error) func(*cobra.Command, []string) error {
	return c.withApp(func(cmd *cobra.Command, a *app, args []string) error {
		id, err := parseProductID(args[0])
		if err != nil {
			return err
		}

		if err := op(cmd.Context(), a.store, id); err != nil {
			return err
		}
		return printCart(cmd, a.store)
	})
}

func parseProductID(arg string) (domain.ProductID, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("product id[%s] is not an integer", arg)
	}
	return domain.ProductID(id), nil
}

func printCart(cmd *cobra.Command, store *cart.Store) error {
	lines, err := store.Snapshot(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(lines) == 0 {
		fmt.Fprintln(out, "Cart is empty.")
		fmt.Fprintf(out, "Total: %s\n", format.GBP(totals.Sum(lines)))
		return nil
	}

	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, []string{
			strconv.FormatInt(int64(line.ID), 10),
			line.Title,
			strconv.Itoa(line.Quantity),
			format.GBP(line.Price),
			format.GBP(line.Subtotal().Amount),
		})
	}

	fmt.Fprintln(out, newTable("ID", "Title", "Qty", "Price", "Subtotal").Rows(rows...).String())
	fmt.Fprintf(out, "Total: %s\n", format.GBP(totals.Sum(lines)))

	return nil
}
