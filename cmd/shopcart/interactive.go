package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikolayk812/shopcart/internal/ui"
	"github.com/spf13/cobra"
)

func (c *cli) runInteractive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, c.cfg, c.configPath, c.logger)
	if err != nil {
		return err
	}
	defer a.close()

	model := ui.New(ctx, a.controller, a.store, ui.Options{
		Version: version,
		Logger:  c.logger,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("program.Run: %w", err)
	}

	return nil
}
