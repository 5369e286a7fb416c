package cli

import (
	"github.com/company/omnirepo/internal/registry"
	"github.com/spf13/cobra"
)

func (a *App) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered packages",
		Long:  "Shows every package by category, in registry order, with its directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList()
		},
	}
}

func (a *App) runList() error {
	pkgs := registry.New(a.ws).Packages()
	if len(pkgs) == 0 {
		a.output.Println("No packages in workspace %s", a.ws.Name())
		return nil
	}

	rows := make([][]string, 0, len(pkgs))
	for _, p := range pkgs {
		rows = append(rows, []string{p.Category, p.Name, p.Dir})
	}
	a.output.Table([]string{"CATEGORY", "NAME", "DIRECTORY"}, rows)
	a.output.Println("")
	a.output.Println("%d package(s) in workspace %s", len(pkgs), a.ws.Name())
	return nil
}
