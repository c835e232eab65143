package main

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newSchemasCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "schemas",
		Short: "List the built-in and configured schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSchemas(v, cmd.OutOrStdout())
		},
	}
}

func runSchemas(v *viper.Viper, w io.Writer) error {
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}

	tbl := tablewriter.NewWriter(w)
	tbl.Header([]string{"Name", "Columns", "Typed", "Duration", "Description"})
	var data [][]string
	for _, name := range cat.Names() {
		d, err := cat.Lookup(name)
		if err != nil {
			return err
		}
		data = append(data, []string{
			d.Name,
			strconv.Itoa(len(d.Required)),
			strconv.Itoa(len(d.Types)),
			d.DurationColumn,
			d.Description,
		})
	}
	if err := tbl.Bulk(data); err != nil {
		return err
	}
	return tbl.Render()
}
