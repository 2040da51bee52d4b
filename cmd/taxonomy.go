package cmd

import (
	"github.com/spf13/cobra"

	"github.com/maastricht-university/ami-topics/corpus"
)

func (a *app) taxonomyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "taxonomy",
		Short: "Print the flattened topic taxonomy as a YAML id -> name map",
		Long: `Print the flattened topic taxonomy as a YAML id -> name map.

The output can be passed back with --taxonomy-map.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tax, err := a.taxonomy()
			if err != nil {
				return err
			}
			return corpus.WriteTaxonomyMap(cmd.OutOrStdout(), tax.Entries())
		},
	}
}
