package cmd

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/maastricht-university/ami-topics/orchestrator"
)

func (a *app) batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Rebuild the topic tree of every meeting in the topics directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := prometheus.NewRegistry()
			p, err := a.pipeline(orchestrator.NewMetrics(reg))
			if err != nil {
				return err
			}

			res, err := p.RunBatch(cmd.Context())
			if err != nil {
				return err
			}

			if path := a.cfg.Batch.MetricsFile; path != "" {
				if err := prometheus.WriteToTextfile(path, reg); err != nil {
					return fmt.Errorf("write metrics: %w", err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d meetings: %d ok, %d failed (run %s)\n",
				res.Total, res.Succeeded, res.Failed, res.RunID)
			for _, f := range res.Failures() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", f.Error)
			}
			if res.Failed > 0 {
				return fmt.Errorf("%d of %d meetings failed", res.Failed, res.Total)
			}
			return nil
		},
	}

	cmd.Flags().Int("workers", 0, "meetings processed concurrently")
	cmd.Flags().String("metrics-file", "", "write prometheus metrics to this file when done")
	cmd.Flags().Bool("manifest", true, "write "+orchestrator.ManifestName+" to the output directory")
	_ = a.v.BindPFlag("batch.workers", cmd.Flags().Lookup("workers"))
	_ = a.v.BindPFlag("batch.metrics_file", cmd.Flags().Lookup("metrics-file"))
	_ = a.v.BindPFlag("batch.manifest", cmd.Flags().Lookup("manifest"))
	return cmd
}
