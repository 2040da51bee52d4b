// Package cmd implements the amitopics command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/maastricht-university/ami-topics/config"
	"github.com/maastricht-university/ami-topics/corpus"
	"github.com/maastricht-university/ami-topics/logging"
	"github.com/maastricht-university/ami-topics/orchestrator"
)

// app is the state shared by subcommands once the root command has loaded
// configuration.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Root
	log     *logrus.Logger
}

// NewRootCmd builds the command tree. Flags override AMI_* environment
// variables, which override the config file.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "amitopics",
		Short:         "Rebuild AMI meeting topic trees with transcript text",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default: config/$CONFIG_ENV/config.yaml)")
	pf.String("words-dir", "", "directory of <meeting>.<speaker>.words.xml channel files")
	pf.String("topics-dir", "", "directory of <meeting>.topic.xml segmentation files")
	pf.String("ontology", "", "default-topics.xml ontology file")
	pf.String("taxonomy-map", "", "YAML/JSON id -> name map used instead of the ontology")
	pf.String("output-dir", "", "directory for per-meeting output")
	pf.String("format", "", "output format: json or yaml")
	pf.String("log-level", "", "log level")
	pf.String("log-format", "", "log format: text or json")

	for key, flag := range map[string]string{
		"paths.words":         "words-dir",
		"paths.topics":        "topics-dir",
		"paths.ontology":      "ontology",
		"paths.taxonomy_map":  "taxonomy-map",
		"paths.outputs":       "output-dir",
		"output.format":       "format",
		"pipeline.log_level":  "log-level",
		"pipeline.log_format": "log-format",
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(a.meetingCmd())
	root.AddCommand(a.batchCmd())
	root.AddCommand(a.taxonomyCmd())
	return root
}

// Execute runs the root command and reports any error on stderr.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func (a *app) load() error {
	c, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	log, err := logging.New(c.Pipeline.LogLvl, c.Pipeline.LogFormat, os.Stderr)
	if err != nil {
		return err
	}
	if f := a.v.ConfigFileUsed(); f != "" {
		log.WithField("file", f).Debug("config loaded")
	}
	a.cfg, a.log = c, log
	return nil
}

// taxonomy loads the taxonomy map if one is configured, else flattens the ontology.
func (a *app) taxonomy() (orchestrator.Taxonomy, error) {
	var (
		entries []corpus.TaxonomyEntry
		err     error
	)
	if a.cfg.Paths.TaxonomyMap != "" {
		entries, err = corpus.ReadTaxonomyMapFile(a.cfg.Paths.TaxonomyMap)
	} else {
		entries, err = corpus.ReadTaxonomyFile(a.cfg.Paths.Ontology)
	}
	if err != nil {
		return orchestrator.Taxonomy{}, fmt.Errorf("taxonomy: %w", err)
	}
	tax := orchestrator.NewTaxonomy(entries)
	if _, ok := tax.Name(a.cfg.Taxonomy.OtherID); !ok {
		a.log.WithField("other_id", a.cfg.Taxonomy.OtherID).Warn("fallback topic type is not in the taxonomy")
	}
	return tax, nil
}

func (a *app) pipeline(m *orchestrator.Metrics) (*orchestrator.Pipeline, error) {
	tax, err := a.taxonomy()
	if err != nil {
		return nil, err
	}
	a.log.WithField("entries", tax.Len()).Debug("taxonomy loaded")
	return orchestrator.NewPipeline(a.cfg, tax, a.log, m), nil
}
