// Command cmsctl inspects and maintains the site's CMS integration: raw
// fetches, slug previews, cache warming and purging.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"statehouse_site/internal/app"
	"statehouse_site/internal/config"
	"statehouse_site/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configFile string
	cmsURL     string
	token      string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:          "cmsctl",
		Short:        "Inspect and maintain the school site's CMS data",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&g.configFile, "config", "", "config file (default: site.yaml in the working directory, if present)")
	root.PersistentFlags().StringVar(&g.cmsURL, "cms-url", "", "override cms.url")
	root.PersistentFlags().StringVar(&g.token, "token", "", "override cms.token")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		newFetchCmd(g),
		newSlugCmd(),
		newWarmCmd(g),
		newCacheCmd(g),
	)
	return root
}

// open loads the configuration with flag overrides applied and connects the
// infrastructure.
func (g *globalFlags) open(opts app.Options) (*app.Infra, error) {
	cfg, err := config.Load(g.configFile)
	if err != nil {
		return nil, err
	}
	if g.cmsURL != "" {
		cfg.CMS.URL = g.cmsURL
	}
	if g.token != "" {
		cfg.CMS.Token = g.token
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level := "warn"
	if g.verbose {
		level = "debug"
	}
	cfg.LogLevel = level
	logger, err := logging.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	infra, err := app.Open(cfg, logger, opts)
	if err != nil {
		logger.Error("failed to initialize", zap.Error(err))
		return nil, err
	}
	return infra, nil
}
