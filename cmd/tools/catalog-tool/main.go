// cmd/tools/catalog-tool/main.go
package main

import (
	"fmt"
	"io"
	"os"

	"bizpath-workers/internal/catalog"
	"bizpath-workers/internal/common/config"
	"bizpath-workers/internal/common/logger"

	"github.com/spf13/cobra"
)

type options struct {
	configFile  string
	catalogFile string
	verbose     bool
}

func main() {
	if err := rootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "catalog-tool",
		Short:         "Inspect, seed and index the business model catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default: configs/config.yaml)")
	root.PersistentFlags().StringVarP(&opts.catalogFile, "file", "f", "", "catalog file, JSON or YAML (default: embedded catalog)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(validateCmd(opts))
	root.AddCommand(exportCmd(opts))
	root.AddCommand(seedCmd(opts))
	root.AddCommand(indexCmd(opts))
	root.AddCommand(rankCmd(opts))
	root.AddCommand(registryCmd())

	return root
}

func (o *options) logger() logger.Logger {
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	return logger.NewZapAdapter(logger.New(level, "console", "stderr"))
}

func (o *options) loadConfig() (*config.Config, error) {
	if o.configFile != "" {
		return config.LoadFromFile(o.configFile)
	}
	return config.Load()
}

// loadCatalog reads --file when given, otherwise the embedded catalog.
func (o *options) loadCatalog() (*catalog.Catalog, []catalog.Issue, error) {
	if o.catalogFile == "" {
		return catalog.Default(), nil, nil
	}
	return catalog.LoadFile(o.catalogFile, o.logger())
}
