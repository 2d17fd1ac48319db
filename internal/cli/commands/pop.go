package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/viant/idprovider"
	"gopkg.in/yaml.v3"
)

type popOptions struct {
	count       int
	configURL   string
	reservedURL string
	reserved    []int64
	scope       string
	source      string
	maxRetries  int
	logLevel    string
	format      string
}

// NewPopCommand creates the command allocating identifiers.
func NewPopCommand() *cobra.Command {
	opts := &popOptions{}
	cmd := &cobra.Command{
		Use:   "pop",
		Short: "Allocate one or more identifiers",
		Long: `Allocate identifiers from a freshly constructed provider.

Reserved identifiers (--reserved, --reserved-url or the config file) are
issued first, last entry first; random identifiers follow.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPop(cmd, opts)
		},
	}
	flags := cmd.Flags()
	flags.IntVarP(&opts.count, "count", "n", 1, "number of identifiers to allocate")
	flags.StringVarP(&opts.configURL, "config", "c", "", "config location (YAML or JSON)")
	flags.StringVar(&opts.reservedURL, "reserved-url", "", "reserved pool location (YAML or JSON)")
	flags.Int64SliceVar(&opts.reserved, "reserved", nil, "inline reserved identifiers")
	flags.StringVar(&opts.scope, "scope", "", "scope to allocate from (default: config default scope)")
	flags.StringVar(&opts.source, "source", "", "random source: random or wide")
	flags.IntVar(&opts.maxRetries, "max-retries", 0, "cap on regenerations after a collision, 0 means unbounded")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVarP(&opts.format, "format", "o", "text", "output format: text, json or yaml")
	return cmd
}

func runPop(cmd *cobra.Command, opts *popOptions) error {
	if opts.count < 0 {
		return fmt.Errorf("count must be >= 0")
	}
	switch opts.format {
	case "", "text", "json", "yaml":
	default:
		return fmt.Errorf("unsupported format: %v", opts.format)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := idprovider.DefaultConfig()
	if opts.configURL != "" {
		loaded, err := idprovider.LoadConfig(ctx, nil, opts.configURL)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if opts.source != "" {
		cfg.Source = opts.source
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if cmd.Flags().Changed("max-retries") {
		cfg.MaxRetries = opts.maxRetries
	}
	scope := cfg.DefaultScope
	if opts.scope != "" {
		scope = opts.scope
	}
	var options []idprovider.Option
	if opts.reservedURL != "" {
		if cfg.Scopes == nil {
			cfg.Scopes = map[string]*idprovider.ScopeConfig{}
		}
		seed := cfg.Scopes[scope]
		if seed == nil {
			seed = &idprovider.ScopeConfig{}
			cfg.Scopes[scope] = seed
		}
		seed.ReservedURL = opts.reservedURL
	}
	if len(opts.reserved) > 0 {
		options = append(options, idprovider.WithReserved(scope, opts.reserved...))
	}

	srv, err := idprovider.NewFromConfig(cfg, options...)
	if err != nil {
		return err
	}
	ids := make([]int64, 0, opts.count)
	for i := 0; i < opts.count; i++ {
		id, err := srv.PopScope(ctx, scope)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	return writeIDs(cmd.OutOrStdout(), ids, opts.format)
}

func writeIDs(w io.Writer, ids []int64, format string) error {
	switch format {
	case "", "text":
		for _, id := range ids {
			if _, err := fmt.Fprintln(w, id); err != nil {
				return err
			}
		}
		return nil
	case "json":
		encoder := json.NewEncoder(w)
		return encoder.Encode(map[string][]int64{"ids": ids})
	case "yaml":
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		return encoder.Encode(map[string][]int64{"ids": ids})
	}
	return fmt.Errorf("unsupported format: %v", format)
}
