// Command shadow_compare replays read requests against this API and the legacy
// Express service and reports where status codes or list envelopes disagree.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

var defaultTargets = []target{
	{Method: http.MethodGet, Path: "/universities", Critical: true},
	{Method: http.MethodGet, Path: "/colleges?sort=name", Critical: true},
	{Method: http.MethodGet, Path: "/departments?fields=name,code", Critical: true},
	{Method: http.MethodGet, Path: "/programs?page=1&limit=5", Critical: true},
	{Method: http.MethodGet, Path: "/courses?creditHours[gte]=3&sort=-code&page=2&limit=2", Critical: true},
	{Method: http.MethodGet, Path: "/courses?page=999", Critical: true},
	{Method: http.MethodGet, Path: "/admin-units"},
	{Method: http.MethodGet, Path: "/deanships"},
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		goBase      string
		legacyBase  string
		targetsPath string
		timeout     time.Duration
		parallel    int
	)

	cmd := &cobra.Command{
		Use:           "shadow_compare",
		Short:         "Compare list responses between this API and the legacy service",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targets := defaultTargets
			if targetsPath != "" {
				loaded, err := loadTargets(targetsPath)
				if err != nil {
					return fmt.Errorf("load targets: %w", err)
				}
				targets = loaded
			}

			client := &http.Client{Timeout: timeout}
			results := make([]comparison, len(targets))

			g, ctx := errgroup.WithContext(cmd.Context())
			if parallel < 1 {
				parallel = 1
			}
			g.SetLimit(parallel)
			for i, t := range targets {
				i, t := i, t
				g.Go(func() error {
					results[i] = compareTarget(ctx, client, goBase, legacyBase, t)
					return nil
				})
			}
			_ = g.Wait()

			breaking, optional := printReport(cmd.OutOrStdout(), results)
			if breaking > 0 {
				return fmt.Errorf("%d breaking differences (%d optional)", breaking, optional)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&goBase, "go-base", "http://localhost:8080/api", "Base URL of this API")
	flags.StringVar(&legacyBase, "legacy-base", "http://localhost:3000/api", "Base URL of the legacy service")
	flags.StringVar(&targetsPath, "targets", "", "JSON file with {\"targets\": [...]}; defaults to the built-in list")
	flags.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flags.IntVar(&parallel, "parallel", 4, "Concurrent comparisons")
	return cmd
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg struct {
		Targets []target `json:"targets"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return cfg.Targets, nil
}

