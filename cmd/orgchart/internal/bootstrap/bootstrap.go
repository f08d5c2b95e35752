// Package bootstrap contains the initialisation functions that are shared
// between the top level commands.
package bootstrap

import (
	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/cfg"
	"github.com/rbacmatcher/orgchart/internal/chart"
	"github.com/rbacmatcher/orgchart/internal/orgchart"
	"github.com/rbacmatcher/orgchart/internal/resolve"
)

// Resolver returns the spreadsheet resolver for the configured directories.
func Resolver() *resolve.Resolver {
	return resolve.New(cfg.SearchDirs(),
		resolve.WithThreshold(cfg.Threshold),
		resolve.WithLogger(cfg.Log),
	)
}

// Service returns the chart pipeline initialised from the configuration.
func Service() *orgchart.Service {
	var ropts = []chart.Option{chart.WithLogger(cfg.Log)}
	if cfg.OutputDir != "" {
		ropts = append(ropts, chart.WithOutputDir(cfg.OutputDir))
	}
	return orgchart.New(
		Resolver(),
		chart.New(ropts...),
		orgchart.WithExtractOptions(cfg.ExtractOptions()),
		orgchart.WithLogger(cfg.Log),
	)
}
