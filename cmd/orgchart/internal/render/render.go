// Copyright (c) 2026 The orgchart Authors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package render

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	br "github.com/pkg/browser"

	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/bootstrap"
	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/cfg"
	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/golang/base"
	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/ui"
	"github.com/rbacmatcher/orgchart/internal/orgchart"
	"github.com/rbacmatcher/orgchart/internal/orgdata"
	"github.com/rbacmatcher/orgchart/internal/osext"
	"github.com/rbacmatcher/orgchart/internal/resolve"
)

//go:embed assets/render.md
var mdRender string

var CmdRender = &base.Command{
	UsageLine:  "orgchart render [flags] <file>",
	Short:      "render an org chart from a spreadsheet",
	Long:       mdRender,
	FlagMask:   cfg.OmitLLMFlags | cfg.OmitListenFlag,
	PrintFlags: true,
	Run:        runRender,
}

var (
	filter   string
	openFile bool
)

// replaced in tests.
var (
	stdout        io.Writer = os.Stdout
	openInBrowser           = br.OpenFile
	isInteractive           = osext.IsInteractive
	confirm                 = ui.Confirm
)

func init() {
	CmdRender.Flag.StringVar(&filter, "filter", "", "row `filter`, i.e. \"Cost Center Name=Sales\"")
	CmdRender.Flag.BoolVar(&openFile, "open", false, "open the chart in the browser")
}

func runRender(ctx context.Context, cmd *base.Command, args []string) error {
	if len(args) == 0 {
		base.SetExitStatus(base.SInvalidParameters)
		return errors.New("spreadsheet name is required")
	}
	hint := strings.Join(args, " ")

	res, err := bootstrap.Service().Generate(ctx, orgchart.Request{Hint: hint, Filter: filter})
	if err != nil {
		base.SetExitStatus(exitStatus(err))
		return err
	}
	printResult(stdout, res)

	if !openFile && isInteractive() {
		if openFile, err = confirm("Open the chart in the browser?"); err != nil && !errors.Is(err, base.ErrOpCancelled) {
			cfg.Log.WarnContext(ctx, "confirmation failed", "error", err)
		}
	}
	if openFile {
		if err := openInBrowser(res.Chart.Path); err != nil {
			cfg.Log.WarnContext(ctx, "unable to open browser", "error", err)
		}
	}
	return nil
}

// exitStatus maps the pipeline error to the exit status.
func exitStatus(err error) base.StatusCode {
	var (
		nf *resolve.NotFoundError
		am *resolve.AmbiguousError
	)
	switch {
	case errors.As(err, &nf), errors.As(err, &am):
		return base.SUserError
	case errors.Is(err, orgdata.ErrMalformed), errors.Is(err, orgdata.ErrUnknownColumn):
		return base.SUserError
	default:
		return base.SApplicationError
	}
}

func printResult(w io.Writer, res *orgchart.Result) {
	title := lipgloss.NewRenderer(w).NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dim := color.New(color.Faint)

	fmt.Fprintln(w, title.Render("Chart created: "+res.Chart.Path))
	fmt.Fprintf(w, "  %d people, %d reporting lines, %s\n", res.Chart.Nodes, res.Chart.Edges, humanize.Bytes(uint64(res.Chart.Bytes)))
	src := res.Source.Path
	if !res.Source.Exact {
		src += fmt.Sprintf(" (%.0f%% match)", res.Source.Score*100)
	}
	dim.Fprintf(w, "  source: %s\n", src)
	if len(res.Roots) > 0 {
		dim.Fprintf(w, "  top: %s\n", strings.Join(res.Roots, ", "))
	}
	if res.Skipped > 0 {
		color.New(color.FgYellow).Fprintf(w, "  %d rows without an employee name were skipped\n", res.Skipped)
	}
}
