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

package files

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/bootstrap"
	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/cfg"
	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/golang/base"
	"github.com/rbacmatcher/orgchart/internal/orgdata"
	"github.com/rbacmatcher/orgchart/internal/resolve"
)

//go:embed assets/files.md
var mdFiles string

var CmdFiles = &base.Command{
	UsageLine:  "orgchart files [flags] [file]",
	Short:      "list spreadsheets, or the cost centers of one",
	Long:       mdFiles,
	FlagMask:   cfg.OmitOutputFlag | cfg.OmitLLMFlags | cfg.OmitListenFlag,
	PrintFlags: true,
	Run:        runFiles,
}

var bare = new(bool)

func init() {
	CmdFiles.Flag.BoolVar(bare, "b", false, "bare output format (just names)")
}

var stdout io.Writer = os.Stdout

func runFiles(ctx context.Context, cmd *base.Command, args []string) error {
	svc := bootstrap.Service()
	if len(args) > 0 {
		return listCostCenters(ctx, stdout, svc, strings.Join(args, " "))
	}

	cc, err := svc.Files(ctx)
	if err != nil {
		base.SetExitStatus(base.SApplicationError)
		return err
	}
	if len(cc) == 0 {
		base.SetExitStatus(base.SUserError)
		return fmt.Errorf("no spreadsheets found in %s", strings.Join(svc.Dirs(), ", "))
	}
	if *bare {
		printBare(stdout, cc)
	} else {
		printFull(stdout, cc)
	}
	return nil
}

type costCenterLister interface {
	CostCenters(ctx context.Context, hint string) (resolve.Match, []string, error)
}

func listCostCenters(ctx context.Context, w io.Writer, svc costCenterLister, hint string) error {
	m, ccs, err := svc.CostCenters(ctx, hint)
	if err != nil {
		base.SetExitStatus(base.SUserError)
		if errors.Is(err, orgdata.ErrUnknownColumn) {
			return fmt.Errorf("%s has no cost center column", m.Name)
		}
		return err
	}
	if *bare {
		for _, c := range ccs {
			fmt.Fprintln(w, c)
		}
		return nil
	}
	fmt.Fprintf(w, "Cost centers in %s:\n\n", m.Path)
	for _, c := range ccs {
		fmt.Fprintln(w, "\t"+c)
	}
	if len(ccs) == 0 {
		fmt.Fprintln(w, "\tnone")
	}
	return nil
}

func printFull(w io.Writer, cc []resolve.Candidate) {
	tw := tabwriter.NewWriter(w, 2, 8, 1, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw,
		"name\tsize\tmodified\tdirectory\n"+
			"----\t----\t--------\t---------")
	for _, c := range cc {
		size, modified := "-", "unknown"
		if fi, err := os.Stat(c.Path); err == nil {
			size = humanize.Bytes(uint64(fi.Size()))
			modified = humanize.Time(fi.ModTime())
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Name, size, modified, c.Dir)
	}
}

func printBare(w io.Writer, cc []resolve.Candidate) {
	for _, c := range cc {
		fmt.Fprintln(w, c.Path)
	}
}
