// This file is part of MinIO VSFSCK
// Copyright (c) 2026 MinIO, Inc.
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
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/minio/vsfsck/pkg/fsck"
	"github.com/minio/vsfsck/pkg/utils"
)

var stdout io.Writer = os.Stdout

func eprintf(quiet, asErr bool, format string, a ...interface{}) {
	if quiet {
		return
	}
	if asErr {
		fmt.Fprint(os.Stderr, color.RedString("Error: "))
	}
	fmt.Fprintf(os.Stderr, format, a...)
}

func printYAML(rep report) error {
	y, err := utils.ToYAML(rep)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, y)
	return nil
}

func printJSON(rep report) error {
	j, err := utils.ToJSON(rep)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, j)
	return nil
}

func newTableWriter(header table.Row) table.Writer {
	writer := table.NewWriter()
	writer.SetOutputMirror(stdout)
	writer.AppendHeader(header)

	style := table.StyleColoredDark
	style.Color.IndexColumn = text.Colors{text.FgHiBlue, text.BgHiBlack}
	style.Color.Header = text.Colors{text.FgHiBlue, text.BgHiBlack}
	writer.SetStyle(style)

	return writer
}

func repairedString(finding fsck.Finding) string {
	switch {
	case finding.Repaired:
		return "yes"
	case finding.Kind.Repairable():
		return "no"
	default:
		return "-"
	}
}

func statusString(status fsck.Status) string {
	switch status {
	case fsck.StatusClean:
		return color.HiGreenString(string(status))
	case fsck.StatusRepaired:
		return color.HiYellowString(string(status))
	default:
		return color.HiRedString(string(status))
	}
}

func printTable(rep report) error {
	result := rep.Result

	if findings := result.Findings(); len(findings) > 0 {
		writer := newTableWriter(table.Row{"STAGE", "FINDING", "DETAIL", "REPAIRED"})
		for _, stage := range result.Stages {
			for _, finding := range stage.Findings {
				writer.AppendRow(table.Row{stage.Stage, finding.Kind, finding.String(), repairedString(finding)})
			}
		}
		writer.Render()
		fmt.Fprintln(stdout)
	}

	for _, warning := range result.Warnings {
		eprintf(quietFlag, false, "%v\n", color.HiYellowString("WARNING: %v", warning))
	}

	stats := result.Stats
	fmt.Fprintf(stdout, "Inodes: %v checked, %v valid, %v marked\n", stats.InodesChecked, stats.ValidInodes, stats.MarkedInodes)
	fmt.Fprintf(stdout, "Data blocks: %v referenced, %v marked\n", stats.ReferencedBlocks, stats.MarkedBlocks)
	fmt.Fprintf(stdout, "Findings: %v, fixed: %v\n", len(result.Findings()), result.Fixed())
	if rep.BackupDir != "" {
		fmt.Fprintf(stdout, "Original bitmaps saved to %v\n", rep.BackupDir)
	}
	if result.Repair && !result.Written {
		fmt.Fprintln(stdout, color.HiRedString("Corrected bitmaps were NOT written"))
	}
	fmt.Fprintf(stdout, "Status: %v\n", statusString(rep.Status))
	return nil
}
