package main

import (
	"fmt"
	"io"
	"strconv"

	glheader "github.com/hellenic-development/gl-header"
	"github.com/hellenic-development/gl-header/pkg/audit"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newAuditCmd() *cobra.Command {
	var (
		directory string
		allowList string
		files     string
		jobs      int
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Find allow-listed names the sources no longer reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := glheader.LoadAllowList(allowList)
			if err != nil {
				return err
			}

			report, err := audit.Scan(cmd.Context(), audit.Config{
				Dir:         directory,
				Files:       glheader.ParseList(files),
				Concurrency: jobs,
			}, list)
			if err != nil {
				return err
			}

			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&directory, "directory", "d", "", "Source directory (required)")
	cmd.Flags().StringVarP(&allowList, "allowlist", "a", "", "YAML allow-list (default: built-in list)")
	cmd.Flags().StringVarP(&files, "files", "f", "sdl_gl_platform.cpp", "Comma-separated file names to scan")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 4, "Files scanned in parallel")
	cmd.MarkFlagRequired("directory")

	return cmd
}

func printReport(w io.Writer, report *audit.Report) {
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)

	cyan.Fprintln(w, "Scanned files:")
	for _, f := range report.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}
	fmt.Fprintln(w)

	if report.Unused() == 0 {
		green.Fprintln(w, "✓ Every allow-listed name is referenced")
		return
	}

	var data [][]string
	for _, name := range report.UnusedConstants {
		data = append(data, []string{"constant", name, strconv.Itoa(report.Counts[name])})
	}
	for _, name := range report.UnusedFunctions {
		data = append(data, []string{"function", name, strconv.Itoa(report.Counts[name])})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"KIND", "NAME", "REFERENCES"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()

	color.New(color.FgYellow).Fprintf(w, "\n⚠ %d unused allow-list entries\n", report.Unused())
}
