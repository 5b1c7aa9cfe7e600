package main

import (
	"fmt"
	"os"

	glheader "github.com/hellenic-development/gl-header"
	"github.com/hellenic-development/gl-header/pkg/emitter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var genFlags struct {
	output     string
	source     string
	allowList  string
	maxVersion string
	namespace  string
	include    string
	loader     string
	implFlag   string
}

func runGenerate(cmd *cobra.Command, args []string) error {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	cyan.Println("\nOpenGL Header Generator")
	cyan.Println("=======================")
	cyan.Println()

	maxVersion, err := glheader.ParseVersion(genFlags.maxVersion)
	if err != nil {
		return err
	}

	list, err := glheader.LoadAllowList(genFlags.allowList)
	if err != nil {
		return err
	}

	opts := glheader.Options{
		Source:     genFlags.source,
		AllowList:  list,
		MaxVersion: maxVersion,
		Namespace:  genFlags.namespace,
		Header: emitter.Config{
			Include:            genFlags.include,
			Loader:             genFlags.loader,
			ImplementationFlag: genFlags.implFlag,
		},
		Logger: &cliLogger{},
	}

	result, err := glheader.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	cyan.Println("\nSummary:")
	fmt.Printf("  • Version blocks: %d\n", len(result.Blocks))
	fmt.Printf("  • Lexed: %d constants, %d functions\n", result.LexedConstants, result.LexedFunctions)
	fmt.Printf("  • Selected: %d constants, %d functions\n", len(result.Selection.Constants), len(result.Selection.Functions))
	if n := len(result.UnmatchedConstants) + len(result.UnmatchedFunctions); n > 0 {
		fmt.Printf("  • Unmatched allow-list entries: %d\n", n)
	}

	green.Printf("\nWriting to %s... ", genFlags.output)
	if err := os.WriteFile(genFlags.output, []byte(result.Header), 0644); err != nil {
		red.Printf("✗\n")
		return err
	}
	green.Println("✓")

	green.Printf("\nSuccessfully generated %s\n\n", genFlags.output)
	return nil
}

// cliLogger implements glheader.Logger with colored terminal output.
type cliLogger struct{}

func (l *cliLogger) Infof(format string, args ...any) {
	color.New(color.FgYellow).Printf(format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Printf("⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Printf("✗ "+format+"\n", args...)
}
