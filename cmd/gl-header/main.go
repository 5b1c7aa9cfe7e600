package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	glheader "github.com/hellenic-development/gl-header"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Printf("Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gl-header",
		Short:         "Generate a minimal OpenGL loader header",
		Long:          "Extracts allow-listed constants and functions from glcorearb.h and writes a self-contained header with a function-pointer loader",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerate,
	}

	f := rootCmd.Flags()
	f.StringVarP(&genFlags.output, "output", "o", "", "Output header file (required)")
	f.StringVarP(&genFlags.source, "source", "s", "glcorearb.h", "Path or http(s) URL of glcorearb.h")
	f.StringVarP(&genFlags.allowList, "allowlist", "a", "", "YAML allow-list (default: built-in list)")
	f.StringVar(&genFlags.maxVersion, "max-version", "4.5", "Drop GL versions at or above this one")
	f.StringVar(&genFlags.namespace, "namespace", "", "Prefix for fixed-width aliases, e.g. \"vx::\"")
	f.StringVar(&genFlags.include, "include", "common/aliases.h", "Header providing the fixed-width aliases")
	f.StringVar(&genFlags.loader, "loader", "vx_gl_init", "Name of the generated loader function")
	f.StringVar(&genFlags.implFlag, "impl-flag", "VX_GL_IMPLEMENTATION", "Macro enabling pointer storage and the loader body")

	rootCmd.MarkFlagRequired("output")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gl-header version %s\n", glheader.Version)
		},
	}

	rootCmd.AddCommand(versionCmd, newAuditCmd())

	return rootCmd
}
