package cmd

import (
	"github.com/pdfdig/pdfdig/internal/env"
	"github.com/spf13/cobra"
)

func Execute() error {
	rootCmd := &cobra.Command{
		Use:   env.AppName,
		Short: env.AppName + " - embedded image extractor for PDF files",
	}

	rootCmd.AddCommand(DefineExtractCommand())
	rootCmd.AddCommand(DefineFormatsCommand())
	rootCmd.AddCommand(DefineRecoverCommand())
	rootCmd.AddCommand(DefineMountCommand())
	rootCmd.AddCommand(DefineBundleCommand())

	return rootCmd.Execute()
}
