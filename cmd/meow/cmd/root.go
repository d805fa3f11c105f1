/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Kuberwastaken/meow/pkg/ecc"
)

// codec is resolved once before any subcommand runs and carried into
// every encode/decode path explicitly.
var codec ecc.Codec = ecc.Probe()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "meow",
	Short: "MEOW - steganographic image container",
	Long: `MEOW hides arbitrary payloads in the least-significant bits of an
image's pixels. The output is a standard PNG that opens in any viewer;
the hidden data is protected by redundant headers and Reed-Solomon
error correction so it survives localized LSB corruption.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
