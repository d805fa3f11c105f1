package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kuberwastaken/meow/pkg/carrier"
	"github.com/Kuberwastaken/meow/pkg/stego"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <stego-image>",
	Short: "Report header and recovery details without writing the payload",
	Long: `Inspect a MEOW image: resolve the redundant header, attempt a full
decode and report per-block outcomes.

Example:
  meow inspect photo.meow`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := carrier.Load(args[0])
		if err != nil {
			return err
		}

		res, err := stego.Extract(carrier.Samples(img), codec)
		if err != nil {
			if errors.Is(err, stego.ErrHeaderUnrecoverable) {
				return fmt.Errorf("no recoverable MEOW data: %w", err)
			}
			fmt.Printf("Status:           %s\n", res.Status)
			return err
		}

		h := res.Header
		fmt.Printf("Status:           %s\n", res.Status)
		fmt.Printf("Format version:   %d\n", h.Version)
		fmt.Printf("Payload length:   %d bytes\n", h.PayloadLength)
		fmt.Printf("Error correction: %v\n", h.ECC)
		fmt.Printf("Checksum:         %#08x (match: %v)\n", h.Checksum, res.ChecksumOK)
		fmt.Printf("Header source:    %s\n", headerSource(res))

		if h.ECC {
			corrected := 0
			for _, b := range res.Blocks {
				corrected += b.Corrected
			}
			fmt.Printf("Blocks:           %d total, %d failed, %d symbols corrected\n",
				len(res.Blocks), len(res.FailedBlocks), corrected)
			for _, idx := range res.FailedBlocks {
				fmt.Printf("  block %d: unrecoverable\n", idx)
			}
		}
		return nil
	},
}

func headerSource(res *stego.Result) string {
	if res.HeaderFromSecondary {
		return "secondary copy (primary damaged)"
	}
	return "primary copy"
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
