package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Kuberwastaken/meow/pkg/carrier"
	"github.com/Kuberwastaken/meow/pkg/meta"
	"github.com/Kuberwastaken/meow/pkg/stego"
)

var (
	extractOutput string
	extractRaw    bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <stego-image>",
	Short: "Recover a hidden payload from an image",
	Long: `Recover a hidden payload from a MEOW image.

Partial recoveries are written out too: damaged regions decode as
zeros and the affected blocks are listed, so you can decide whether
the result is usable.

Example:
  meow extract photo.meow -o secret.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := carrier.Load(args[0])
		if err != nil {
			return err
		}

		res, err := stego.Extract(carrier.Samples(img), codec)
		if err != nil {
			return fmt.Errorf("extraction failed: %w", err)
		}

		data := res.Payload
		if !extractRaw && meta.Compressed(data) {
			if decompressed, err := meta.Decompress(data); err == nil {
				data = decompressed
			} else {
				fmt.Fprintf(os.Stderr, "warning: payload looks compressed but did not decompress: %v\n", err)
			}
		}

		switch res.Status {
		case stego.StatusSuccess:
			fmt.Printf("Recovered %d bytes\n", len(data))
		case stego.StatusPartialSuccess:
			fmt.Printf("Partial recovery: %d bytes, %d damaged block(s) %v, checksum ok: %v\n",
				len(data), len(res.FailedBlocks), res.FailedBlocks, res.ChecksumOK)
		}
		if res.HeaderFromSecondary {
			fmt.Println("Header recovered from secondary copy")
		}

		if extractOutput == "" {
			_, err := os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(extractOutput, data, 0600); err != nil {
			return fmt.Errorf("writing payload: %w", err)
		}
		fmt.Printf("Wrote %s\n", extractOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Output file (default: stdout)")
	extractCmd.Flags().BoolVar(&extractRaw, "raw", false, "Skip automatic zstd decompression")
}
