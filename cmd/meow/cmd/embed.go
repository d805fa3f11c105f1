package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kuberwastaken/meow/pkg/carrier"
	"github.com/Kuberwastaken/meow/pkg/config"
	"github.com/Kuberwastaken/meow/pkg/ecc"
	"github.com/Kuberwastaken/meow/pkg/meta"
	"github.com/Kuberwastaken/meow/pkg/stego"
)

var (
	embedOutput   string
	embedNoECC    bool
	embedCompress bool
)

// embedCmd represents the embed command
var embedCmd = &cobra.Command{
	Use:   "embed <carrier-image> <payload-file>",
	Short: "Hide a payload file inside an image",
	Long: `Hide a payload file inside a carrier image.

The carrier may be PNG, JPEG or GIF; the output is always PNG since
lossy formats would destroy the hidden bits.

Example:
  meow embed photo.png secret.txt -o photo.meow`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		carrierPath, payloadPath := args[0], args[1]

		// Flags win over config file defaults.
		if path := config.GetDefaultConfigPath(); config.ConfigExists(path) {
			if cfg, err := config.LoadConfig(path); err == nil {
				if !cmd.Flags().Changed("no-ecc") {
					embedNoECC = !cfg.Embed.ECC
				}
				if !cmd.Flags().Changed("compress") {
					embedCompress = cfg.Embed.Compress
				}
			}
		}

		data, err := os.ReadFile(payloadPath)
		if err != nil {
			return fmt.Errorf("reading payload: %w", err)
		}

		if embedCompress {
			compressed, err := meta.Compress(data)
			if err != nil {
				return fmt.Errorf("compressing payload: %w", err)
			}
			data = compressed
		}

		out := embedOutput
		if out == "" {
			out = strings.TrimSuffix(carrierPath, filepath.Ext(carrierPath)) + ".meow"
		}

		if err := embedFile(carrierPath, out, data); err != nil {
			return err
		}

		mode := "ecc"
		if embedNoECC || !codec.Available() {
			mode = "raw"
		}
		fmt.Printf("Embedded %d bytes (%s mode) into %s\n", len(data), mode, out)
		return nil
	},
}

// embedFile runs the shared load -> embed -> save pipeline.
func embedFile(carrierPath, outPath string, data []byte) error {
	img, err := carrier.Load(carrierPath)
	if err != nil {
		return err
	}

	c := codec
	if embedNoECC {
		c = ecc.Nop{}
	}

	samples := carrier.Samples(img)
	if err := stego.Embed(samples, data, c); err != nil {
		return fmt.Errorf("embedding payload: %w", err)
	}

	stegoImg, err := carrier.Apply(img, samples)
	if err != nil {
		return err
	}
	return carrier.SavePNG(outPath, stegoImg)
}

func init() {
	rootCmd.AddCommand(embedCmd)
	embedCmd.Flags().StringVarP(&embedOutput, "output", "o", "", "Output file (default: carrier name with .meow extension)")
	embedCmd.Flags().BoolVar(&embedNoECC, "no-ecc", false, "Skip Reed-Solomon error correction")
	embedCmd.Flags().BoolVar(&embedCompress, "compress", false, "zstd-compress the payload before embedding")
}
