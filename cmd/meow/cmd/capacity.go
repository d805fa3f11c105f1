package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kuberwastaken/meow/pkg/carrier"
	"github.com/Kuberwastaken/meow/pkg/ecc"
	"github.com/Kuberwastaken/meow/pkg/stego"
)

// capacityCmd represents the capacity command
var capacityCmd = &cobra.Command{
	Use:   "capacity <image>",
	Short: "Report how much payload an image can hold",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := carrier.Load(args[0])
		if err != nil {
			return err
		}

		b := img.Bounds()
		count := carrier.SampleCount(img)
		fmt.Printf("Image:      %dx%d (%d LSB slots)\n", b.Dx(), b.Dy(), count)
		fmt.Printf("ECC mode:   %d bytes\n", stego.MaxPayload(count, codec))
		fmt.Printf("Raw mode:   %d bytes\n", stego.MaxPayload(count, ecc.Nop{}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(capacityCmd)
}
