package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kuberwastaken/meow/pkg/carrier"
	"github.com/Kuberwastaken/meow/pkg/meta"
)

var (
	annotateOutput string
	annotateTags   []string
)

// annotateCmd represents the annotate command
var annotateCmd = &cobra.Command{
	Use:   "annotate <image>",
	Short: "Embed a metadata document describing the image into itself",
	Long: `Compute image statistics and visual features, bundle them with
free-form key=value annotations into a metadata document, and embed the
document into the image's own pixels.

Example:
  meow annotate photo.png --tag author=jane --tag license=CC0`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		annotations := make(map[string]string, len(annotateTags))
		for _, tag := range annotateTags {
			k, v, ok := strings.Cut(tag, "=")
			if !ok {
				return fmt.Errorf("invalid tag %q: want key=value", tag)
			}
			annotations[k] = v
		}

		img, err := carrier.Load(args[0])
		if err != nil {
			return err
		}

		doc := meta.Build(img, annotations)
		data, err := doc.Marshal()
		if err != nil {
			return err
		}

		out := annotateOutput
		if out == "" {
			out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".meow"
		}
		if err := embedFile(args[0], out, data); err != nil {
			return err
		}

		fmt.Printf("Embedded metadata document (%d bytes compressed) into %s\n", len(data), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(annotateCmd)
	annotateCmd.Flags().StringVarP(&annotateOutput, "output", "o", "", "Output file (default: image name with .meow extension)")
	annotateCmd.Flags().StringArrayVar(&annotateTags, "tag", nil, "key=value annotation (repeatable)")
}
