// internal/cli/convert.go
package cli

import (
	"github.com/spf13/cobra"

	"pblast/internal/cmdutil"
	"pblast/internal/matrixio"
)

type convertOptions struct {
	ref       refFlags
	out       string
	outFormat string
}

func convertCommand(_ *globals) *cobra.Command {
	o := &convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a reference matrix between file formats",
		Example: `  pblast convert -r ref.tsv -o ref.pbm
  pblast convert -r calls.fa --ref-format consensus --ref-probs calls.txt -o ref.tsv.gz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if o.out == "" {
				return usagef("flag --out-file is required")
			}
			ref, err := o.ref.load()
			if err != nil {
				return err
			}
			if err := matrixio.Save(o.out, o.outFormat, ref); err != nil {
				return runtimeErr(err)
			}
			cmdutil.Log.Infof("matrix saved to %s", o.out)
			return nil
		},
	}
	fs := cmd.Flags()
	o.ref.register(fs)
	fs.StringVarP(&o.out, "out-file", "o", "", `matrix file to write (".pbm" = binary, ".gz" compresses)`)
	fs.StringVar(&o.outFormat, "out-format", matrixio.FormatAuto, "output format: auto | tsv | binary")
	return cmd
}
