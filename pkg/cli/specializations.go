package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/funvibe/funscope/internal/inspect"
	"github.com/funvibe/funscope/internal/report"
	"github.com/funvibe/funscope/internal/rt"
)

func init() {
	var (
		callable string
		sig      string
	)

	specsCmd := &cobra.Command{
		Use:   "specializations <snapshot>",
		Short: "List compiled variants of a callable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := loadImage(args[0])
			if err != nil {
				return err
			}
			c, err := findCallable(img, callable)
			if err != nil {
				return err
			}

			var specs map[*rt.CompiledVariant]*rt.MethodDef
			if sig != "" {
				types, err := parseSig(img, sig)
				if err != nil {
					return err
				}
				specs = inspect.SpecializationsFor(c, types)
			} else {
				specs = inspect.Specializations(c)
			}

			variants := make([]*rt.CompiledVariant, 0, len(specs))
			for v := range specs {
				variants = append(variants, v)
			}
			sort.Slice(variants, func(i, j int) bool {
				if variants[i].Signature() != variants[j].Signature() {
					return variants[i].Signature() < variants[j].Signature()
				}
				return variants[i].ID.String() < variants[j].ID.String()
			})
			for _, v := range variants {
				fmt.Fprintf(os.Stdout, "%s  method %s  %s\n", v.Signature(), specs[v].SigString(), v.ID)
			}
			return nil
		},
	}
	specsCmd.Flags().StringVarP(&callable, "callable", "c", "", "callable name (plain or namespace-qualified)")
	specsCmd.Flags().StringVar(&sig, "sig", "", "restrict to a declared signature, e.g. Int,Float")
	specsCmd.MarkFlagRequired("callable")
	rootCmd.AddCommand(specsCmd)

	var edgeCallable string
	backedgesCmd := &cobra.Command{
		Use:   "backedges <snapshot>",
		Short: "Show the invalidation graph of a callable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := loadImage(args[0])
			if err != nil {
				return err
			}
			c, err := findCallable(img, edgeCallable)
			if err != nil {
				return err
			}
			cr, err := report.BuildCallable(c)
			if err != nil {
				return err
			}
			report.TextRenderer{Color: report.StdoutIsTTY()}.RenderCallable(os.Stdout, *cr)
			return nil
		},
	}
	backedgesCmd.Flags().StringVarP(&edgeCallable, "callable", "c", "", "callable name (plain or namespace-qualified)")
	backedgesCmd.MarkFlagRequired("callable")
	rootCmd.AddCommand(backedgesCmd)
}
