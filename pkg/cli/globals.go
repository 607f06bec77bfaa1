package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/funvibe/funscope/internal/inspect"
	"github.com/funvibe/funscope/internal/rt"
)

func init() {
	var (
		nsName    string
		recursive bool
		ff        filterFlags
	)

	globalsCmd := &cobra.Command{
		Use:   "globals <snapshot>",
		Short: "List globals of a namespace, optionally across its subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := loadImage(args[0])
			if err != nil {
				return err
			}
			ns, err := findNamespace(img, nsName)
			if err != nil {
				return err
			}
			f, err := ff.filter()
			if err != nil {
				return err
			}

			p := img.Prober()
			if !recursive {
				for _, name := range inspect.GlobalNames(p, ns, f) {
					printGlobal(ns, name)
				}
				return nil
			}

			byNS := inspect.RecursiveGlobalNames(p, ns, f)
			owners := make([]*rt.Namespace, 0, len(byNS))
			for owner := range byNS {
				owners = append(owners, owner)
			}
			sort.Slice(owners, func(i, j int) bool { return owners[i].Name < owners[j].Name })
			for _, owner := range owners {
				fmt.Fprintf(os.Stdout, "%s:\n", owner.Name)
				for _, name := range byNS[owner] {
					fmt.Fprint(os.Stdout, "  ")
					printGlobal(owner, name)
				}
			}
			return nil
		},
	}
	globalsCmd.Flags().StringVar(&nsName, "ns", "", "namespace to inspect (default: first in snapshot)")
	globalsCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "include all descendant namespaces")
	ff.register(globalsCmd)
	rootCmd.AddCommand(globalsCmd)

	var fnNS string
	functionsCmd := &cobra.Command{
		Use:   "functions <snapshot>",
		Short: "List callables bound in a namespace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := loadImage(args[0])
			if err != nil {
				return err
			}
			ns, err := findNamespace(img, fnNS)
			if err != nil {
				return err
			}
			for _, name := range inspect.FunctionNames(ns) {
				fmt.Fprintln(os.Stdout, name)
			}
			return nil
		},
	}
	functionsCmd.Flags().StringVar(&fnNS, "ns", "", "namespace to inspect (default: first in snapshot)")
	rootCmd.AddCommand(functionsCmd)
}

func printGlobal(ns *rt.Namespace, name string) {
	b, ok := ns.Binding(name)
	if !ok || b.Value == nil {
		return
	}
	fmt.Fprintf(os.Stdout, "%s :: %s = %s\n", name, b.Value.RuntimeType().Name, b.Value.Inspect())
}
