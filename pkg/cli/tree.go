package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/funvibe/funscope/internal/inspect"
	"github.com/funvibe/funscope/internal/rt"
)

func init() {
	var typeName string

	treeCmd := &cobra.Command{
		Use:   "tree <snapshot>",
		Short: "Print the subtype tree rooted at a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := loadImage(args[0])
			if err != nil {
				return err
			}
			t, err := findType(img, typeName)
			if err != nil {
				return err
			}
			inspect.PrintTree(os.Stdout, rt.RegisteredSubtypes{}, t)
			return nil
		},
	}
	treeCmd.Flags().StringVarP(&typeName, "type", "t", "Any", "root type of the tree")
	rootCmd.AddCommand(treeCmd)

	var ancType string
	ancestorsCmd := &cobra.Command{
		Use:   "ancestors <snapshot>",
		Short: "Print a type's supertype chain, the type first and the root last",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := loadImage(args[0])
			if err != nil {
				return err
			}
			t, err := findType(img, ancType)
			if err != nil {
				return err
			}
			chain := inspect.Ancestors(t)
			names := make([]string, len(chain))
			for i, a := range chain {
				names[i] = a.Name
			}
			fmt.Fprintln(os.Stdout, strings.Join(names, " < "))
			return nil
		},
	}
	ancestorsCmd.Flags().StringVarP(&ancType, "type", "t", "", "type to walk")
	ancestorsCmd.MarkFlagRequired("type")
	rootCmd.AddCommand(ancestorsCmd)
}

func findType(img *rt.Image, name string) (*rt.Type, error) {
	t, ok := img.Type(name)
	if !ok {
		return nil, fmt.Errorf("unknown type %q", name)
	}
	return t, nil
}
