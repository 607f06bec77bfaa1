// Package cli wires the inspectors to the funscope command tree. All
// logging happens here; the library layers only return errors.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/funvibe/funscope/internal/inspect"
	"github.com/funvibe/funscope/internal/rt"
	"github.com/funvibe/funscope/internal/snapshot"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "funscope",
	Short: "Introspect specializations, backedges, and globals of a runtime snapshot",
	Long: `funscope answers structural questions about a recorded runtime state:
which compiled variants exist for a callable, what invalidates them when
code changes, and what global mutable state a namespace tree exposes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func loadImage(path string) (*rt.Image, error) {
	log.Debug("loading snapshot", "path", path)
	img, err := snapshot.Load(path)
	if err != nil {
		return nil, err
	}
	log.Debug("snapshot loaded",
		"runtime", img.Version,
		"namespaces", len(img.Namespaces()),
		"callables", len(img.Callables()))
	return img, nil
}

func findCallable(img *rt.Image, name string) (*rt.Callable, error) {
	for _, c := range img.Callables() {
		if c.Name == name || c.QualifiedName() == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("unknown callable %q", name)
}

func findNamespace(img *rt.Image, name string) (*rt.Namespace, error) {
	if name == "" {
		namespaces := img.Namespaces()
		if len(namespaces) == 0 {
			return nil, fmt.Errorf("snapshot contains no namespaces")
		}
		return namespaces[0], nil
	}
	ns, ok := img.Namespace(name)
	if !ok {
		return nil, fmt.Errorf("unknown namespace %q", name)
	}
	return ns, nil
}

// parseSig turns "Int,Float" into a type list resolved against the image.
func parseSig(img *rt.Image, sig string) ([]*rt.Type, error) {
	if sig == "" {
		return nil, nil
	}
	var out []*rt.Type
	for _, name := range strings.Split(sig, ",") {
		name = strings.TrimSpace(name)
		t, ok := img.Type(name)
		if !ok {
			return nil, fmt.Errorf("unknown type %q in signature", name)
		}
		out = append(out, t)
	}
	return out, nil
}

type filterFlags struct {
	constOnly    bool
	nonconstOnly bool
	mutableOnly  bool
	immutable    bool
	imported     bool
}

func (ff *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&ff.constOnly, "const", false, "only const bindings")
	cmd.Flags().BoolVar(&ff.nonconstOnly, "nonconst", false, "only reassignable bindings")
	cmd.Flags().BoolVar(&ff.mutableOnly, "mutable", false, "only structurally mutable values")
	cmd.Flags().BoolVar(&ff.immutable, "immutable", false, "only structurally immutable values")
	cmd.Flags().BoolVar(&ff.imported, "imported", false, "include re-exported bindings")
}

func (ff *filterFlags) filter() (inspect.Filter, error) {
	var f inspect.Filter
	if ff.constOnly && ff.nonconstOnly {
		return f, fmt.Errorf("--const and --nonconst are mutually exclusive")
	}
	if ff.mutableOnly && ff.immutable {
		return f, fmt.Errorf("--mutable and --immutable are mutually exclusive")
	}
	if ff.constOnly {
		f.Constness = inspect.ConstOnly
	}
	if ff.nonconstOnly {
		f.Constness = inspect.NonConstOnly
	}
	if ff.mutableOnly {
		f.Mutability = inspect.MutableOnly
	}
	if ff.immutable {
		f.Mutability = inspect.ImmutableOnly
	}
	f.IncludeImported = ff.imported
	return f, nil
}
