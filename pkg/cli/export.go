package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/funvibe/funscope/internal/report"
)

func init() {
	var ff filterFlags

	reportCmd := &cobra.Command{
		Use:   "report <snapshot>",
		Short: "Render a full inspection report to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := buildReport(args[0], &ff)
			if err != nil {
				return err
			}
			report.TextRenderer{Color: report.StdoutIsTTY()}.Render(os.Stdout, r)
			return nil
		},
	}
	ff.register(reportCmd)
	rootCmd.AddCommand(reportCmd)

	var (
		eff        filterFlags
		yamlOut    bool
		sqlitePath string
		neo4jURI   string
		neo4jUser  string
		neo4jPass  string
	)
	exportCmd := &cobra.Command{
		Use:   "export <snapshot>",
		Short: "Export a report as YAML, SQLite, or a Neo4j graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yamlOut && sqlitePath == "" && neo4jURI == "" {
				return fmt.Errorf("pick a target: --yaml, --sqlite, or --neo4j")
			}
			r, err := buildReport(args[0], &eff)
			if err != nil {
				return err
			}
			if yamlOut {
				if err := report.EncodeYAML(os.Stdout, r); err != nil {
					return err
				}
			}
			if sqlitePath != "" {
				if err := report.ExportSQLite(sqlitePath, r); err != nil {
					return err
				}
				log.Info("sqlite export written", "path", sqlitePath)
			}
			if neo4jURI != "" {
				if err := exportNeo4j(cmd, neo4jURI, neo4jUser, neo4jPass, r); err != nil {
					return err
				}
				log.Info("graph loaded", "uri", neo4jURI)
			}
			return nil
		},
	}
	exportCmd.Flags().BoolVar(&yamlOut, "yaml", false, "write YAML to stdout")
	exportCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "write a SQLite database at this path")
	exportCmd.Flags().StringVar(&neo4jURI, "neo4j", "", "load the graph into Neo4j at this URI")
	exportCmd.Flags().StringVar(&neo4jUser, "user", "neo4j", "Neo4j user")
	exportCmd.Flags().StringVar(&neo4jPass, "password", "", "Neo4j password")
	eff.register(exportCmd)
	rootCmd.AddCommand(exportCmd)
}

func buildReport(path string, ff *filterFlags) (*report.Report, error) {
	img, err := loadImage(path)
	if err != nil {
		return nil, err
	}
	f, err := ff.filter()
	if err != nil {
		return nil, err
	}
	return report.Build(img, f)
}

func exportNeo4j(cmd *cobra.Command, uri, user, pass string, r *report.Report) error {
	loader, err := report.NewGraphLoader(cmd.Context(), uri, user, pass)
	if err != nil {
		return err
	}
	defer loader.Close()

	if err := loader.Clean(); err != nil {
		return err
	}
	if err := loader.CreateIndexes(); err != nil {
		return err
	}
	return loader.Load(r)
}
