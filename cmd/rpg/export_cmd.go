package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/viant/rpg/internal/nav"
	"github.com/viant/rpg/internal/rpgerr"
	"github.com/viant/rpg/internal/storage"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the graph as Graphviz dot or Mermaid",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "dot", "dot | mermaid")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "write to this file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store := storage.New(projectRoot)
	doc, err := requireGraph(ctx, store)
	if err != nil {
		return err
	}

	var rendered string
	switch exportFormat {
	case "dot":
		rendered = nav.ExportDot(doc)
	case "mermaid":
		rendered = nav.ExportMermaid(doc)
	default:
		return rpgerr.New(rpgerr.KindInvalid, "export", "unknown format "+exportFormat+" (want dot or mermaid)")
	}

	if exportOut == "" {
		fmt.Println(rendered)
		return nil
	}
	return os.WriteFile(exportOut, []byte(rendered), 0o644)
}
