package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viant/rpg/internal/storage"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the graph's summary metadata",
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store := storage.New(projectRoot)
	doc, ok, err := store.Load(ctx)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println(styleMuted.Render("no graph found under .rpg/ — run `rpg build` to create one"))
		return nil
	}

	m := doc.Metadata
	fmt.Println(styleHeading.Render("Repository Planning Graph"))
	fmt.Printf("  %s %s\n", styleMuted.Render("version"), doc.Version)
	fmt.Printf("  %s %s\n", styleMuted.Render("base_commit"), doc.BaseCommit)
	fmt.Printf("  %s %s\n", styleMuted.Render("created_at"), doc.CreatedAt)
	fmt.Printf("  %s %s\n", styleMuted.Render("updated_at"), doc.UpdatedAt)
	fmt.Printf("  %s %d\n", styleMuted.Render("files"), m.TotalFiles)
	fmt.Printf("  %s %d\n", styleMuted.Render("entities"), m.TotalEntities)
	fmt.Printf("  %s %d\n", styleMuted.Render("functional_areas"), m.FunctionalAreas)
	fmt.Printf("  %s %d (%d dependency, %d containment)\n", styleMuted.Render("edges"), m.TotalEdges, m.DependencyEdges, m.ContainmentEdges)
	fmt.Printf("  %s %d/%d\n", styleMuted.Render("lifted"), m.LiftedEntities, m.TotalEntities)
	fmt.Printf("  %s %v\n", styleMuted.Render("semantic_hierarchy"), m.SemanticHierarchy)
	fmt.Printf("  %s %v\n", styleMuted.Render("languages"), m.Languages)
	if len(m.Paradigms) > 0 {
		fmt.Printf("  %s %v\n", styleMuted.Render("paradigms"), m.Paradigms)
	}
	if m.RepoSummary != "" {
		fmt.Printf("  %s %s\n", styleMuted.Render("summary"), m.RepoSummary)
	}
	return nil
}
