package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viant/rpg/internal/graph"
	"github.com/viant/rpg/internal/paradigm"
	"github.com/viant/rpg/internal/parser"
	"github.com/viant/rpg/internal/rpgbuild"
	"github.com/viant/rpg/internal/rpgerr"
	"github.com/viant/rpg/internal/storage"
)

var (
	buildForce bool
	buildLang  string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Full structural build of the Repository Planning Graph",
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&buildForce, "force", false, "rebuild even if a graph already exists")
	buildCmd.Flags().StringVar(&buildLang, "lang", "", "force a single language instead of auto-detection")
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store := storage.New(projectRoot)
	existing, exists, err := store.Load(ctx)
	if err != nil {
		return err
	}
	if exists && !buildForce {
		return rpgerr.New(rpgerr.KindConflict, "build", "graph already exists under .rpg/ — pass --force to rebuild")
	}

	reg, err := paradigm.LoadBuiltins()
	if err != nil {
		return err
	}
	if err := paradigm.LoadProjectOverrides(reg, projectRoot); err != nil {
		return err
	}

	opts := rpgbuild.Options{Paradigms: reg}
	if buildLang != "" {
		opts.Language = parser.Language(buildLang)
	}

	if exists {
		if err := store.Backup(ctx); err != nil {
			logger.Warn("backup before destructive rebuild failed, continuing", zapErr(err))
		}
	}

	fresh, err := rpgbuild.Build(ctx, projectRoot, opts)
	if err != nil {
		return err
	}

	if exists {
		rpgbuild.RebuildPreserving(fresh, existing)
	}

	path, err := store.Save(ctx, fresh)
	if err != nil {
		return err
	}

	printBuildSummary(fresh, path)
	return nil
}

func printBuildSummary(doc *graph.Document, path string) {
	fmt.Println(styleHeading.Render("Repository Planning Graph built"))
	fmt.Printf("  %s %s\n", styleMuted.Render("saved to"), path)
	fmt.Printf("  %s %d\n", styleMuted.Render("entities"), doc.Metadata.TotalEntities)
	fmt.Printf("  %s %d\n", styleMuted.Render("edges"), doc.Metadata.TotalEdges)
	fmt.Printf("  %s %d\n", styleMuted.Render("files"), doc.Metadata.TotalFiles)
	fmt.Printf("  %s %v\n", styleMuted.Render("languages"), doc.Metadata.Languages)
	fmt.Printf("  %s %d/%d\n", styleMuted.Render("lifted"), doc.Metadata.LiftedEntities, doc.Metadata.TotalEntities)
}
