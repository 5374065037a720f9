package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viant/rpg/internal/evolution"
	"github.com/viant/rpg/internal/lifting"
	"github.com/viant/rpg/internal/repowalk"
	"github.com/viant/rpg/internal/rpgbuild"
	"github.com/viant/rpg/internal/storage"
)

var updateSince string

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Incrementally evolve the graph against a git diff",
	RunE:  runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateSince, "since", "", "base commit SHA (defaults to the graph's stored base_commit)")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store := storage.New(projectRoot)
	doc, err := requireGraph(ctx, store)
	if err != nil {
		return err
	}

	queue := &lifting.Queue{}
	if data, ok, err := store.ReadAux(ctx, "pending_routing.json"); err == nil && ok {
		if q, decErr := lifting.DecodeQueue(data); decErr == nil {
			queue = q
		}
	}

	ignore, err := repowalk.MatchFunc(projectRoot)
	if err != nil {
		return err
	}

	res, err := rpgbuild.Update(doc, projectRoot, updateSince, ignore, queue)
	if err != nil {
		return err
	}

	if encoded, err := queue.Encode(); err == nil {
		_ = store.WriteAux("pending_routing.json", encoded)
	}

	if _, err := store.Save(ctx, doc); err != nil {
		return err
	}

	printUpdateSummary(res)
	return nil
}

func printUpdateSummary(res *evolution.Result) {
	fmt.Println(styleHeading.Render("Graph updated"))
	fmt.Printf("  %s %d\n", styleMuted.Render("added"), len(res.Added))
	fmt.Printf("  %s %d\n", styleMuted.Render("modified"), len(res.Modified))
	fmt.Printf("  %s %d\n", styleMuted.Render("deleted"), len(res.Deleted))
	fmt.Printf("  %s %d\n", styleMuted.Render("renamed"), len(res.Renamed))
	fmt.Printf("  %s %d\n", styleMuted.Render("newly lifted (pending routing)"), len(res.NewlyLiftedIDs))
}
