package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viant/rpg/internal/nav"
	"github.com/viant/rpg/internal/storage"
)

var (
	exploreDirection string
	exploreDepth     int
)

var exploreCmd = &cobra.Command{
	Use:   "explore <id>",
	Short: "Walk dependency edges outward from an entity",
	Args:  cobra.ExactArgs(1),
	RunE:  runExplore,
}

func init() {
	exploreCmd.Flags().StringVar(&exploreDirection, "direction", "down", "up | down | both")
	exploreCmd.Flags().IntVar(&exploreDepth, "depth", 2, "traversal depth")
}

func runExplore(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store := storage.New(projectRoot)
	doc, err := requireGraph(ctx, store)
	if err != nil {
		return err
	}

	tree, err := nav.Explore(doc, args[0], nav.Direction(exploreDirection), exploreDepth)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
