package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viant/rpg/internal/storage"
	"github.com/viant/rpg/internal/vcsdiff"
)

var diffSince string

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Preview the file-level changes an update would apply, without mutating the graph",
	RunE:  runDiff,
}

func init() {
	diffCmd.Flags().StringVar(&diffSince, "since", "", "base commit SHA (defaults to the graph's stored base_commit)")
}

func runDiff(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store := storage.New(projectRoot)
	doc, err := requireGraph(ctx, store)
	if err != nil {
		return err
	}

	base := diffSince
	if base == "" {
		base = doc.BaseCommit
	}

	changes, err := vcsdiff.Diff(projectRoot, base)
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		fmt.Println(styleMuted.Render("no changes since " + base))
		return nil
	}
	for _, c := range changes {
		switch c.Kind {
		case vcsdiff.Renamed:
			fmt.Printf("%s  %s -> %s\n", styleWarn.Render(string(c.Kind)), c.From, c.Path)
		default:
			fmt.Printf("%s  %s\n", styleWarn.Render(string(c.Kind)), c.Path)
		}
	}
	return nil
}
