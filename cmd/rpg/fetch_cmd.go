package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viant/rpg/internal/nav"
	"github.com/viant/rpg/internal/storage"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <id>",
	Short: "Print the full detail of one entity or hierarchy node",
	Args:  cobra.ExactArgs(1),
	RunE:  runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store := storage.New(projectRoot)
	doc, err := requireGraph(ctx, store)
	if err != nil {
		return err
	}

	res, err := nav.Fetch(doc, args[0])
	if err != nil {
		return err
	}

	var payload interface{} = res.Entity
	if res.Hierarchy != nil {
		payload = res.Hierarchy
	}
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
