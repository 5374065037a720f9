package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viant/rpg/internal/nav"
	"github.com/viant/rpg/internal/storage"
)

var (
	searchMode    string
	searchScope   string
	searchPattern string
	searchLines   string
	searchLimit   int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Rank entities by lexical overlap against a free-text query",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchMode, "mode", "auto", "features | snippets | auto")
	searchCmd.Flags().StringVar(&searchScope, "scope", "*", "lifting-scope expression narrowing the search")
	searchCmd.Flags().StringVar(&searchPattern, "file", "", "glob narrowing candidates by file path")
	searchCmd.Flags().StringVar(&searchLines, "lines", "", "start-end line range narrowing candidates")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "maximum results to print")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store := storage.New(projectRoot)
	doc, err := requireGraph(ctx, store)
	if err != nil {
		return err
	}

	opts := nav.SearchOptions{
		Mode:        nav.Mode(searchMode),
		Scope:       searchScope,
		FilePattern: searchPattern,
		RepoRoot:    projectRoot,
	}
	if searchLines != "" {
		start, end, err := nav.ParseLineRange(searchLines)
		if err != nil {
			return err
		}
		opts.LineStart, opts.LineEnd = start, end
	}

	results, err := nav.Search(doc, args[0], opts)
	if err != nil {
		return err
	}
	if len(results) > searchLimit {
		results = results[:searchLimit]
	}

	if len(results) == 0 {
		fmt.Println(styleMuted.Render("no matches"))
		return nil
	}
	for _, r := range results {
		fmt.Printf("%s  %s  %s\n", styleOK.Render(fmt.Sprintf("%.2f", r.Score)), r.EntityID, styleMuted.Render(r.Matched))
	}
	return nil
}
