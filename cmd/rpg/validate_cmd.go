package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/viant/rpg/internal/rpgreport"
	"github.com/viant/rpg/internal/storage"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Audit the graph against its structural invariants",
	Long: `validate checks the graph against invariants I1-I5 and I7-I9
(file_index closure, edge endpoint existence, ID well-formedness,
hierarchy membership and non-emptiness, module uniqueness, coverage
identity, and semantic-hierarchy path shape); I6, containment edges
derived from the hierarchy, is not checked. Unlike every other command, its process
exit code is the number of issues found, not 0/1/2 — a clean graph exits
0, and the count itself is the signal for scripting.`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store := storage.New(projectRoot)
	doc, err := requireGraph(ctx, store)
	if err != nil {
		return err
	}

	baseline := rpgreport.BuildQualityBaseline(doc)
	if err := rpgreport.WriteQualityBaseline(projectRoot, baseline); err != nil {
		logger.Warn("quality baseline write failed, continuing", zapErr(err))
	}

	issues := doc.Validate()
	if len(issues) == 0 {
		fmt.Println(styleOK.Render("graph is consistent"))
		os.Exit(0)
	}
	for _, issue := range issues {
		fmt.Println(styleWarn.Render(issue.String()))
	}
	os.Exit(len(issues))
	return nil
}
