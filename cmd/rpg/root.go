package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/viant/rpg/internal/rpgerr"
	"github.com/viant/rpg/internal/rpglog"
)

var (
	projectRoot string
	verbose     bool

	logger *zap.Logger = rpglog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "rpg",
	Short: "Repository Planning Graph builder and navigator",
	Long: `rpg builds and incrementally maintains a Repository Planning Graph:
a structural graph of code entities and their dependencies, unified with a
semantic layer of LLM-produced intent phrases and a three-level functional
hierarchy.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := rpglog.New(verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectRoot, "root", ".", "project root")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		buildCmd,
		updateCmd,
		searchCmd,
		fetchCmd,
		exploreCmd,
		infoCmd,
		exportCmd,
		diffCmd,
		validateCmd,
		hookCmd,
	)
}

// exitCodeFor maps a returned error to the process exit code per spec §6:
// validate's count is handled at its own call site since it never returns
// an error for "issues found"; everything else is 0 on success, 2 for a
// not-found error (rpgerr.IsNotFound), and 1 on any other error.
func exitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if rpgerr.IsNotFound(err) {
		return 2
	}
	return 1
}
