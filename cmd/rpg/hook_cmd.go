package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viant/rpg/internal/rpgerr"
)

const hookMarker = "# installed by rpg hook install"

var hookScript = hookMarker + `
if command -v rpg >/dev/null 2>&1; then
  rpg update --root "$(git rev-parse --show-toplevel)" || exit 1
fi
`

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Manage the pre-commit hook that keeps the graph current",
}

var hookInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install a pre-commit hook running `rpg update`",
	RunE:  runHookInstall,
}

var hookUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the rpg-managed pre-commit hook",
	RunE:  runHookUninstall,
}

func init() {
	hookCmd.AddCommand(hookInstallCmd, hookUninstallCmd)
}

func hookPath() string {
	return filepath.Join(projectRoot, ".git", "hooks", "pre-commit")
}

func runHookInstall(cmd *cobra.Command, args []string) error {
	path := hookPath()
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		return rpgerr.New(rpgerr.KindInvalid, "hook", "no .git/hooks directory under "+projectRoot+" — is this a git repository?")
	}

	existing, err := os.ReadFile(path)
	if err == nil && len(existing) > 0 {
		return rpgerr.New(rpgerr.KindConflict, "hook", "pre-commit hook already exists at "+path+"; remove it or run `rpg hook uninstall` first")
	}

	content := "#!/bin/sh\n" + hookScript
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		return err
	}
	fmt.Println(styleOK.Render("installed pre-commit hook at " + path))
	return nil
}

func runHookUninstall(cmd *cobra.Command, args []string) error {
	path := hookPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println(styleMuted.Render("no pre-commit hook installed"))
			return nil
		}
		return err
	}
	if !strings.Contains(string(data), hookMarker) {
		return rpgerr.New(rpgerr.KindConflict, "hook", "pre-commit hook at "+path+" was not installed by rpg; leaving it alone")
	}
	if err := os.Remove(path); err != nil {
		return err
	}
	fmt.Println(styleOK.Render("removed pre-commit hook"))
	return nil
}
