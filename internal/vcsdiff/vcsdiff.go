// Package vcsdiff classifies the file-level changes between two commits
// for the evolution engine: added,
// modified, deleted, renamed. It wraps go-git/v6's plumbing/object diff
// rather than shelling out to the git binary.
package vcsdiff

import (
	"fmt"

	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
)

// ChangeKind classifies one file-level change.
type ChangeKind string

const (
	Added    ChangeKind = "added"
	Modified ChangeKind = "modified"
	Deleted  ChangeKind = "deleted"
	Renamed  ChangeKind = "renamed"
)

// Change is one file-level change between two trees.
type Change struct {
	Kind ChangeKind
	Path string
	// From is the previous path for a Renamed change, empty otherwise.
	From string
}

// Diff opens the repository at repoRoot and returns the file-level changes
// between baseSHA and the working tree's HEAD commit.
func Diff(repoRoot, baseSHA string) ([]Change, error) {
	repo, err := gogit.PlainOpen(repoRoot)
	if err != nil {
		return nil, fmt.Errorf("vcsdiff: open %s: %w", repoRoot, err)
	}

	headRef, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("vcsdiff: resolve HEAD: %w", err)
	}
	headCommit, err := repo.CommitObject(headRef.Hash())
	if err != nil {
		return nil, fmt.Errorf("vcsdiff: load HEAD commit: %w", err)
	}
	headTree, err := headCommit.Tree()
	if err != nil {
		return nil, fmt.Errorf("vcsdiff: load HEAD tree: %w", err)
	}

	baseCommit, err := repo.CommitObject(plumbing.NewHash(baseSHA))
	if err != nil {
		return nil, fmt.Errorf("vcsdiff: load base commit %s: %w", baseSHA, err)
	}
	baseTree, err := baseCommit.Tree()
	if err != nil {
		return nil, fmt.Errorf("vcsdiff: load base tree: %w", err)
	}

	changes, err := baseTree.Diff(headTree)
	if err != nil {
		return nil, fmt.Errorf("vcsdiff: diff trees: %w", err)
	}

	return classify(changes)
}

// HeadSHA resolves the repository's current HEAD commit hash.
func HeadSHA(repoRoot string) (string, error) {
	repo, err := gogit.PlainOpen(repoRoot)
	if err != nil {
		return "", fmt.Errorf("vcsdiff: open %s: %w", repoRoot, err)
	}
	headRef, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("vcsdiff: resolve HEAD: %w", err)
	}
	return headRef.Hash().String(), nil
}

func classify(changes object.Changes) ([]Change, error) {
	result := make([]Change, 0, len(changes))
	for _, c := range changes {
		from, to := c.From, c.To
		switch {
		case from.Name == "" && to.Name != "":
			result = append(result, Change{Kind: Added, Path: to.Name})
		case from.Name != "" && to.Name == "":
			result = append(result, Change{Kind: Deleted, Path: from.Name})
		case from.Name != "" && to.Name != "" && from.Name != to.Name:
			result = append(result, Change{Kind: Renamed, Path: to.Name, From: from.Name})
		case from.Name != "" && to.Name != "":
			if from.TreeEntry.Hash != to.TreeEntry.Hash {
				result = append(result, Change{Kind: Modified, Path: to.Name})
			}
		}
	}
	return result, nil
}
