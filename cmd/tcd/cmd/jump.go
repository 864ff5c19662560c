package cmd

import (
	"fmt"
	"os"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/tormodhaugland/treecd/internal/fs"
	"github.com/tormodhaugland/treecd/internal/tree"
	"github.com/tormodhaugland/treecd/internal/tui"
)

var jumpCmd = &cobra.Command{
	Use:   "jump <query>",
	Short: "Print a cd command for the subdirectory best matching query",
	Long: `Fuzzy-matches query against the directories in the working directory
and prints "cd <path>" for the best match, without opening the browser.

  tcd jump src      # matches ./src
  tcd jump intnav   # matches ./internal-nav

Symlinks to directories are matched like any other directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine working directory: %w", err)
		}

		target, ambiguous, err := jumpTarget(fs.OS{}, cwd, args[0])
		if err != nil {
			return err
		}
		if ambiguous {
			fmt.Fprintf(cmd.ErrOrStderr(), "Ambiguous match, using: %s\n", target.Name)
		}

		writeResult(cmd.OutOrStdout(), tui.Result{Path: target.Path})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(jumpCmd)
}

// jumpTarget returns the child directory of dir that best matches query.
// ambiguous is set when the runner-up scored the same.
func jumpTarget(fsys fs.FS, dir, query string) (target *tree.Node, ambiguous bool, err error) {
	node := tree.New(fsys, dir)
	node.LoadChildren()

	if child, _ := node.Child(query); child != nil {
		return child, false, nil
	}

	names := make([]string, len(node.Children))
	for i, child := range node.Children {
		names[i] = child.Name
	}

	matches := fuzzy.Find(query, names)
	if len(matches) == 0 || matches[0].Score < -10 {
		return nil, false, fmt.Errorf("no directory found matching: %s", query)
	}

	best := node.Children[matches[0].Index]
	ambiguous = len(matches) > 1 && matches[0].Score == matches[1].Score
	return best, ambiguous, nil
}
