package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tormodhaugland/treecd/internal/config"
	"github.com/tormodhaugland/treecd/internal/debug"
	"github.com/tormodhaugland/treecd/internal/fs"
	"github.com/tormodhaugland/treecd/internal/nav"
	"github.com/tormodhaugland/treecd/internal/tui"
)

var (
	cfgFile  string
	rootPath string
)

var errNoTerminal = errors.New("tcd needs an interactive terminal on stdin and stderr")

var rootCmd = &cobra.Command{
	Use:   "tcd",
	Short: "Browse the directory tree and print a cd command for the chosen directory",
	Long: `tcd opens an interactive tree of directories starting at / (or --root),
with the current working directory already expanded and focused.

Pressing enter prints "cd <path>" for the focused directory to stdout;
ctrl+q or esc prints nothing. The browser itself draws on stderr, so
the output can be captured by a shell function. See 'tcd init'.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		root, err := browseRoot(cfg, rootPath)
		if err != nil {
			return err
		}

		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine working directory: %w", err)
		}

		if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stderr.Fd())) {
			return errNoTerminal
		}

		closeLog, err := openLog(cfg)
		if err != nil {
			return err
		}
		defer closeLog()

		debug.Log("start root=%s cwd=%s", root, cwd)
		n := nav.New(fs.OS{}, root, cwd, nav.WithSearchTimeout(cfg.SearchTimeout()))

		res, err := tui.Run(cfg, n, fs.OS{})
		if err != nil {
			return err
		}
		debug.Log("exit path=%q aborted=%v", res.Path, res.Aborted)

		writeResult(cmd.OutOrStdout(), res)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/tcd/config.json)")
	rootCmd.Flags().StringVar(&rootPath, "root", "", "directory the tree starts at (default: / or the config root)")
}

// browseRoot picks the tree root: the flag wins over the config file.
func browseRoot(cfg *config.Config, flag string) (string, error) {
	root := cfg.Root
	if flag != "" {
		root = flag
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("invalid root %q: %w", root, err)
	}
	if !fs.IsDir(fs.OS{}, abs) {
		return "", fmt.Errorf("root is not a directory: %s", abs)
	}
	return abs, nil
}

// openLog enables the debug log when TCD_DEBUG or the config asks for it.
func openLog(cfg *config.Config) (func(), error) {
	path := debug.PathFromEnv()
	if path == "" {
		path = cfg.LogFile
	}
	if path == "" {
		return func() {}, nil
	}

	f, err := debug.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return func() { f.Close() }, nil
}

// writeResult prints the one line the calling shell acts on, or nothing
// when the browser was aborted.
func writeResult(w io.Writer, res tui.Result) {
	if res.Aborted || res.Path == "" {
		return
	}
	fmt.Fprintf(w, "cd %s\n", res.Path)
}
