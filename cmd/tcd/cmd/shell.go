package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "init <bash|zsh|fish>",
	Short: "Print a shell function that changes directory with tcd",
	Long: `A program cannot change its parent shell's directory, so tcd prints
a cd command instead. Install the wrapper to act on it:

  # ~/.bashrc or ~/.zshrc
  eval "$(command tcd init bash)"

  # ~/.config/fish/config.fish
  command tcd init fish | source`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"bash", "zsh", "fish"},
	RunE: func(cmd *cobra.Command, args []string) error {
		script, err := shellInit(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), script)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

const posixInit = `tcd() {
  local out
  out="$(command tcd "$@")" || return
  case "$out" in
    "cd "*) builtin cd -- "${out#cd }" ;;
    *) [ -n "$out" ] && printf '%s\n' "$out" ;;
  esac
}
`

const fishInit = `function tcd
    set -l out (command tcd $argv | string collect)
    or return
    if string match -q -- 'cd *' "$out"
        builtin cd -- (string sub -s 4 -- "$out")
    else if test -n "$out"
        printf '%s\n' "$out"
    end
end
`

func shellInit(shell string) (string, error) {
	switch shell {
	case "bash", "zsh":
		return posixInit, nil
	case "fish":
		return fishInit, nil
	default:
		return "", fmt.Errorf("unsupported shell: %s (want bash, zsh or fish)", shell)
	}
}
