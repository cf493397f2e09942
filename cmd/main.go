// 指示: miu200521358
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// globalOptions は全サブコマンド共通のフラグを保持する。
type globalOptions struct {
	configPath string
	logLevel   string
	locale     string
}

// main は物理移植CLIを実行する。
func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run はCLI処理全体を実行する。
func run(args []string, out io.Writer, errOut io.Writer) error {
	rootCmd := newRootCommand(out, errOut)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	return rootCmd.Execute()
}

// newRootCommand はサブコマンドを登録したルートコマンドを生成する。
func newRootCommand(out io.Writer, errOut io.Writer) *cobra.Command {
	opts := &globalOptions{}
	rootCmd := &cobra.Command{
		Use:   "mu_physmigrate",
		Short: "Migrate physics attachments between skeleton trees",
		Long: `mu_physmigrate copies physics attachments (colliders, spring bones, cloth
and their references) from a source skeleton tree onto a target skeleton tree.

Nodes are matched by name first and by humanoid role second. Unmatched
source nodes are recreated under the nearest matched ancestor.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/mu_physmigrate/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&opts.locale, "locale", "", "report language: ja, en")

	rootCmd.AddCommand(
		newValidateCommand(opts, out, errOut),
		newAnalyzeCommand(opts, out, errOut),
		newMigrateCommand(opts, out, errOut),
		newPreBuildCommand(opts, out, errOut),
		newBlendShapeCommand(opts, out, errOut),
	)
	return rootCmd
}
