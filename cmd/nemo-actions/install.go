package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/softgeekro/nemo-actions/internal/nemo"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Write the .nemo_action files for every action",
	Long: `Install writes one .nemo_action file per action into the Nemo actions
directory. Each file calls this binary with the selected paths.

Default directory: $XDG_DATA_HOME/nemo/actions or ~/.local/share/nemo/actions`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().String("dir", "", "actions directory")
	installCmd.Flags().String("bin", "", "binary the actions call (default: this executable)")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	bin, _ := cmd.Flags().GetString("bin")

	if dir == "" {
		d, err := nemo.DefaultDir()
		if err != nil {
			return err
		}
		dir = d
	}
	if bin == "" {
		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("locating executable: %w", err)
		}
		bin = exe
	}

	_, err := nemo.Install(dir, bin, nemo.Catalog(), cmd.OutOrStdout())
	return err
}
