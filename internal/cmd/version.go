package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/fulmenhq/gofulmen/crucible"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print version information. Use --extended for build, Go and Crucible details.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		extended, _ := cmd.Flags().GetBool("extended")
		writeVersion(cmd.OutOrStdout(), binaryName(), extended)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("extended", "e", false, "show extended version information")
}

func binaryName() string {
	if identity := GetAppIdentity(); identity != nil && identity.BinaryName != "" {
		return identity.BinaryName
	}
	return rootCmd.Name()
}

func writeVersion(w io.Writer, name string, extended bool) {
	_, _ = fmt.Fprintf(w, "%s %s\n", name, currentVersion())
	if !extended {
		return
	}

	_, _ = fmt.Fprintf(w, "Commit: %s\n", versionInfo.Commit)
	_, _ = fmt.Fprintf(w, "Built: %s\n", versionInfo.BuildDate)
	_, _ = fmt.Fprintf(w, "Go: %s\n\n", runtime.Version())

	version := crucible.GetVersion()
	_, _ = fmt.Fprintf(w, "Gofulmen: %s\n", version.Gofulmen)
	_, _ = fmt.Fprintf(w, "Crucible: %s\n", version.Crucible)
}
