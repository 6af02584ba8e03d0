package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set with -ldflags "-X github.com/abhisek/langcoach/cmd.version=v1.2.3".
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "langcoach %s\n", buildInfo())
	},
}

// buildInfo describes the running binary: the linked version, else the
// module version go install recorded, plus the VCS revision when known.
func buildInfo() string {
	v := version
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return fmt.Sprintf("%s (%s)", v, runtime.Version())
	}
	if v == "(devel)" && info.Main.Version != "" {
		v = info.Main.Version
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return fmt.Sprintf("%s (%s, %s)", v, s.Value[:7], info.GoVersion)
		}
	}
	return fmt.Sprintf("%s (%s)", v, info.GoVersion)
}
