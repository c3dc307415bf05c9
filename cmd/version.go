package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Printf("quizdoc %s (%s/%s)\n", displayVersion(), runtime.GOOS, runtime.GOARCH)
	},
}

// displayVersion falls back to module build info so that go-install builds
// report their tag instead of (devel).
func displayVersion() string {
	if version != "(devel)" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return version
}
