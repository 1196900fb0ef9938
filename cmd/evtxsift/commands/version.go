package commands

import (
	"fmt"
	goruntime "runtime"

	"github.com/livp123/evtxsift/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		// Short: 显示版本信息
		Long: `Show the current version of evtxsift`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "evtxsift %s (%s, %s/%s)\n",
				version.Version, goruntime.Version(), goruntime.GOOS, goruntime.GOARCH)
		},
	}
}
