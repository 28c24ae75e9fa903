package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/statelog-io/dictstream/internal/cliconfig"
	"github.com/statelog-io/dictstream/pkg/mpack"
)

const helpDescription = `
Compare two MessagePack dictionary files.

Each file is loaded by deep-updating its fragments into one dictionary,
then the difference of the first against the second is printed: every entry
of the first that is missing from or different in the second, with nested
maps compared recursively.
`

var exampleUsage = strings.TrimSpace(`
  dictdiff config_v2.mpack config_v1.mpack
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	var jsonOut bool

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "dictdiff <file> <against>",
		Short:   "Print the difference between two MessagePack dictionary files",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Args:    cobra.ExactArgs(2),
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := mpack.ReadFile(args[0])
			if err != nil {
				return err
			}
			b, err := mpack.ReadFile(args[1])
			if err != nil {
				return err
			}

			diff := a.Difference(b)
			if diff == nil || diff.IsEmpty() {
				fmt.Println("no differences")
				return nil
			}
			if jsonOut {
				return diff.WriteJSON(os.Stdout)
			}
			fmt.Println(diff)
			return nil
		},
	}

	root.Flags().BoolVar(&jsonOut, "json", false, "print the difference as a JSON object")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("dictdiff")
		os.Exit(1)
	}
}
