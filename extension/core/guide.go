// guide.go implements the "darc guide" command for documentation access.
//
// Separated from extension.go to isolate documentation rendering logic
// including terminal detection and glamour markdown formatting.
//
// Design: Guides are embedded in the binary via the guide package, ensuring
// documentation is always available without external files. Terminal output
// gets glamour rendering for readability; pipe/redirect gets raw markdown
// for machine consumption and LLM context loading.

package core

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/darc/cmd"
	"github.com/jpl-au/darc/guide"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide [command]",
		Short: "Show the darc usage guide",
		Long: `Prints the darc usage guide, rendered with glamour on a terminal.

  darc guide           # main guide
  darc guide tree      # tree rendering and indent
  darc guide import    # manifest format`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			content, err := guide.Get(name)
			if err != nil {
				return cmd.PrintJSONError(err)
			}

			if term.IsTerminal(int(os.Stdout.Fd())) {
				rendered, err := glamour.Render(content, "dark")
				if err == nil {
					fmt.Fprint(cmd.Out(), rendered)
					return nil
				}
			}

			fmt.Fprint(cmd.Out(), content)
			return nil
		},
	}
}
