package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "list",
		Short:        "List presets applicable to this host",
		Args:         cobra.NoArgs,
		RunE:         runList,
		SilenceUsage: true,
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	comps, err := loadComponents(cmd)
	if err != nil {
		return err
	}
	defer comps.Close()

	st := newStyles(comps.Config.NoColor)
	out := cmd.OutOrStdout()
	gen := comps.Generator

	summaries, err := gen.Catalog().Summaries(gen.Host())
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		fmt.Fprintf(out, "No presets for this host in %s\n", gen.Catalog().Dir())
		return nil
	}

	for _, s := range summaries {
		fmt.Fprintf(out, "%s %s\n", st.name.Render(s.Name), st.detail.Render(s.Comment))
	}

	return nil
}
