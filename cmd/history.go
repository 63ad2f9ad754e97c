package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func newHistoryCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:          "history",
		Short:        "Show the last configure run of every preset",
		Args:         cobra.NoArgs,
		RunE:         runHistory,
		SilenceUsage: true,
	}

	historyCmd.Flags().Bool("clear", false, "Remove every recorded run")

	return historyCmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	comps, err := loadComponents(cmd)
	if err != nil {
		return err
	}
	defer comps.Close()

	if comps.Journal == nil {
		return zerr.New("run journal is disabled")
	}

	out := cmd.OutOrStdout()

	if wipe, _ := cmd.Flags().GetBool("clear"); wipe {
		if err := comps.Journal.Clear(); err != nil {
			return err
		}

		fmt.Fprintln(out, "Journal cleared")
		return nil
	}

	records, err := comps.Journal.List()
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No recorded runs")
		return nil
	}

	st := newStyles(comps.Config.NoColor)
	for _, rec := range records {
		status := st.ok.Render("ok")
		if !rec.Success {
			status = st.failed.Render(fmt.Sprintf("failed (exit code %d)", rec.ExitCode))
		}

		fmt.Fprintf(out, "%s %s %s %s\n",
			st.name.Render(rec.Key()), status,
			st.detail.Render(rec.Timestamp.Local().Format(time.DateTime)),
			st.detail.Render(rec.Fingerprint))
		fmt.Fprintf(out, "  %s\n", rec.CommandLine)
	}

	count, size, err := comps.Journal.Stats()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%d records, %d bytes\n", count, size)
	return nil
}
