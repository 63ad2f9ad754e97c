package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"

	"github.com/Norgate-AV/presetgen/internal/app"
	"github.com/Norgate-AV/presetgen/internal/codes"
	"github.com/Norgate-AV/presetgen/internal/preset"
)

func runGenerate(cmd *cobra.Command, args []string) error {
	comps, err := loadComponents(cmd)
	if err != nil {
		return err
	}
	defer comps.Close()

	st := newStyles(comps.Config.NoColor)
	out := cmd.OutOrStdout()
	gen := comps.Generator

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		summaries, err := gen.Catalog().Summaries(gen.Host())
		if err != nil {
			return err
		}

		name, err = selectPreset(cmd.InOrStdin(), out, summaries, st)
		if err != nil {
			return zerr.With(err, "path", gen.Catalog().Dir())
		}
	}

	plan, err := gen.Resolve(name)
	if err != nil {
		return err
	}

	if comps.Config.DryRun {
		printPlan(out, plan, st)
		return nil
	}

	report, err := gen.Execute(plan)
	printReport(out, report, st)

	return err
}

// selectPreset lists the presets as a numbered menu and reads the choice from in
func selectPreset(in io.Reader, out io.Writer, summaries []preset.Summary, st styles) (string, error) {
	if len(summaries) == 0 {
		return "", zerr.Wrap(codes.ErrNotFound, "no presets available for this host")
	}

	fmt.Fprintln(out, st.title.Render("Preset parameter required, available presets:"))
	for i, s := range summaries {
		line := fmt.Sprintf("(%d) %s", i, st.name.Render(s.Name))
		if s.Comment != "" {
			line += " " + st.detail.Render("<--- "+s.Comment)
		}

		fmt.Fprintln(out, line)
	}

	fmt.Fprint(out, "Enter preset number: ")

	reader := bufio.NewReader(in)
	text, err := reader.ReadString('\n')
	if err != nil && text == "" {
		return "", zerr.Wrap(err, "no preset selected")
	}

	text = strings.TrimSpace(text)
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 || n >= len(summaries) {
		return "", zerr.Wrap(codes.ErrNotFound, "invalid preset selection "+strconv.Quote(text))
	}

	return summaries[n].Name, nil
}

// printPlan writes every leg of plan without running anything
func printPlan(out io.Writer, plan *app.Plan, st styles) {
	p := plan.Preset
	fmt.Fprintf(out, "%s %s (%s, %s)\n", st.title.Render("Preset"), st.name.Render(p.Name), p.Platform, p.Compiler)

	for _, leg := range plan.Legs {
		fmt.Fprintf(out, "\n%s %s\n", st.name.Render(leg.Label(p.Name)), st.detail.Render(leg.Invocation.WorkDir))
		fmt.Fprintln(out, leg.Invocation.CommandLine())
	}
}

// printReport writes one status line per leg
func printReport(out io.Writer, report *app.Report, st styles) {
	if report == nil {
		return
	}

	for _, res := range report.Results {
		label := app.Leg{Config: res.Config}.Label(report.Preset)

		status := st.ok.Render("ok")
		if !res.OK() {
			status = st.failed.Render(fmt.Sprintf("failed (exit code %d)", res.ExitCode))
		}

		line := fmt.Sprintf("%s %s %s", st.name.Render(label), status, st.detail.Render(res.Dir))
		if res.Changed {
			line += " " + st.changed.Render("command line changed")
		}

		fmt.Fprintln(out, line)
	}
}
