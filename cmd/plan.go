package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/Norgate-AV/presetgen/internal/app"
)

// planView is the serialized form of a resolved plan
type planView struct {
	Preset    string    `yaml:"preset"`
	Platform  string    `yaml:"platform"`
	Compiler  string    `yaml:"compiler"`
	Path      string    `yaml:"definition"`
	Tool      string    `yaml:"tool"`
	SourceDir string    `yaml:"source_dir"`
	Legs      []legView `yaml:"legs"`
}

type legView struct {
	Config      string   `yaml:"config,omitempty"`
	Dir         string   `yaml:"dir"`
	CommandLine string   `yaml:"command_line"`
	Args        []string `yaml:"args"`
	Fingerprint string   `yaml:"fingerprint"`
}

func newPlanView(plan *app.Plan) planView {
	v := planView{
		Preset:    plan.Preset.Name,
		Platform:  plan.Preset.Platform.String(),
		Compiler:  plan.Preset.Compiler.String(),
		Path:      plan.Preset.Path,
		Tool:      plan.Tool,
		SourceDir: plan.SourceDir,
	}

	for _, leg := range plan.Legs {
		v.Legs = append(v.Legs, legView{
			Config:      leg.Config.String(),
			Dir:         leg.Invocation.WorkDir,
			CommandLine: leg.Invocation.CommandLine(),
			Args:        leg.Invocation.Args(),
			Fingerprint: leg.Fingerprint,
		})
	}

	return v
}

func newPlanCmd() *cobra.Command {
	planCmd := &cobra.Command{
		Use:          "plan <preset>",
		Short:        "Resolve a preset and print its command lines",
		Args:         cobra.ExactArgs(1),
		RunE:         runPlan,
		SilenceUsage: true,
	}

	planCmd.Flags().StringP("output", "o", "text", "Output format: text or yaml")

	return planCmd
}

func runPlan(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("output")
	if format != "text" && format != "yaml" {
		return zerr.New("unsupported output format " + format)
	}

	comps, err := loadComponents(cmd)
	if err != nil {
		return err
	}
	defer comps.Close()

	plan, err := comps.Generator.Resolve(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "text" {
		printPlan(out, plan, newStyles(comps.Config.NoColor))
		return nil
	}

	data, err := yaml.Marshal(newPlanView(plan))
	if err != nil {
		return zerr.Wrap(err, "failed to encode plan")
	}

	_, err = fmt.Fprint(out, string(data))
	return err
}
