package main

import (
	"github.com/spf13/cobra"

	"github.com/philipparndt/objfeat/pkg/analysis"
)

// profileFlag binds a command line flag to one requirement of the profile.
type profileFlag struct {
	name  string
	usage string
	field func(p *analysis.RequirementProfile) *bool
}

var profileFlags = []profileFlag{
	{"functional", "the part is functional", func(p *analysis.RequirementProfile) *bool { return &p.Functional }},
	{"decorative", "the part is decorative", func(p *analysis.RequirementProfile) *bool { return &p.Decorative }},
	{"force", "the part bears force (functional only)", func(p *analysis.RequirementProfile) *bool { return &p.Force }},
	{"friction", "the part is exposed to friction (functional only)", func(p *analysis.RequirementProfile) *bool { return &p.Friction }},
	{"weight-support", "the part supports weight (functional only)", func(p *analysis.RequirementProfile) *bool { return &p.WeightSupport }},
	{"outdoor", "the part is used outdoors", func(p *analysis.RequirementProfile) *bool { return &p.Outdoor }},
	{"detail", "the part needs fine surface detail", func(p *analysis.RequirementProfile) *bool { return &p.Detail }},
}

func addProfileFlags(cmd *cobra.Command) {
	for _, f := range profileFlags {
		cmd.Flags().Bool(f.name, false, f.usage)
	}
}

// profileFromFlags starts from the configured profile and applies every
// flag that was set explicitly.
func profileFromFlags(cmd *cobra.Command) (analysis.RequirementProfile, error) {
	profile := cfg.Profile
	for _, f := range profileFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		value, err := cmd.Flags().GetBool(f.name)
		if err != nil {
			return analysis.RequirementProfile{}, err
		}
		*f.field(&profile) = value
	}
	return profile.Normalized(), nil
}
