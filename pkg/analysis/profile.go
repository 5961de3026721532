package analysis

// RequirementProfile captures how a part will be used. It is not part of
// Features; its flags are appended to the encoding at assembly time.
type RequirementProfile struct {
	Functional    bool `yaml:"functional" toml:"functional"`
	Decorative    bool `yaml:"decorative" toml:"decorative"`
	Force         bool `yaml:"force" toml:"force"`
	Friction      bool `yaml:"friction" toml:"friction"`
	WeightSupport bool `yaml:"weight_support" toml:"weight_support"`
	Outdoor       bool `yaml:"outdoor" toml:"outdoor"`
	Detail        bool `yaml:"detail" toml:"detail"`
}

// RequirementFlagNames lists the flags appended by EncodeWithProfile, in
// order. Heat, Pressure and Chemical are always false; they keep the slots
// the classifier was trained with.
var RequirementFlagNames = [...]string{
	"Functional",
	"Force",
	"Heat",
	"Friction",
	"Pressure",
	"WeightSupport",
	"Outdoor",
	"Chemical",
	"Detail",
	"Decorative",
}

// Normalized clears the load flags (force, friction, weight support) of a
// non-functional part.
func (p RequirementProfile) Normalized() RequirementProfile {
	if !p.Functional {
		p.Force = false
		p.Friction = false
		p.WeightSupport = false
	}
	return p
}

// Flags returns the requirement flags in RequirementFlagNames order.
func (p RequirementProfile) Flags() []bool {
	p = p.Normalized()
	const heat, pressure, chemical = false, false, false
	return []bool{
		p.Functional,
		p.Force,
		heat,
		p.Friction,
		pressure,
		p.WeightSupport,
		p.Outdoor,
		chemical,
		p.Detail,
		p.Decorative,
	}
}
