package domain

// Unit is a single processing stage (a "model") with a fixed input and output medium.
// Units come from the catalog and are never mutated; links only reference them.
type Unit struct {
	ID         string    `json:"id" yaml:"id" mapstructure:"id"`
	Name       string    `json:"name" yaml:"name" mapstructure:"name"`
	Provider   string    `json:"provider" yaml:"provider" mapstructure:"provider"`
	InputType  MediaType `json:"input_type" yaml:"input_type" mapstructure:"input_type"`
	OutputType MediaType `json:"output_type" yaml:"output_type" mapstructure:"output_type"`

	// Optional catalog metadata.
	Description  string   `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Capabilities []string `json:"capabilities,omitempty" yaml:"capabilities,omitempty" mapstructure:"capabilities"`
}

// Feeds reports whether the output of u can be consumed by next.
func (u Unit) Feeds(next Unit) bool {
	return u.OutputType == next.InputType
}

// HasCapability reports whether the unit advertises the given capability.
func (u Unit) HasCapability(capability string) bool {
	for _, c := range u.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// Names returns the display names of units, in order.
func Names(units []Unit) []string {
	names := make([]string, len(units))
	for i, u := range units {
		names[i] = u.Name
	}
	return names
}

// Endpoints returns the overall input type (first unit) and output type (last unit) of a
// flattened chain. ok is false for an empty chain, which has no well-defined endpoints.
func Endpoints(units []Unit) (in MediaType, out MediaType, ok bool) {
	if len(units) == 0 {
		return "", "", false
	}
	return units[0].InputType, units[len(units)-1].OutputType, true
}
