package domain

// BehaviourParameters tune how a compiled machine reacts to Enable calls and
// whether it records debug events.
type BehaviourParameters struct {
	// ResetToDefaultOnEnable makes every Enable start from the default state.
	ResetToDefaultOnEnable bool `json:"reset_on_enable" yaml:"reset_on_enable" mapstructure:"reset_on_enable"`

	// RedundantEnableIsReset turns Enable on an enabled machine into Exit followed by Enter.
	RedundantEnableIsReset bool `json:"redundant_enable_resets" yaml:"redundant_enable_resets" mapstructure:"redundant_enable_resets"`

	// DebugLogging records lifecycle events into the machine event log and logs them at debug level.
	DebugLogging bool `json:"debug" yaml:"debug" mapstructure:"debug"`
}

// DefaultBehaviour returns the parameters used when none are supplied.
func DefaultBehaviour() BehaviourParameters {
	return BehaviourParameters{
		ResetToDefaultOnEnable: true,
		RedundantEnableIsReset: true,
	}
}
