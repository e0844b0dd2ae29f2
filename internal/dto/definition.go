package dto

import "github.com/aretw0/hfsm/pkg/domain"

// Definition is the serialized form of a machine.
// It uses "mapstructure" tags so raw YAML and JSON documents decode through the same path.
type Definition struct {
	Name        string          `json:"name" yaml:"name" mapstructure:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Default     string          `json:"default,omitempty" yaml:"default,omitempty" mapstructure:"default"`
	Behaviour   *Behaviour      `json:"behaviour,omitempty" yaml:"behaviour,omitempty" mapstructure:"behaviour"`
	States      []StateDef      `json:"states" yaml:"states" mapstructure:"states"`
	Transitions []TransitionDef `json:"transitions,omitempty" yaml:"transitions,omitempty" mapstructure:"transitions"`
	Any         []TransitionDef `json:"any,omitempty" yaml:"any,omitempty" mapstructure:"any"`
}

// Behaviour overrides individual domain.BehaviourParameters. Unset fields keep their defaults.
type Behaviour struct {
	ResetOnEnable         *bool `json:"reset_on_enable,omitempty" yaml:"reset_on_enable,omitempty" mapstructure:"reset_on_enable"`
	RedundantEnableResets *bool `json:"redundant_enable_resets,omitempty" yaml:"redundant_enable_resets,omitempty" mapstructure:"redundant_enable_resets"`
	Debug                 *bool `json:"debug,omitempty" yaml:"debug,omitempty" mapstructure:"debug"`
}

// Params resolves the overrides against domain.DefaultBehaviour.
func (b *Behaviour) Params() domain.BehaviourParameters {
	p := domain.DefaultBehaviour()
	if b == nil {
		return p
	}
	if b.ResetOnEnable != nil {
		p.ResetToDefaultOnEnable = *b.ResetOnEnable
	}
	if b.RedundantEnableResets != nil {
		p.RedundantEnableIsReset = *b.RedundantEnableResets
	}
	if b.Debug != nil {
		p.DebugLogging = *b.Debug
	}
	return p
}

// StateDef declares one state. Params are decoded according to Kind.
type StateDef struct {
	Name     string         `json:"name" yaml:"name" mapstructure:"name"`
	Kind     string         `json:"kind,omitempty" yaml:"kind,omitempty" mapstructure:"kind"`
	Params   map[string]any `json:"params,omitempty" yaml:"params,omitempty" mapstructure:"params"`
	Children []StateDef     `json:"children,omitempty" yaml:"children,omitempty" mapstructure:"children"`
	Machine  *Definition    `json:"machine,omitempty" yaml:"machine,omitempty" mapstructure:"machine"`
}

// TransitionDef declares an edge. From is ignored for any-edges.
// A missing When condition means the edge is always taken.
type TransitionDef struct {
	Name string     `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	From string     `json:"from,omitempty" yaml:"from,omitempty" mapstructure:"from"`
	To   string     `json:"to" yaml:"to" mapstructure:"to"`
	When *Condition `json:"when,omitempty" yaml:"when,omitempty" mapstructure:"when"`
}

// Condition is a transition predicate. Exactly one field must be set.
type Condition struct {
	Always  *bool       `json:"always,omitempty" yaml:"always,omitempty" mapstructure:"always"`
	Trigger string      `json:"trigger,omitempty" yaml:"trigger,omitempty" mapstructure:"trigger"`
	Not     *Condition  `json:"not,omitempty" yaml:"not,omitempty" mapstructure:"not"`
	All     []Condition `json:"all,omitempty" yaml:"all,omitempty" mapstructure:"all"`
	Any     []Condition `json:"any,omitempty" yaml:"any,omitempty" mapstructure:"any"`
}

// State kinds understood by the compiler.
const (
	KindEmpty    = "empty"
	KindLog      = "log"
	KindTimer    = "timer"
	KindParallel = "parallel"
	KindMachine  = "machine"
)
