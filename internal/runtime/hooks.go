package runtime

import (
	"github.com/aretw0/hfsm/pkg/domain"
	"github.com/aretw0/hfsm/pkg/events"
)

// record appends to the event log when debug logging is enabled.
func (m *Machine) record(kind domain.EventKind, idx int, t domain.Transition, tName string) {
	if !m.params.DebugLogging {
		return
	}
	if tName == "" && t != nil {
		tName = m.TransitionName(t)
	}
	m.log.Record(events.Entry{
		Kind:           kind,
		State:          m.states[idx],
		StateName:      m.nameOf(idx),
		Transition:     t,
		TransitionName: tName,
		Tick:           m.tick,
	})
	if kind == domain.EventUpdate {
		return
	}
	m.logger.Debug("state "+string(kind),
		"machine", m.name,
		"state", m.nameOf(idx),
		"transition", tName,
		"tick", m.tick)
}

func (m *Machine) notify(hook func(*domain.MachineEvent), kind domain.EventKind, idx int) {
	if hook == nil {
		return
	}
	hook(&domain.MachineEvent{
		MachineID:   m.id,
		MachineName: m.name,
		Kind:        kind,
		Tick:        m.tick,
		State:       m.states[idx],
		StateName:   m.nameOf(idx),
	})
}

func (m *Machine) emitTransition(from int, e Edge) {
	if m.hooks.OnTransition == nil {
		return
	}
	name := e.Name
	if name == "" {
		name = m.TransitionName(e.Transition)
	}
	m.hooks.OnTransition(&domain.MachineEvent{
		MachineID:      m.id,
		MachineName:    m.name,
		Kind:           domain.EventTransition,
		Tick:           m.tick,
		State:          m.states[e.To],
		StateName:      m.nameOf(e.To),
		From:           m.states[from],
		FromName:       m.nameOf(from),
		Transition:     e.Transition,
		TransitionName: name,
	})
}
