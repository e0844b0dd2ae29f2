package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/hfsm/internal/dto"
	"github.com/aretw0/hfsm/pkg/domain"
	"github.com/aretw0/hfsm/pkg/states"
)

// LogParams configures a "log" state.
type LogParams struct {
	Level   string `mapstructure:"level"`
	Message string `mapstructure:"message"`
}

// TimerParams configures a "timer" state.
type TimerParams struct {
	Seconds float64 `mapstructure:"seconds"`
	Ticks   int     `mapstructure:"ticks"`
	Done    string  `mapstructure:"done"`
}

func decodeParams(in map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(in); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	return nil
}

func (c *Compiler) state(sd dto.StateDef, machine string, res *Result) (domain.State, error) {
	switch strings.ToLower(sd.Kind) {
	case "", dto.KindEmpty:
		return states.NewEmpty(), nil
	case dto.KindLog:
		return c.logState(sd, machine)
	case dto.KindTimer:
		return c.timerState(sd, res)
	case dto.KindParallel:
		children := make([]domain.State, 0, len(sd.Children))
		for _, child := range sd.Children {
			s, err := c.state(child, machine, res)
			if err != nil {
				return nil, fmt.Errorf("state %q: %w", sd.Name, err)
			}
			children = append(children, s)
		}
		return states.NewParallel(children...), nil
	case dto.KindMachine:
		if sd.Machine == nil {
			return nil, fmt.Errorf("state %q: machine kind requires a machine definition", sd.Name)
		}
		nested := *sd.Machine
		if nested.Name == "" {
			nested.Name = sd.Name
		}
		m, err := c.compile(&nested, machine, res)
		if err != nil {
			return nil, err
		}
		res.Nested = append(res.Nested, m)
		return states.NewSubstate(m), nil
	default:
		return nil, fmt.Errorf("state %q: unknown kind %q", sd.Name, sd.Kind)
	}
}

func (c *Compiler) logState(sd dto.StateDef, machine string) (domain.State, error) {
	params := LogParams{Level: "info"}
	if err := decodeParams(sd.Params, &params); err != nil {
		return nil, fmt.Errorf("state %q: %w", sd.Name, err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(params.Level)); err != nil {
		return nil, fmt.Errorf("state %q: %w", sd.Name, err)
	}

	logger := c.logger.With("machine", machine, "state", sd.Name)
	emit := func(msg string) func() error {
		if params.Message != "" {
			msg += ": " + params.Message
		}
		return func() error {
			logger.Log(context.Background(), level, msg)
			return nil
		}
	}
	return states.NewLambda(
		states.OnEnter(emit("state entered")),
		states.OnExit(emit("state exited")),
	), nil
}

func (c *Compiler) timerState(sd dto.StateDef, res *Result) (domain.State, error) {
	var params TimerParams
	if err := decodeParams(sd.Params, &params); err != nil {
		return nil, fmt.Errorf("state %q: %w", sd.Name, err)
	}
	if params.Seconds <= 0 && params.Ticks <= 0 {
		return nil, fmt.Errorf("state %q: timer needs seconds or ticks", sd.Name)
	}

	var opts []states.CoroutineOption
	if params.Done != "" {
		opts = append(opts, states.WithCompletion(res.trigger(params.Done).Trigger))
	}
	return states.NewCoroutine(func(cell *states.DeltaCell) states.Routine {
		if params.Ticks > 0 {
			return states.WaitTicks(params.Ticks)
		}
		return states.Wait(cell, params.Seconds)
	}, opts...), nil
}
