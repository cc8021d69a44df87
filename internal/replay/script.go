// Package replay drives an observation session from a YAML script on
// virtual time.
package replay

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "chronos/internal/platform/errors"
)

type Op string

const (
	OpStart      Op = "start"
	OpStop       Op = "stop"
	OpSubject    Op = "subject"
	OpToggle     Op = "toggle"
	OpTap        Op = "tap"
	OpTime       Op = "time"
	OpPress      Op = "press"
	OpRelease    Op = "release"
	OpEngagement Op = "engagement"
	OpNote       Op = "note"
	OpTick       Op = "tick"
	OpWait       Op = "wait"
)

// Step is one script instruction. Bare words (start, stop) carry no
// argument; the rest are single-key maps such as `tick: 5`.
type Step struct {
	Op    Op
	Arg   string
	Count int
	Wait  time.Duration
}

type Script struct {
	Subject string `yaml:"subject"`
	Steps   []Step `yaml:"steps"`
}

func Load(path string) (Script, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("read script: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return Script{}, fmt.Errorf("%w: parse script: %v", apperrors.ErrInvalidInput, err)
	}
	return s, nil
}

func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		op := Op(node.Value)
		if op != OpStart && op != OpStop {
			return fmt.Errorf("line %d: step %q needs an argument", node.Line, node.Value)
		}
		*s = Step{Op: op}
		return nil
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("line %d: step must have exactly one key", node.Line)
		}
		key, value := node.Content[0].Value, node.Content[1].Value
		step := Step{Op: Op(key), Arg: value}
		switch step.Op {
		case OpSubject, OpToggle, OpTap, OpTime, OpPress, OpRelease, OpEngagement, OpNote:
		case OpTick:
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return fmt.Errorf("line %d: tick needs a non-negative count, got %q", node.Line, value)
			}
			step.Count = n
		case OpWait:
			d, err := time.ParseDuration(value)
			if err != nil || d < 0 {
				return fmt.Errorf("line %d: wait needs a duration, got %q", node.Line, value)
			}
			step.Wait = d
		default:
			return fmt.Errorf("line %d: unknown step %q", node.Line, key)
		}
		*s = step
		return nil
	}
	return fmt.Errorf("line %d: unsupported step", node.Line)
}
