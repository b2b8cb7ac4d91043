package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/widgethook/pkg/vdom"
)

// Step operations.
const (
	OpAttach  = "attach"
	OpRender  = "render"
	OpCommand = "command"
	OpDetach  = "detach"
)

// Scenario is a named sequence of lifecycle events for one widget root.
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one lifecycle event.
type Step struct {
	Op      string         `yaml:"op"`
	Tree    *Node          `yaml:"tree,omitempty"`
	Command string         `yaml:"command,omitempty"`
	Params  map[string]any `yaml:"params,omitempty"`
	Target  string         `yaml:"target,omitempty"`
	Expect  string         `yaml:"expect,omitempty"`
}

// Node is an element of a recorded tree.
type Node struct {
	Tag      string            `yaml:"tag"`
	Attrs    map[string]string `yaml:"attrs,omitempty"`
	Text     string            `yaml:"text,omitempty"`
	Children []Node            `yaml:"children,omitempty"`
}

// Build converts n into an element tree. A node with only text becomes a text
// node.
func (n Node) Build() *vdom.VNode {
	if n.Tag == "" {
		return vdom.Text(n.Text)
	}
	args := make([]any, 0, len(n.Attrs)+len(n.Children)+1)
	for k, v := range n.Attrs {
		args = append(args, vdom.A(k, v))
	}
	if n.Text != "" {
		args = append(args, vdom.Text(n.Text))
	}
	for _, c := range n.Children {
		args = append(args, c.Build())
	}
	return vdom.El(n.Tag, args...)
}

// Parse decodes and validates a scenario document.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads and parses the scenario at path. An unnamed scenario is named
// after the file.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Validate checks that the steps form a playable sequence: the first step
// attaches a tree, later attaches carry none, and commands are named.
func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario: no steps")
	}
	for i, st := range s.Steps {
		switch st.Op {
		case OpAttach:
			if i == 0 && st.Tree == nil {
				return fmt.Errorf("scenario: step %d: first attach needs a tree", i+1)
			}
			if i > 0 && st.Tree != nil {
				return fmt.Errorf("scenario: step %d: only the first attach takes a tree", i+1)
			}
		case OpRender, OpDetach:
		case OpCommand:
			if st.Command == "" {
				return fmt.Errorf("scenario: step %d: command step needs a command", i+1)
			}
		default:
			return fmt.Errorf("scenario: step %d: unknown op %q", i+1, st.Op)
		}
		if i == 0 && st.Op != OpAttach {
			return fmt.Errorf("scenario: step 1: must be attach, got %q", st.Op)
		}
	}
	return nil
}
