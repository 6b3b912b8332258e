package core

import (
	"fmt"
	"strings"
)

// Placeholder is an anonymous intermediate double materialized by the chain
// resolver. It has no behavior of its own; every interesting call reaches it
// through its interceptor.
type Placeholder struct {
	path string
}

func (p *Placeholder) String() string {
	return "double(" + p.path + ")"
}

// SyntheticDouble marks placeholders as having no real behavior.
func (p *Placeholder) SyntheticDouble() {}

// StubChain wires stubs on the root subject's interceptor so that invoking
// the full chain of methods yields the terminal value, materializing
// placeholder doubles for intermediate links on demand. Existing stubs whose
// single fixed value is already tracked in this space are reused rather than
// replaced, so overlapping chains share their common prefix.
//
// The terminal may be a plain value, a ReturnPolicy, a func([]any) []any
// evaluated lazily per call, or a one-entry map[string]any whose key is
// appended to the chain as its final method and whose value becomes the
// terminal.
func (s *Space) StubChain(root *Interceptor, names []string, terminal any) error {
	names, terminal, err := normalizeChain(names, terminal)
	if err != nil {
		return err
	}

	current := root
	prefix := ""

	for len(names) > 1 {
		head := names[0]
		prefix = joinPath(prefix, head)

		if next, ok := current.chainTarget(head); ok {
			if in, ok := s.Lookup(next); ok {
				current = in
				names = names[1:]

				continue
			}
		}

		link := &Placeholder{path: prefix}
		current.AddStub(head, Values(link))
		current = s.Attach(link)
		names = names[1:]
	}

	current.AddStub(names[0], terminalPolicy(terminal))

	return nil
}

// normalizeChain folds a one-entry terminal map into the chain and rejects
// malformed specifications before the main loop runs.
func normalizeChain(names []string, terminal any) ([]string, any, error) {
	if mapping, ok := terminal.(map[string]any); ok {
		if len(mapping) != 1 {
			return nil, nil, &ChainConfigurationError{
				Reason: fmt.Sprintf("terminal mapping must have exactly one entry, got %d", len(mapping)),
			}
		}

		for method, value := range mapping {
			names = append(append([]string{}, names...), method)
			terminal = value
		}
	}

	if len(names) == 0 {
		return nil, nil, &ChainConfigurationError{Reason: "empty chain"}
	}

	return names, terminal, nil
}

func terminalPolicy(terminal any) ReturnPolicy {
	switch t := terminal.(type) {
	case ReturnPolicy:
		return t
	case func(args []any) []any:
		return ValuesFrom(t)
	default:
		return Values(t)
	}
}

func joinPath(prefix, head string) string {
	if prefix == "" {
		return head
	}

	return prefix + "." + head
}

// SplitChain normalizes a dot-delimited chain specification to the list form.
func SplitChain(chain string) []string {
	if chain == "" {
		return nil
	}

	return strings.Split(chain, ".")
}
