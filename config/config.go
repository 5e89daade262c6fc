// Package config loads a YAML policy document describing how an
// embedding host configures an Interpreter: the operation ceiling and
// which of the default capability table's constructors to expose.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Policy is the YAML-decodable shape of a host's interpreter policy.
type Policy struct {
	// MaxOps caps the number of statements/expressions a single
	// Evaluate call may execute before it aborts. cmd/jsgo passes only
	// a positive value to interpreter.WithMaxOps; zero or negative leaves
	// the interpreter's default ceiling in place.
	MaxOps int `yaml:"maxOps"`

	// Globals lists the names of default capability-table globals to
	// expose (e.g. "Object", "Array", "Math", "console"). An empty or
	// absent list exposes everything defaults.Register wires in; this
	// is a denylist-free allowlist, not a per-method filter.
	Globals []string `yaml:"globals"`
}

// Load reads and parses a YAML policy document from path.
func Load(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Allows reports whether name should be exposed under this policy. An
// empty Globals list allows everything.
func (p *Policy) Allows(name string) bool {
	if p == nil || len(p.Globals) == 0 {
		return true
	}
	for _, g := range p.Globals {
		if g == name {
			return true
		}
	}
	return false
}
