// Package conformance runs YAML-defined language test suites.
package conformance

// Suite represents a complete YAML test file.
type Suite struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Tests       []Case `yaml:"tests"`
}

// Case is a single program with its expectation.
type Case struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Skip        string `yaml:"skip,omitempty"`
	Program     string `yaml:"program"`
	Expect      Expect `yaml:"expect"`
}

// Expect defines what result is expected from a program. Exactly one
// of Value/Error applies; absent output slots appear as "<absent>"
// inside expected lists.
type Expect struct {
	Value interface{} `yaml:"value,omitempty"`
	Error string      `yaml:"error,omitempty"` // substring of the error text
}
