package multi

// Env is the current name->value scope chain.
type Env struct {
	values map[string]Value
	parent *Env
}

// NewEnv returns a new scope. A nil parent makes a top scope.
func NewEnv(parent *Env) *Env {
	return &Env{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Set binds a name in this scope, shadowing any outer binding of the
// same name.
func (e *Env) Set(name string, value Value) (Value, error) {
	e.values[name] = value
	return value, nil
}

// Get returns the value bound to name, searching outward through the
// scope chain.
func (e *Env) Get(name string) (Value, bool) {
	if e == nil {
		return nil, false
	}

	val, ok := e.values[name]
	if !ok {
		return e.parent.Get(name)
	}

	return val, true
}
