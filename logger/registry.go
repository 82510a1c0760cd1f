package logger

import "sync"

// ComponentEvaluator is the registry name of the stage evaluator's logger.
const ComponentEvaluator = "evaluator"

// named maps a component name to its *Logger.
var named sync.Map

// Register binds l to component. Loggers are stored as given, so callers
// that want the component field set should pass l.WithComponent(component).
// A nil l removes the binding.
func Register(component string, l *Logger) {
	if l == nil {
		named.Delete(component)
		return
	}
	named.Store(component, l)
}

// Get returns the logger bound to component. Unbound components get the
// global logger tagged with the component name.
func Get(component string) *Logger {
	if v, ok := named.Load(component); ok {
		return v.(*Logger)
	}
	return GetGlobalLogger().WithComponent(component)
}

// RegisterDefaults binds each component to base tagged with the component
// name. A nil base means the global logger; no components means every seqkit
// component.
func RegisterDefaults(base *Logger, components ...string) {
	if base == nil {
		base = GetGlobalLogger()
	}
	if len(components) == 0 {
		components = []string{ComponentEvaluator}
	}
	for _, c := range components {
		named.Store(c, base.WithComponent(c))
	}
}
