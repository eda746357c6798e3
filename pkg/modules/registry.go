package modules

import (
	"log/slog"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/reconcile"
)

// ErrUnknownModule is returned by ByName for names it does not know.
var ErrUnknownModule = errors.New("modules: unknown module")

// Env carries what the named modules need beyond the adapter.
type Env struct {
	Logger           *slog.Logger
	Registry         prometheus.Registerer
	MetricsNamespace string
}

var constructors = map[string]func(api dom.Adapter, env Env) reconcile.Module{
	"class":          func(api dom.Adapter, _ Env) reconcile.Module { return Class(api) },
	"props":          func(api dom.Adapter, _ Env) reconcile.Module { return Props(api) },
	"attributes":     func(api dom.Adapter, _ Env) reconcile.Module { return Attributes(api) },
	"style":          func(api dom.Adapter, _ Env) reconcile.Module { return Style(api) },
	"dataset":        func(api dom.Adapter, _ Env) reconcile.Module { return Dataset(api) },
	"eventlisteners": func(api dom.Adapter, _ Env) reconcile.Module { return EventListeners(api) },
	"logging":        func(_ dom.Adapter, env Env) reconcile.Module { return Logging(env.Logger) },
	"tracing":        func(_ dom.Adapter, _ Env) reconcile.Module { return Tracing() },
	"metrics": func(_ dom.Adapter, env Env) reconcile.Module {
		opts := []MetricsOption{}
		if env.Registry != nil {
			opts = append(opts, WithRegistry(env.Registry))
		}
		if env.MetricsNamespace != "" {
			opts = append(opts, WithNamespace(env.MetricsNamespace))
		}
		return Metrics(opts...)
	},
}

// DefaultNames are the modules enabled when nothing is configured.
var DefaultNames = []string{"class", "props", "attributes", "style", "dataset", "eventlisteners"}

// Names returns every known module name, sorted.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Known reports whether name is a known module.
func Known(name string) bool {
	_, ok := constructors[name]
	return ok
}

// ByName builds modules in the given order. An empty list selects
// DefaultNames.
func ByName(names []string, api dom.Adapter, env Env) ([]reconcile.Module, error) {
	if len(names) == 0 {
		names = DefaultNames
	}
	out := make([]reconcile.Module, 0, len(names))
	for _, name := range names {
		ctor, ok := constructors[name]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownModule, "%q", name)
		}
		out = append(out, ctor(api, env))
	}
	return out, nil
}

// Default returns the default module set for api.
func Default(api dom.Adapter) []reconcile.Module {
	mods, _ := ByName(DefaultNames, api, Env{})
	return mods
}
