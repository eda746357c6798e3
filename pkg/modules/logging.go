package modules

import (
	"context"
	"log/slog"

	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Logging returns a module that logs every lifecycle point at debug level.
// A nil logger uses slog.Default().
func Logging(logger *slog.Logger) reconcile.Module {
	if logger == nil {
		logger = slog.Default()
	}
	log := func(p reconcile.HookPoint, v *vdom.VNode) {
		if !logger.Enabled(context.Background(), slog.LevelDebug) {
			return
		}
		if v == nil {
			logger.Debug("vtree hook", "point", p.String())
			return
		}
		logger.Debug("vtree hook", "point", p.String(), "sel", v.Sel, "key", v.Key)
	}
	return reconcile.Module{
		Name:    "logging",
		Pre:     func() { log(reconcile.HookPre, nil) },
		Create:  func(_, v *vdom.VNode) { log(reconcile.HookCreate, v) },
		Update:  func(_, v *vdom.VNode) { log(reconcile.HookUpdate, v) },
		Destroy: func(v *vdom.VNode) { log(reconcile.HookDestroy, v) },
		Remove: func(v *vdom.VNode, rm func()) {
			log(reconcile.HookRemove, v)
			rm()
		},
		Post: func() { log(reconcile.HookPost, nil) },
	}
}
