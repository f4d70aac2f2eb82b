package events

import "github.com/atomicstack/pullmenu/internal/logging"

type MenuTracer struct{}

var Menu = MenuTracer{}

func (MenuTracer) Select(index int, label string) {
	logging.Menu.Trace("select", map[string]interface{}{"index": index, "label": label})
}

func (MenuTracer) Reorder(labels []string) {
	logging.Menu.Trace("reorder", map[string]interface{}{"labels": labels})
}
