package events

import "github.com/atomicstack/pullmenu/internal/logging"

type StoreTracer struct{}

var Store = StoreTracer{}

func (StoreTracer) Open(path string) {
	logging.Store.Trace("open", map[string]interface{}{"path": path})
}

func (StoreTracer) SaveOrder(labels []string) {
	logging.Store.Trace("order.save", map[string]interface{}{"labels": labels})
}

func (StoreTracer) RestoreOrder(labels []string, applied bool) {
	logging.Store.Trace("order.restore", map[string]interface{}{"labels": labels, "applied": applied})
}

func (StoreTracer) Error(op string, err error) {
	if err == nil {
		return
	}
	logging.Store.Trace("error", map[string]interface{}{"op": op, "error": err.Error()})
}
