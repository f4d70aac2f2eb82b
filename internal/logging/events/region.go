package events

import "github.com/atomicstack/pullmenu/internal/logging"

type RegionTracer struct{}

var Region = RegionTracer{}

func (RegionTracer) Add(name string, capability string) {
	logging.Region.Trace("add", map[string]interface{}{"region": name, "capability": capability})
}

func (RegionTracer) Rejected(err error) {
	if err == nil {
		return
	}
	logging.Region.Trace("rejected", map[string]interface{}{"error": err.Error()})
}

func (RegionTracer) Override(count int) {
	logging.Region.Trace("override", map[string]interface{}{"count": count})
}

func (RegionTracer) Clear() {
	logging.Region.Trace("clear", nil)
}
