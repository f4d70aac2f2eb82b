package events

import "github.com/atomicstack/pullmenu/internal/logging"

type CommandTracer struct{}

var Command = CommandTracer{}

func (CommandTracer) Queue(id, label string) {
	logging.Command.Trace("queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Command.Trace("skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, result string) {
	logging.Command.Trace("result", map[string]interface{}{"id": id, "label": label, "result": result})
}
