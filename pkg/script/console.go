package script

import (
	"strings"

	"github.com/dop251/goja"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// console backs the scenario-facing console object. Every line is
// collected on the runner so hosts can show scenario output next to the
// run result, and mirrored to the runner's logger at the matching
// level.
type console struct {
	log   *zap.Logger
	lines []string
}

func (c *console) register(vm *goja.Runtime) {
	obj := vm.NewObject()
	obj.Set("log", c.emit(zapcore.InfoLevel))
	obj.Set("warn", c.emit(zapcore.WarnLevel))
	obj.Set("error", c.emit(zapcore.ErrorLevel))
	vm.Set("console", obj)
}

func (c *console) emit(level zapcore.Level) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		line := joinValues(call.Arguments)
		c.lines = append(c.lines, line)
		if ce := c.log.Check(level, line); ce != nil {
			ce.Write()
		}
		return goja.Undefined()
	}
}

func joinValues(args []goja.Value) string {
	var b strings.Builder
	for i, arg := range args {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(arg.String())
	}
	return b.String()
}
