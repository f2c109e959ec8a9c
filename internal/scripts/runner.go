package scripts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dop251/goja"

	"github.com/unkn0wn-root/pmgen/internal/errdef"
	"github.com/unkn0wn-root/pmgen/internal/postman"
)

const defaultTimeout = 2 * time.Second

var errTimeout = errors.New("script timed out")

// ErrResponseNotJSON is raised inside the script by pm.response.json() and
// survives errors.Is on the RunEvent error.
var ErrResponseNotJSON = errors.New("response is not valid JSON")

// Runner evaluates collection event scripts with a small subset of the
// Postman sandbox: pm.response, pm.collectionVariables and console.
type Runner struct {
	timeout time.Duration
}

func NewRunner(timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Runner{timeout: timeout}
}

type Response struct {
	Code int
	Body []byte
}

type Result struct {
	Variables map[string]string
	Logs      []string
}

type EventInput struct {
	Event     postman.Event
	Response  Response
	Variables map[string]string
}

func (r *Runner) RunEvent(ctx context.Context, input EventInput) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	script, err := eventSource(input.Event)
	if err != nil {
		return Result{}, err
	}

	vm := goja.New()
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-time.After(r.timeout):
			vm.Interrupt(errTimeout)
		case <-stop:
		}
	}()

	api := newSandbox(vm, input)
	if err := vm.Set("console", api.consoleAPI()); err != nil {
		return Result{}, errdef.Wrap(errdef.CodeScript, err, "bind console api")
	}
	if err := vm.Set("pm", api.pmAPI()); err != nil {
		return Result{}, errdef.Wrap(errdef.CodeScript, err, "bind pm api")
	}

	if _, err := vm.RunString(script); err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Result{}, ctxErr
			}
			return Result{}, errdef.Wrap(errdef.CodeScript, errTimeout, "execute %s script", input.Event.Listen)
		}
		return Result{}, errdef.Wrap(errdef.CodeScript, err, "execute %s script", input.Event.Listen)
	}
	return api.result(), nil
}

// Compile parses the event script without running it.
func Compile(name string, ev postman.Event) error {
	script, err := eventSource(ev)
	if err != nil {
		return err
	}
	if _, err := goja.Compile(name, script, false); err != nil {
		return errdef.Wrap(errdef.CodeScript, err, "compile %s", name)
	}
	return nil
}

func eventSource(ev postman.Event) (string, error) {
	lang := strings.ToLower(strings.TrimSpace(ev.Script.Type))
	if lang != "" && lang != postman.ScriptTypeJS {
		return "", errdef.New(errdef.CodeScript, "unsupported script type %q", ev.Script.Type)
	}
	return strings.Join(ev.Script.Exec, "\n"), nil
}

type sandbox struct {
	vm        *goja.Runtime
	response  Response
	variables map[string]string
	changed   map[string]string
	logs      []string
}

func newSandbox(vm *goja.Runtime, input EventInput) *sandbox {
	vars := make(map[string]string, len(input.Variables))
	for k, v := range input.Variables {
		vars[k] = v
	}
	return &sandbox{
		vm:        vm,
		response:  input.Response,
		variables: vars,
		changed:   make(map[string]string),
	}
}

func (s *sandbox) consoleAPI() map[string]interface{} {
	logf := func(call goja.FunctionCall) goja.Value {
		parts := make([]string, 0, len(call.Arguments))
		for _, arg := range call.Arguments {
			parts = append(parts, arg.String())
		}
		s.logs = append(s.logs, strings.Join(parts, " "))
		return goja.Undefined()
	}
	return map[string]interface{}{
		"log":   logf,
		"info":  logf,
		"warn":  logf,
		"error": logf,
	}
}

func (s *sandbox) pmAPI() map[string]interface{} {
	return map[string]interface{}{
		"response": map[string]interface{}{
			"code": s.response.Code,
			"text": func() string {
				return string(s.response.Body)
			},
			"json": func(goja.FunctionCall) goja.Value {
				var v interface{}
				if err := json.Unmarshal(s.response.Body, &v); err != nil {
					panic(s.vm.NewGoError(fmt.Errorf("%w: %v", ErrResponseNotJSON, err)))
				}
				return s.vm.ToValue(v)
			},
		},
		"collectionVariables": map[string]interface{}{
			"get": func(name string) string {
				return s.variables[name]
			},
			"set": func(name string, value goja.Value) {
				str := ""
				if value != nil && !goja.IsUndefined(value) && !goja.IsNull(value) {
					str = value.String()
				}
				s.variables[name] = str
				s.changed[name] = str
			},
			"has": func(name string) bool {
				_, ok := s.variables[name]
				return ok
			},
			"unset": func(name string) {
				delete(s.variables, name)
				s.changed[name] = ""
			},
		},
	}
}

func (s *sandbox) result() Result {
	res := Result{Logs: s.logs}
	if len(s.changed) > 0 {
		res.Variables = s.changed
	}
	return res
}
