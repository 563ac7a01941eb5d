package codec

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dbradf/shrub-go/model"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Serialize converts a model.Project into its YAML document form.
//
// Output is deterministic: fields serialize in a fixed order and map-like
// structures keep their declaration order. Fields holding default values are
// omitted except tasks and buildvariants, which the document format always
// carries. A value that cannot be represented fails with
// ErrSerializationFailure.
func Serialize(p *model.Project) (string, error) {
	root, err := encodeProject(p)
	if err != nil {
		return "", err
	}
	out, err := yaml.Marshal(root)
	if err != nil {
		return "", zerr.Wrap(ErrSerializationFailure, err.Error())
	}
	return string(out), nil
}

func encodeProject(p *model.Project) (*yaml.Node, error) {
	root := newMapNode()

	variants := newSeqNode()
	for _, bv := range p.BuildVariants {
		variants.Content = append(variants.Content, encodeVariant(&bv))
	}
	appendPair(root, "buildvariants", variants)

	tasks := newSeqNode()
	for i, t := range p.Tasks {
		n, err := encodeTask(&t, fmt.Sprintf("tasks[%d]", i))
		if err != nil {
			return nil, err
		}
		tasks.Content = append(tasks.Content, n)
	}
	appendPair(root, "tasks", tasks)

	if len(p.TaskGroups) > 0 {
		groups := newSeqNode()
		for i, tg := range p.TaskGroups {
			n, err := encodeTaskGroup(&tg, fmt.Sprintf("task_groups[%d]", i))
			if err != nil {
				return nil, err
			}
			groups.Content = append(groups.Content, n)
		}
		appendPair(root, "task_groups", groups)
	}

	if len(p.Functions) > 0 {
		functions := newMapNode()
		for _, f := range p.Functions {
			n, err := encodeCommands(f.Commands, "functions."+f.Name)
			if err != nil {
				return nil, err
			}
			appendPair(functions, f.Name, n)
		}
		appendPair(root, "functions", functions)
	}

	// Hooks are tri-state: nil is absent, empty is an explicitly empty list.
	for _, hook := range []struct {
		key      string
		commands []model.Command
	}{
		{"pre", p.Pre},
		{"post", p.Post},
		{"timeout", p.Timeout},
	} {
		if hook.commands == nil {
			continue
		}
		n, err := encodeCommands(hook.commands, hook.key)
		if err != nil {
			return nil, err
		}
		appendPair(root, hook.key, n)
	}

	if len(p.Modules) > 0 {
		modules := newSeqNode()
		for _, m := range p.Modules {
			mod := newMapNode()
			appendPair(mod, "name", strNode(m.Name))
			appendPair(mod, "repo", strNode(m.Repo))
			appendPair(mod, "branch", strNode(m.Branch))
			appendPair(mod, "prefix", strNode(m.Prefix))
			modules.Content = append(modules.Content, mod)
		}
		appendPair(root, "modules", modules)
	}

	if p.Stepback != nil {
		appendPair(root, "stepback", boolNode(*p.Stepback))
	}
	if p.PreErrorFailsTask != nil {
		appendPair(root, "pre_error_fails_task", boolNode(*p.PreErrorFailsTask))
	}
	if p.OOMTracker != nil {
		appendPair(root, "oom_tracker", boolNode(*p.OOMTracker))
	}
	if p.CommandType != "" {
		appendPair(root, "command_type", strNode(string(p.CommandType)))
	}
	if len(p.Ignore) > 0 {
		appendPair(root, "ignore", strListNode(p.Ignore))
	}
	if len(p.Parameters) > 0 {
		params := newSeqNode()
		for _, param := range p.Parameters {
			n := newMapNode()
			appendPair(n, "key", strNode(param.Key))
			if param.Value != "" {
				appendPair(n, "value", strNode(param.Value))
			}
			appendPair(n, "description", strNode(param.Description))
			params.Content = append(params.Content, n)
		}
		appendPair(root, "parameters", params)
	}

	return root, nil
}

func encodeTask(t *model.Task, path string) (*yaml.Node, error) {
	n := newMapNode()
	appendPair(n, "name", strNode(t.Name))

	commands, err := encodeCommands(t.Commands, path+".commands")
	if err != nil {
		return nil, err
	}
	appendPair(n, "commands", commands)

	if len(t.DependsOn) > 0 {
		deps := newSeqNode()
		for _, dep := range t.DependsOn {
			d := newMapNode()
			appendPair(d, "name", strNode(dep.Name))
			if dep.Variant != "" {
				appendPair(d, "variant", strNode(dep.Variant))
			}
			deps.Content = append(deps.Content, d)
		}
		appendPair(n, "depends_on", deps)
	}
	if t.ExecTimeoutSecs != 0 {
		appendPair(n, "exec_timeout_secs", intNode(t.ExecTimeoutSecs))
	}
	if len(t.Tags) > 0 {
		appendPair(n, "tags", strListNode(t.Tags))
	}
	if t.Priority != 0 {
		appendPair(n, "priority", intNode(t.Priority))
	}
	if t.Patchable != nil {
		appendPair(n, "patchable", boolNode(*t.Patchable))
	}
	if t.Stepback != nil {
		appendPair(n, "stepback", boolNode(*t.Stepback))
	}
	return n, nil
}

func encodeVariant(bv *model.BuildVariant) *yaml.Node {
	n := newMapNode()
	appendPair(n, "name", strNode(bv.Name))

	refs := newSeqNode()
	for _, ref := range bv.Tasks {
		r := newMapNode()
		appendPair(r, "name", strNode(ref.Name))
		if len(ref.Distros) > 0 {
			appendPair(r, "distros", strListNode(ref.Distros))
		}
		refs.Content = append(refs.Content, r)
	}
	appendPair(n, "tasks", refs)

	if bv.DisplayName != "" {
		appendPair(n, "display_name", strNode(bv.DisplayName))
	}
	if len(bv.RunOn) > 0 {
		appendPair(n, "run_on", strListNode(bv.RunOn))
	}
	if len(bv.DisplayTasks) > 0 {
		displays := newSeqNode()
		for _, dt := range bv.DisplayTasks {
			d := newMapNode()
			appendPair(d, "name", strNode(dt.Name))
			appendPair(d, "execution_tasks", strListNode(dt.ExecutionTasks))
			displays.Content = append(displays.Content, d)
		}
		appendPair(n, "display_tasks", displays)
	}
	if bv.BatchTime != 0 {
		appendPair(n, "batchtime", intNode(bv.BatchTime))
	}
	if len(bv.Expansions) > 0 {
		expansions := newMapNode()
		for _, e := range bv.Expansions {
			appendPair(expansions, e.Key, strNode(e.Value))
		}
		appendPair(n, "expansions", expansions)
	}
	if bv.Stepback != nil {
		appendPair(n, "stepback", boolNode(*bv.Stepback))
	}
	if len(bv.Modules) > 0 {
		appendPair(n, "modules", strListNode(bv.Modules))
	}
	return n
}

func encodeTaskGroup(tg *model.TaskGroup, path string) (*yaml.Node, error) {
	n := newMapNode()
	appendPair(n, "name", strNode(tg.Name))
	appendPair(n, "tasks", strListNode(tg.Tasks))

	if tg.MaxHosts != 0 {
		appendPair(n, "max_hosts", intNode(tg.MaxHosts))
	}
	if tg.ShareProcesses != nil {
		appendPair(n, "share_processes", boolNode(*tg.ShareProcesses))
	}
	if tg.SetupGroupCanFailTask != nil {
		appendPair(n, "setup_group_can_fail_task", boolNode(*tg.SetupGroupCanFailTask))
	}
	if !tg.SetupGroupTimeoutSecs.IsZero() {
		if tg.SetupGroupTimeoutSecs.Expansion != "" {
			appendPair(n, "setup_group_timeout_secs", strNode(tg.SetupGroupTimeoutSecs.Expansion))
		} else {
			appendPair(n, "setup_group_timeout_secs", intNode(tg.SetupGroupTimeoutSecs.Secs))
		}
	}

	for _, hook := range []struct {
		key      string
		commands []model.Command
	}{
		{"setup_group", tg.SetupGroup},
		{"teardown_group", tg.TeardownGroup},
		{"setup_task", tg.SetupTask},
		{"teardown_task", tg.TeardownTask},
		{"timeout", tg.Timeout},
	} {
		if len(hook.commands) == 0 {
			continue
		}
		commands, err := encodeCommands(hook.commands, path+"."+hook.key)
		if err != nil {
			return nil, err
		}
		appendPair(n, hook.key, commands)
	}
	return n, nil
}

func encodeCommands(commands []model.Command, path string) (*yaml.Node, error) {
	n := newSeqNode()
	for i, cmd := range commands {
		c, err := encodeCommand(&cmd, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, c)
	}
	return n, nil
}

func encodeCommand(cmd *model.Command, path string) (*yaml.Node, error) {
	if (cmd.Func == "") == (cmd.Command == "") {
		return nil, unserializable(path, "command must set exactly one of Func or Command")
	}

	n := newMapNode()
	if cmd.Func != "" {
		appendPair(n, "func", strNode(cmd.Func))
		if len(cmd.Vars) > 0 {
			vars, err := encodeMapping(cmd.Vars, path+".vars")
			if err != nil {
				return nil, err
			}
			appendPair(n, "vars", vars)
		}
		if cmd.TimeoutSecs != 0 {
			appendPair(n, "timeout_secs", intNode(cmd.TimeoutSecs))
		}
		return n, nil
	}

	appendPair(n, "command", strNode(cmd.Command))
	if cmd.Type != "" {
		appendPair(n, "type", strNode(string(cmd.Type)))
	}
	if len(cmd.Params) > 0 {
		params, err := encodeMapping(cmd.Params, path+".params")
		if err != nil {
			return nil, err
		}
		appendPair(n, "params", params)
	}
	return n, nil
}

func encodeMapping(m model.Mapping, path string) (*yaml.Node, error) {
	n := newMapNode()
	for _, f := range m {
		v, err := encodeValue(f.Value, path+"."+f.Key)
		if err != nil {
			return nil, err
		}
		appendPair(n, f.Key, v)
	}
	return n, nil
}

func encodeValue(v model.Value, path string) (*yaml.Node, error) {
	switch v.Kind {
	case model.KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case model.KindString:
		return strNode(v.Str), nil
	case model.KindInt:
		return intNode(v.Int), nil
	case model.KindFloat:
		return floatNode(v.Float), nil
	case model.KindBool:
		return boolNode(v.Bool), nil
	case model.KindList:
		n := newSeqNode()
		for i, item := range v.List {
			c, err := encodeValue(item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, c)
		}
		return n, nil
	case model.KindMap:
		return encodeMapping(v.Map, path)
	default:
		return nil, unserializable(path, fmt.Sprintf("unsupported value kind %d", v.Kind))
	}
}

func newMapNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func newSeqNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

func appendPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, strNode(key), value)
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func strListNode(items []string) *yaml.Node {
	n := newSeqNode()
	for _, item := range items {
		n.Content = append(n.Content, strNode(item))
	}
	return n
}

func intNode(i int64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(i, 10)}
}

func boolNode(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
}

func floatNode(f float64) *yaml.Node {
	var value string
	switch {
	case math.IsInf(f, 1):
		value = ".inf"
	case math.IsInf(f, -1):
		value = "-.inf"
	case math.IsNaN(f):
		value = ".nan"
	default:
		value = strconv.FormatFloat(f, 'g', -1, 64)
		// Keep the scalar resolvable as a float so the emitter does not
		// need an explicit tag.
		if !strings.ContainsAny(value, ".eE") {
			value += ".0"
		}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: value}
}
