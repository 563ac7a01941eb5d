// Package codec converts Evergreen project configurations between their
// textual document forms (YAML, and JSON as an interchange target) and the
// typed model. Both directions are pure functions; all errors are returned
// to the caller.
package codec

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dbradf/shrub-go/model"
	"gopkg.in/yaml.v3"
)

// Parse converts a YAML project configuration document into a model.Project.
//
// Input that is not well-formed YAML fails with ErrMalformedDocument. A value
// that cannot be coerced to the declared type of its field fails with
// ErrSchemaMismatch carrying the field path; nothing is silently coerced.
// Unrecognized keys are tolerated at every level, since the document format
// evolves independently of this library. Optional fields absent from the
// input resolve to their zero-value defaults.
func Parse(text string) (*model.Project, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, malformed(err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return &model.Project{}, nil
	}

	root := resolve(doc.Content[0])
	if isNull(root) {
		return &model.Project{}, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, mismatch("$", "mapping", root)
	}
	return decodeProject(root)
}

func decodeProject(root *yaml.Node) (*model.Project, error) {
	p := &model.Project{}
	for i := 0; i < len(root.Content); i += 2 {
		key := root.Content[i].Value
		val := resolve(root.Content[i+1])
		if isNull(val) {
			continue
		}

		var err error
		switch key {
		case "buildvariants":
			p.BuildVariants, err = decodeVariants(val, key)
		case "tasks":
			p.Tasks, err = decodeTasks(val, key)
		case "task_groups":
			p.TaskGroups, err = decodeTaskGroups(val, key)
		case "functions":
			p.Functions, err = decodeFunctions(val, key)
		case "pre":
			p.Pre, err = decodeHook(val, key)
		case "post":
			p.Post, err = decodeHook(val, key)
		case "timeout":
			p.Timeout, err = decodeHook(val, key)
		case "modules":
			p.Modules, err = decodeModules(val, key)
		case "stepback":
			p.Stepback, err = decodeBoolPtr(val, key)
		case "pre_error_fails_task":
			p.PreErrorFailsTask, err = decodeBoolPtr(val, key)
		case "oom_tracker":
			p.OOMTracker, err = decodeBoolPtr(val, key)
		case "command_type":
			var s string
			s, err = decodeString(val, key)
			p.CommandType = model.CommandType(s)
		case "ignore":
			p.Ignore, err = decodeStringList(val, key)
		case "parameters":
			p.Parameters, err = decodeParameters(val, key)
		default:
			// Unknown top-level keys are tolerated.
		}
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

func decodeTasks(n *yaml.Node, path string) ([]model.Task, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, mismatch(path, "sequence", n)
	}
	if len(n.Content) == 0 {
		return nil, nil
	}
	tasks := make([]model.Task, 0, len(n.Content))
	for i, item := range n.Content {
		task, err := decodeTask(resolve(item), fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func decodeTask(n *yaml.Node, path string) (model.Task, error) {
	var t model.Task
	if n.Kind != yaml.MappingNode {
		return t, mismatch(path, "mapping", n)
	}
	for i := 0; i < len(n.Content); i += 2 {
		key := n.Content[i].Value
		val := resolve(n.Content[i+1])
		if isNull(val) {
			continue
		}
		fieldPath := path + "." + key

		var err error
		switch key {
		case "name":
			t.Name, err = decodeString(val, fieldPath)
		case "commands":
			t.Commands, err = decodeCommands(val, fieldPath)
		case "depends_on":
			t.DependsOn, err = decodeDependencies(val, fieldPath)
		case "exec_timeout_secs":
			t.ExecTimeoutSecs, err = decodeInt(val, fieldPath)
		case "tags":
			t.Tags, err = decodeStringList(val, fieldPath)
		case "priority":
			t.Priority, err = decodeInt(val, fieldPath)
		case "patchable":
			t.Patchable, err = decodeBoolPtr(val, fieldPath)
		case "stepback":
			t.Stepback, err = decodeBoolPtr(val, fieldPath)
		}
		if err != nil {
			return t, err
		}
	}
	return t, nil
}

func decodeDependencies(n *yaml.Node, path string) ([]model.TaskDependency, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, mismatch(path, "sequence", n)
	}
	if len(n.Content) == 0 {
		return nil, nil
	}
	deps := make([]model.TaskDependency, 0, len(n.Content))
	for i, item := range n.Content {
		item = resolve(item)
		itemPath := fmt.Sprintf("%s[%d]", path, i)

		// A bare task name is shorthand for {name: <task>}.
		if item.Kind == yaml.ScalarNode {
			name, err := decodeString(item, itemPath)
			if err != nil {
				return nil, err
			}
			deps = append(deps, model.TaskDependency{Name: name})
			continue
		}
		if item.Kind != yaml.MappingNode {
			return nil, mismatch(itemPath, "mapping or task name", item)
		}

		var dep model.TaskDependency
		for j := 0; j < len(item.Content); j += 2 {
			key := item.Content[j].Value
			val := resolve(item.Content[j+1])
			if isNull(val) {
				continue
			}

			var err error
			switch key {
			case "name":
				dep.Name, err = decodeString(val, itemPath+".name")
			case "variant":
				dep.Variant, err = decodeString(val, itemPath+".variant")
			}
			if err != nil {
				return nil, err
			}
		}
		deps = append(deps, dep)
	}
	return deps, nil
}

func decodeVariants(n *yaml.Node, path string) ([]model.BuildVariant, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, mismatch(path, "sequence", n)
	}
	if len(n.Content) == 0 {
		return nil, nil
	}
	variants := make([]model.BuildVariant, 0, len(n.Content))
	for i, item := range n.Content {
		bv, err := decodeVariant(resolve(item), fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		variants = append(variants, bv)
	}
	return variants, nil
}

func decodeVariant(n *yaml.Node, path string) (model.BuildVariant, error) {
	var bv model.BuildVariant
	if n.Kind != yaml.MappingNode {
		return bv, mismatch(path, "mapping", n)
	}
	for i := 0; i < len(n.Content); i += 2 {
		key := n.Content[i].Value
		val := resolve(n.Content[i+1])
		if isNull(val) {
			continue
		}
		fieldPath := path + "." + key

		var err error
		switch key {
		case "name":
			bv.Name, err = decodeString(val, fieldPath)
		case "display_name":
			bv.DisplayName, err = decodeString(val, fieldPath)
		case "run_on":
			bv.RunOn, err = decodeStringList(val, fieldPath)
		case "tasks":
			bv.Tasks, err = decodeTaskRefs(val, fieldPath)
		case "display_tasks":
			bv.DisplayTasks, err = decodeDisplayTasks(val, fieldPath)
		case "batchtime":
			bv.BatchTime, err = decodeInt(val, fieldPath)
		case "expansions":
			bv.Expansions, err = decodeExpansions(val, fieldPath)
		case "stepback":
			bv.Stepback, err = decodeBoolPtr(val, fieldPath)
		case "modules":
			bv.Modules, err = decodeStringList(val, fieldPath)
		}
		if err != nil {
			return bv, err
		}
	}
	return bv, nil
}

func decodeTaskRefs(n *yaml.Node, path string) ([]model.TaskRef, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, mismatch(path, "sequence", n)
	}
	if len(n.Content) == 0 {
		return nil, nil
	}
	refs := make([]model.TaskRef, 0, len(n.Content))
	for i, item := range n.Content {
		item = resolve(item)
		itemPath := fmt.Sprintf("%s[%d]", path, i)

		// A bare task name is shorthand for {name: <task>}.
		if item.Kind == yaml.ScalarNode {
			name, err := decodeString(item, itemPath)
			if err != nil {
				return nil, err
			}
			refs = append(refs, model.TaskRef{Name: name})
			continue
		}
		if item.Kind != yaml.MappingNode {
			return nil, mismatch(itemPath, "mapping or task name", item)
		}

		var ref model.TaskRef
		for j := 0; j < len(item.Content); j += 2 {
			key := item.Content[j].Value
			val := resolve(item.Content[j+1])
			if isNull(val) {
				continue
			}

			var err error
			switch key {
			case "name":
				ref.Name, err = decodeString(val, itemPath+".name")
			case "distros":
				ref.Distros, err = decodeStringList(val, itemPath+".distros")
			}
			if err != nil {
				return nil, err
			}
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func decodeDisplayTasks(n *yaml.Node, path string) ([]model.DisplayTask, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, mismatch(path, "sequence", n)
	}
	if len(n.Content) == 0 {
		return nil, nil
	}
	displays := make([]model.DisplayTask, 0, len(n.Content))
	for i, item := range n.Content {
		item = resolve(item)
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		if item.Kind != yaml.MappingNode {
			return nil, mismatch(itemPath, "mapping", item)
		}

		var dt model.DisplayTask
		for j := 0; j < len(item.Content); j += 2 {
			key := item.Content[j].Value
			val := resolve(item.Content[j+1])
			if isNull(val) {
				continue
			}

			var err error
			switch key {
			case "name":
				dt.Name, err = decodeString(val, itemPath+".name")
			case "execution_tasks":
				dt.ExecutionTasks, err = decodeStringList(val, itemPath+".execution_tasks")
			}
			if err != nil {
				return nil, err
			}
		}
		displays = append(displays, dt)
	}
	return displays, nil
}

func decodeTaskGroups(n *yaml.Node, path string) ([]model.TaskGroup, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, mismatch(path, "sequence", n)
	}
	if len(n.Content) == 0 {
		return nil, nil
	}
	groups := make([]model.TaskGroup, 0, len(n.Content))
	for i, item := range n.Content {
		tg, err := decodeTaskGroup(resolve(item), fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		groups = append(groups, tg)
	}
	return groups, nil
}

func decodeTaskGroup(n *yaml.Node, path string) (model.TaskGroup, error) {
	var tg model.TaskGroup
	if n.Kind != yaml.MappingNode {
		return tg, mismatch(path, "mapping", n)
	}
	for i := 0; i < len(n.Content); i += 2 {
		key := n.Content[i].Value
		val := resolve(n.Content[i+1])
		if isNull(val) {
			continue
		}
		fieldPath := path + "." + key

		var err error
		switch key {
		case "name":
			tg.Name, err = decodeString(val, fieldPath)
		case "tasks":
			tg.Tasks, err = decodeStringList(val, fieldPath)
		case "max_hosts":
			tg.MaxHosts, err = decodeInt(val, fieldPath)
		case "share_processes":
			tg.ShareProcesses, err = decodeBoolPtr(val, fieldPath)
		case "setup_group_can_fail_task":
			tg.SetupGroupCanFailTask, err = decodeBoolPtr(val, fieldPath)
		case "setup_group_timeout_secs":
			tg.SetupGroupTimeoutSecs, err = decodeTimeoutValue(val, fieldPath)
		case "setup_group":
			tg.SetupGroup, err = decodeCommands(val, fieldPath)
		case "teardown_group":
			tg.TeardownGroup, err = decodeCommands(val, fieldPath)
		case "setup_task":
			tg.SetupTask, err = decodeCommands(val, fieldPath)
		case "teardown_task":
			tg.TeardownTask, err = decodeCommands(val, fieldPath)
		case "timeout":
			tg.Timeout, err = decodeCommands(val, fieldPath)
		}
		if err != nil {
			return tg, err
		}
	}
	return tg, nil
}

func decodeFunctions(n *yaml.Node, path string) ([]model.Function, error) {
	if n.Kind != yaml.MappingNode {
		return nil, mismatch(path, "mapping", n)
	}
	if len(n.Content) == 0 {
		return nil, nil
	}
	functions := make([]model.Function, 0, len(n.Content)/2)
	seen := make(map[string]bool, len(n.Content)/2)
	for i := 0; i < len(n.Content); i += 2 {
		name := n.Content[i].Value
		if seen[name] {
			return nil, mismatch(path+"."+name, "unique function name", n.Content[i])
		}
		seen[name] = true

		commands, err := decodeCommands(resolve(n.Content[i+1]), path+"."+name)
		if err != nil {
			return nil, err
		}
		functions = append(functions, model.Function{Name: name, Commands: commands})
	}
	return functions, nil
}

func decodeModules(n *yaml.Node, path string) ([]model.Module, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, mismatch(path, "sequence", n)
	}
	if len(n.Content) == 0 {
		return nil, nil
	}
	modules := make([]model.Module, 0, len(n.Content))
	for i, item := range n.Content {
		item = resolve(item)
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		if item.Kind != yaml.MappingNode {
			return nil, mismatch(itemPath, "mapping", item)
		}

		var m model.Module
		for j := 0; j < len(item.Content); j += 2 {
			key := item.Content[j].Value
			val := resolve(item.Content[j+1])
			if isNull(val) {
				continue
			}

			var err error
			switch key {
			case "name":
				m.Name, err = decodeString(val, itemPath+".name")
			case "repo":
				m.Repo, err = decodeString(val, itemPath+".repo")
			case "branch":
				m.Branch, err = decodeString(val, itemPath+".branch")
			case "prefix":
				m.Prefix, err = decodeString(val, itemPath+".prefix")
			}
			if err != nil {
				return nil, err
			}
		}
		modules = append(modules, m)
	}
	return modules, nil
}

func decodeParameters(n *yaml.Node, path string) ([]model.Parameter, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, mismatch(path, "sequence", n)
	}
	if len(n.Content) == 0 {
		return nil, nil
	}
	params := make([]model.Parameter, 0, len(n.Content))
	for i, item := range n.Content {
		item = resolve(item)
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		if item.Kind != yaml.MappingNode {
			return nil, mismatch(itemPath, "mapping", item)
		}

		var param model.Parameter
		for j := 0; j < len(item.Content); j += 2 {
			key := item.Content[j].Value
			val := resolve(item.Content[j+1])
			if isNull(val) {
				continue
			}

			var err error
			switch key {
			case "key":
				param.Key, err = decodeString(val, itemPath+".key")
			case "value":
				param.Value, err = decodeString(val, itemPath+".value")
			case "description":
				param.Description, err = decodeString(val, itemPath+".description")
			}
			if err != nil {
				return nil, err
			}
		}
		params = append(params, param)
	}
	return params, nil
}

func decodeExpansions(n *yaml.Node, path string) (model.Expansions, error) {
	if n.Kind != yaml.MappingNode {
		return nil, mismatch(path, "mapping", n)
	}
	if len(n.Content) == 0 {
		return nil, nil
	}
	expansions := make(model.Expansions, 0, len(n.Content)/2)
	for i := 0; i < len(n.Content); i += 2 {
		key := n.Content[i].Value
		value, err := decodeString(resolve(n.Content[i+1]), path+"."+key)
		if err != nil {
			return nil, err
		}
		expansions = append(expansions, model.Expansion{Key: key, Value: value})
	}
	return expansions, nil
}

// decodeHook decodes a pre/post/timeout command list. Unlike every other
// collection, an explicitly empty hook stays distinguishable from an absent
// one, so an empty sequence decodes to a non-nil empty slice.
func decodeHook(n *yaml.Node, path string) ([]model.Command, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, mismatch(path, "sequence", n)
	}
	commands := make([]model.Command, 0, len(n.Content))
	for i, item := range n.Content {
		cmd, err := decodeCommand(resolve(item), fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		commands = append(commands, cmd)
	}
	return commands, nil
}

func decodeCommands(n *yaml.Node, path string) ([]model.Command, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, mismatch(path, "sequence", n)
	}
	if len(n.Content) == 0 {
		return nil, nil
	}
	commands := make([]model.Command, 0, len(n.Content))
	for i, item := range n.Content {
		cmd, err := decodeCommand(resolve(item), fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		commands = append(commands, cmd)
	}
	return commands, nil
}

func decodeCommand(n *yaml.Node, path string) (model.Command, error) {
	var cmd model.Command
	if n.Kind != yaml.MappingNode {
		return cmd, mismatch(path, "mapping", n)
	}
	for i := 0; i < len(n.Content); i += 2 {
		key := n.Content[i].Value
		val := resolve(n.Content[i+1])
		if isNull(val) {
			continue
		}
		fieldPath := path + "." + key

		var err error
		switch key {
		case "func":
			cmd.Func, err = decodeString(val, fieldPath)
		case "vars":
			cmd.Vars, err = decodeMapping(val, fieldPath)
		case "timeout_secs":
			cmd.TimeoutSecs, err = decodeInt(val, fieldPath)
		case "command":
			cmd.Command, err = decodeString(val, fieldPath)
		case "params":
			cmd.Params, err = decodeMapping(val, fieldPath)
		case "type":
			var s string
			s, err = decodeString(val, fieldPath)
			cmd.Type = model.CommandType(s)
		}
		if err != nil {
			return cmd, err
		}
	}
	if (cmd.Func == "") == (cmd.Command == "") {
		return cmd, mismatch(path, "exactly one of func or command", n)
	}
	return cmd, nil
}

func decodeMapping(n *yaml.Node, path string) (model.Mapping, error) {
	if n.Kind != yaml.MappingNode {
		return nil, mismatch(path, "mapping", n)
	}
	if len(n.Content) == 0 {
		return nil, nil
	}
	m := make(model.Mapping, 0, len(n.Content)/2)
	for i := 0; i < len(n.Content); i += 2 {
		key := n.Content[i].Value
		value, err := decodeValue(resolve(n.Content[i+1]), path+"."+key)
		if err != nil {
			return nil, err
		}
		m = append(m, model.Field{Key: key, Value: value})
	}
	return m, nil
}

func decodeValue(n *yaml.Node, path string) (model.Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return decodeScalarValue(n, path)
	case yaml.SequenceNode:
		items := make([]model.Value, 0, len(n.Content))
		for i, item := range n.Content {
			v, err := decodeValue(resolve(item), fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return model.Value{}, err
			}
			items = append(items, v)
		}
		return model.Value{Kind: model.KindList, List: items}, nil
	case yaml.MappingNode:
		m, err := decodeMapping(n, path)
		if err != nil {
			return model.Value{}, err
		}
		return model.Value{Kind: model.KindMap, Map: m}, nil
	default:
		return model.Value{}, mismatch(path, "scalar, sequence or mapping", n)
	}
}

func decodeScalarValue(n *yaml.Node, path string) (model.Value, error) {
	switch n.Tag {
	case "!!null":
		return model.NullValue(), nil
	case "!!bool":
		b, err := parseYAMLBool(n.Value)
		if err != nil {
			return model.Value{}, mismatch(path, "boolean", n)
		}
		return model.BoolValue(b), nil
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return model.Value{}, mismatch(path, "integer", n)
		}
		return model.IntValue(i), nil
	case "!!float":
		f, err := parseYAMLFloat(n.Value)
		if err != nil {
			return model.Value{}, mismatch(path, "float", n)
		}
		return model.FloatValue(f), nil
	default:
		return model.StringValue(n.Value), nil
	}
}

// decodeString accepts any scalar and returns its text. Structured nodes are
// rejected; scalar-to-string is the one coercion the document format relies
// on (unquoted numerals in string positions).
func decodeString(n *yaml.Node, path string) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", mismatch(path, "string", n)
	}
	if n.Tag == "!!null" {
		return "", nil
	}
	return n.Value, nil
}

func decodeStringList(n *yaml.Node, path string) ([]string, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, mismatch(path, "sequence", n)
	}
	if len(n.Content) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(n.Content))
	for i, item := range n.Content {
		s, err := decodeString(resolve(item), fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func decodeInt(n *yaml.Node, path string) (int64, error) {
	if n.Kind != yaml.ScalarNode || n.Tag != "!!int" {
		return 0, mismatch(path, "integer", n)
	}
	i, err := strconv.ParseInt(n.Value, 0, 64)
	if err != nil {
		return 0, mismatch(path, "integer", n)
	}
	return i, nil
}

func decodeBoolPtr(n *yaml.Node, path string) (*bool, error) {
	if n.Kind != yaml.ScalarNode || n.Tag != "!!bool" {
		return nil, mismatch(path, "boolean", n)
	}
	b, err := parseYAMLBool(n.Value)
	if err != nil {
		return nil, mismatch(path, "boolean", n)
	}
	return &b, nil
}

func decodeTimeoutValue(n *yaml.Node, path string) (model.TimeoutValue, error) {
	if n.Kind != yaml.ScalarNode {
		return model.TimeoutValue{}, mismatch(path, "integer or expansion", n)
	}
	if n.Tag == "!!int" {
		secs, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return model.TimeoutValue{}, mismatch(path, "integer or expansion", n)
		}
		return model.TimeoutSecs(secs), nil
	}
	if n.Tag == "!!str" {
		return model.TimeoutExpansion(n.Value), nil
	}
	return model.TimeoutValue{}, mismatch(path, "integer or expansion", n)
}

// resolve follows alias nodes to their anchors.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func parseYAMLBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "y":
		return true, nil
	case "false", "no", "off", "n":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean: %q", s)
	}
}

func parseYAMLFloat(s string) (float64, error) {
	switch strings.ToLower(s) {
	case ".inf", "+.inf":
		return math.Inf(1), nil
	case "-.inf":
		return math.Inf(-1), nil
	case ".nan":
		return math.NaN(), nil
	default:
		return strconv.ParseFloat(s, 64)
	}
}
