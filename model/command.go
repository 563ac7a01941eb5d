package model

// CommandType classifies the kind of failure a failing command signals.
type CommandType string

const (
	// CommandTypeTest marks failures as test failures.
	CommandTypeTest CommandType = "test"
	// CommandTypeSystem marks failures as system failures.
	CommandTypeSystem CommandType = "system"
	// CommandTypeSetup marks failures as setup failures.
	CommandTypeSetup CommandType = "setup"
)

// Command is a single executable step of a task or function.
//
// A command is either a call to a project function (Func is set) or an
// invocation of a built-in Evergreen command (Command is set). Exactly one of
// the two must be set; the codec rejects commands that specify both or
// neither. Parameters are open-ended mappings because the command vocabulary
// evolves with Evergreen, not with this library.
type Command struct {
	// Func names the project function to call.
	Func string
	// Vars are passed to the called function as expansions.
	Vars Mapping
	// TimeoutSecs bounds the function call, in seconds.
	TimeoutSecs int64

	// Command names the built-in command to run, e.g. "shell.exec".
	Command string
	// Params configure the built-in command.
	Params Mapping
	// Type overrides how a failure of this command is classified.
	Type CommandType
}

// FunctionCall returns a command that calls the named project function.
func FunctionCall(name string) Command {
	return Command{Func: name}
}

// FunctionCallWithVars returns a command that calls the named project
// function with the given vars.
func FunctionCallWithVars(name string, vars Mapping) Command {
	return Command{Func: name, Vars: vars}
}

// BuiltIn returns a command that runs the named built-in command with the
// given params.
func BuiltIn(name string, params Mapping) Command {
	return Command{Command: name, Params: params}
}
