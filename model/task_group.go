package model

// TimeoutValue is a timeout that is either a literal number of seconds or an
// "${...}" expansion resolved by Evergreen at runtime. The zero value means
// unset.
type TimeoutValue struct {
	Secs      int64
	Expansion string
}

// TimeoutSecs returns a literal timeout of n seconds.
func TimeoutSecs(n int64) TimeoutValue {
	return TimeoutValue{Secs: n}
}

// TimeoutExpansion returns a timeout resolved from the given expansion.
func TimeoutExpansion(expansion string) TimeoutValue {
	return TimeoutValue{Expansion: expansion}
}

// IsZero reports whether the timeout is unset.
func (t TimeoutValue) IsZero() bool {
	return t.Secs == 0 && t.Expansion == ""
}

// TaskGroup is a group of related tasks that share hosts and setup work.
type TaskGroup struct {
	// Name uniquely identifies the task group within a project.
	Name string
	// Tasks lists the member tasks, in order.
	Tasks []string
	// MaxHosts spreads the group across up to this many hosts.
	MaxHosts int64
	// ShareProcesses skips cleanup between task runs.
	ShareProcesses *bool
	// SetupGroupCanFailTask makes setup failures fail the task.
	SetupGroupCanFailTask *bool
	// SetupGroupTimeoutSecs bounds the group setup.
	SetupGroupTimeoutSecs TimeoutValue

	// SetupGroup runs once before the group.
	SetupGroup []Command
	// TeardownGroup runs once after the group.
	TeardownGroup []Command
	// SetupTask runs before each member task.
	SetupTask []Command
	// TeardownTask runs after each member task.
	TeardownTask []Command
	// Timeout runs when a member task hits a timeout.
	Timeout []Command
}
