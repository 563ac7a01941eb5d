package model_test

import (
	"testing"

	"github.com/dbradf/shrub-go/model"
	"github.com/stretchr/testify/assert"
)

func TestTaskReference(t *testing.T) {
	task := model.Task{Name: "compile"}

	assert.Equal(t, model.TaskRef{Name: "compile"}, task.Reference())
	assert.Equal(t,
		model.TaskRef{Name: "compile", Distros: []string{"ubuntu2204-large"}},
		task.Reference("ubuntu2204-large"))
}

func TestFunctionCallConstructors(t *testing.T) {
	call := model.FunctionCall("do setup")
	assert.Equal(t, "do setup", call.Func)
	assert.Empty(t, call.Command)
	assert.Nil(t, call.Vars)

	vars := model.Mapping{{Key: "suite", Value: model.StringValue("unit")}}
	withVars := model.FunctionCallWithVars("run tests", vars)
	assert.Equal(t, vars, withVars.Vars)
}

func TestBuiltInConstructors(t *testing.T) {
	cmd := model.ShellExec("make")
	assert.Equal(t, "shell.exec", cmd.Command)
	script, ok := cmd.Params.Get("script")
	assert.True(t, ok)
	assert.Equal(t, "make", script.Str)

	// Zero timeouts produce no params so the command round-trips cleanly.
	assert.Nil(t, model.TimeoutUpdate(0, 0).Params)

	assert.Nil(t, model.ManifestLoad().Params)
}

func TestTimeoutValue(t *testing.T) {
	assert.True(t, model.TimeoutValue{}.IsZero())
	assert.False(t, model.TimeoutSecs(30).IsZero())
	assert.False(t, model.TimeoutExpansion("${timeout}").IsZero())
}

func TestDistroNames(t *testing.T) {
	names := model.DistroNames(
		model.Distro{Name: "ubuntu2204-small", Arch: "amd64", Platform: "linux"},
		model.Distro{Name: "rhel90-large"},
	)
	assert.Equal(t, []string{"ubuntu2204-small", "rhel90-large"}, names)
}
