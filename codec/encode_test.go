package codec_test

import (
	"strings"
	"testing"

	"github.com/dbradf/shrub-go/codec"
	"github.com/dbradf/shrub-go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize_EmptyProject(t *testing.T) {
	text, err := codec.Serialize(&model.Project{})
	require.NoError(t, err)
	assert.Equal(t, "buildvariants: []\ntasks: []\n", text)
}

func TestSerialize_Deterministic(t *testing.T) {
	p := &model.Project{
		Tasks: []model.Task{
			{Name: "compile", Commands: []model.Command{model.ShellExec("make")}},
		},
		BuildVariants: []model.BuildVariant{
			{Name: "ubuntu", Tasks: []model.TaskRef{{Name: "compile"}}},
		},
	}

	first, err := codec.Serialize(p)
	require.NoError(t, err)
	second, err := codec.Serialize(p)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSerialize_OmitsUnsetFields(t *testing.T) {
	p := &model.Project{
		Tasks: []model.Task{{Name: "compile"}},
	}

	text, err := codec.Serialize(p)
	require.NoError(t, err)

	assert.NotContains(t, text, "depends_on")
	assert.NotContains(t, text, "priority")
	assert.NotContains(t, text, "stepback")
	assert.NotContains(t, text, "pre:")
	assert.NotContains(t, text, "functions")
}

func TestSerialize_EmitsEmptyHooks(t *testing.T) {
	p := &model.Project{Pre: []model.Command{}}

	text, err := codec.Serialize(p)
	require.NoError(t, err)

	assert.Contains(t, text, "pre: []")
	assert.NotContains(t, text, "post")
	assert.NotContains(t, text, "timeout")
}

func TestSerialize_CommandNeedsExactlyOneDiscriminator(t *testing.T) {
	t.Run("neither", func(t *testing.T) {
		p := &model.Project{
			Tasks: []model.Task{{Name: "compile", Commands: []model.Command{{}}}},
		}
		_, err := codec.Serialize(p)
		require.ErrorIs(t, err, codec.ErrSerializationFailure)
	})

	t.Run("both", func(t *testing.T) {
		p := &model.Project{
			Tasks: []model.Task{{Name: "compile", Commands: []model.Command{
				{Func: "do setup", Command: "shell.exec"},
			}}},
		}
		_, err := codec.Serialize(p)
		require.ErrorIs(t, err, codec.ErrSerializationFailure)
	})
}

func TestSerialize_PreservesInsertionOrder(t *testing.T) {
	p := &model.Project{
		BuildVariants: []model.BuildVariant{{
			Name:  "ubuntu",
			Tasks: []model.TaskRef{{Name: "compile"}},
			Expansions: model.Expansions{
				{Key: "zebra", Value: "z"},
				{Key: "apple", Value: "a"},
			},
		}},
	}

	text, err := codec.Serialize(p)
	require.NoError(t, err)

	zebra := strings.Index(text, "zebra")
	apple := strings.Index(text, "apple")
	require.GreaterOrEqual(t, zebra, 0)
	require.GreaterOrEqual(t, apple, 0)
	assert.Less(t, zebra, apple, "declaration order must survive serialization:\n%s", text)
}

func TestSerialize_FunctionsAsMapping(t *testing.T) {
	p := &model.Project{
		Functions: []model.Function{
			{Name: "do setup", Commands: []model.Command{model.ShellExec("./setup.sh")}},
			{Name: "run tests", Commands: []model.Command{model.ShellExec("make test")}},
		},
	}

	text, err := codec.Serialize(p)
	require.NoError(t, err)

	assert.Contains(t, text, "functions:")
	assert.Less(t, strings.Index(text, "do setup"), strings.Index(text, "run tests"))

	again, err := codec.Parse(text)
	require.NoError(t, err)
	require.Equal(t, p, again)
}

func TestSerialize_FloatStaysFloat(t *testing.T) {
	p := &model.Project{
		Tasks: []model.Task{{
			Name: "bench",
			Commands: []model.Command{
				model.FunctionCallWithVars("run bench", model.Mapping{
					{Key: "ratio", Value: model.FloatValue(3)},
				}),
			},
		}},
	}

	text, err := codec.Serialize(p)
	require.NoError(t, err)
	assert.Contains(t, text, "ratio: 3.0")

	again, err := codec.Parse(text)
	require.NoError(t, err)
	require.Equal(t, p, again)
}
