package codec_test

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/dbradf/shrub-go/codec"
	"github.com/dbradf/shrub-go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeJSON_ProducesValidJSON(t *testing.T) {
	text, err := codec.SerializeJSON(fullProject())
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(text)), "output is not valid JSON:\n%s", text)
}

func TestSerializeJSON_Deterministic(t *testing.T) {
	p := fullProject()

	first, err := codec.SerializeJSON(p)
	require.NoError(t, err)
	second, err := codec.SerializeJSON(p)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSerializeJSON_PreservesKeyOrder(t *testing.T) {
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

	text, err := codec.SerializeJSON(p)
	require.NoError(t, err)

	zebra := strings.Index(text, `"zebra"`)
	apple := strings.Index(text, `"apple"`)
	require.GreaterOrEqual(t, zebra, 0)
	require.GreaterOrEqual(t, apple, 0)
	assert.Less(t, zebra, apple)
}

func TestSerializeJSON_EscapesStrings(t *testing.T) {
	p := &model.Project{
		Tasks: []model.Task{{
			Name:     "compile",
			Commands: []model.Command{model.ShellExec("echo \"hi\"\nmake")},
		}},
	}

	text, err := codec.SerializeJSON(p)
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(text)))

	again, err := codec.ParseJSON(text)
	require.NoError(t, err)
	require.Equal(t, p, again)
}

func TestSerializeJSON_RejectsNonFiniteFloats(t *testing.T) {
	for name, f := range map[string]float64{
		"positive infinity": math.Inf(1),
		"negative infinity": math.Inf(-1),
		"not a number":      math.NaN(),
	} {
		t.Run(name, func(t *testing.T) {
			p := &model.Project{
				Tasks: []model.Task{{
					Name: "bench",
					Commands: []model.Command{
						model.FunctionCallWithVars("run bench", model.Mapping{
							{Key: "ratio", Value: model.FloatValue(f)},
						}),
					},
				}},
			}

			_, err := codec.SerializeJSON(p)
			require.ErrorIs(t, err, codec.ErrSerializationFailure)
		})
	}
}

func TestSerializeJSON_AcceptsFiniteFloats(t *testing.T) {
	p := &model.Project{
		Tasks: []model.Task{{
			Name: "bench",
			Commands: []model.Command{
				model.FunctionCallWithVars("run bench", model.Mapping{
					{Key: "nanos", Value: model.FloatValue(1.5)},
				}),
			},
		}},
	}

	text, err := codec.SerializeJSON(p)
	require.NoError(t, err)
	assert.Contains(t, text, `"nanos": 1.5`)
}
