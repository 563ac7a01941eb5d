package codec_test

import (
	"testing"

	"github.com/dbradf/shrub-go/codec"
	"github.com/dbradf/shrub-go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint_Stable(t *testing.T) {
	p := fullProject()

	first, err := codec.Fingerprint(p)
	require.NoError(t, err)
	second, err := codec.Fingerprint(p)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFingerprint_ChangesWithContent(t *testing.T) {
	base := &model.Project{Tasks: []model.Task{{Name: "compile"}}}
	changed := &model.Project{Tasks: []model.Task{{Name: "compile", Priority: 1}}}

	baseSum, err := codec.Fingerprint(base)
	require.NoError(t, err)
	changedSum, err := codec.Fingerprint(changed)
	require.NoError(t, err)
	assert.NotEqual(t, baseSum, changedSum)
}

func TestFingerprint_RejectsUnserializableProject(t *testing.T) {
	p := &model.Project{
		Tasks: []model.Task{{Name: "compile", Commands: []model.Command{{}}}},
	}
	_, err := codec.Fingerprint(p)
	require.ErrorIs(t, err, codec.ErrSerializationFailure)
}
