package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	got, err := expand("{a}-{b}-{a}", map[string]string{"a": "1", "b": ""})
	require.NoError(t, err)
	assert.Equal(t, "1--1", got)

	got, err = expand("no placeholders", nil)
	require.NoError(t, err)
	assert.Equal(t, "no placeholders", got)

	_, err = expand("{a}/{missing}", map[string]string{"a": "1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownPlaceholder)
	assert.Contains(t, err.Error(), "{missing}")
}

func TestExpand_ValuesAreNotReexpanded(t *testing.T) {
	got, err := expand("{a}", map[string]string{"a": "{b}"})
	require.NoError(t, err)
	assert.Equal(t, "{b}", got)
}

func TestRender_MissingField(t *testing.T) {
	_, err := render(remoteErrorTemplate, Record{"error": "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), `"message"`)
}
