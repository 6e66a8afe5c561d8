package esbconfig

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckConfiguration_NilAndEmpty(t *testing.T) {
	assert.NoError(t, CheckConfiguration(nil))
	assert.NoError(t, CheckConfiguration(map[string]string{}))
}

func TestCheckConfiguration_TemplateIsValid(t *testing.T) {
	assert.NoError(t, CheckConfiguration(Template()))
}

func TestCheckConfiguration_UnknownKeysSorted(t *testing.T) {
	err := CheckConfiguration(map[string]string{
		"ZETA":    "1",
		"HOST":    "example.org",
		"ALPHA":   "2",
		"host":    "lowercase is unknown",
		"PROXY_X": "",
	})
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"ALPHA", "PROXY_X", "ZETA", "host"}, verr.InvalidKeys)
	assert.Empty(t, verr.InvalidValues)
	assert.Equal(t, "invalid keys: ALPHA, PROXY_X, ZETA, host", err.Error())
}

func TestChecker_CustomValidators(t *testing.T) {
	portErr := errors.New("not a port")
	checker := NewChecker(map[string]Validator{
		KeyTiampPort: func(v string) error {
			if v == "http" {
				return portErr
			}
			return nil
		},
		KeyProtocol: func(v string) error {
			if v != "http" && v != "https" {
				return errors.New("unsupported protocol")
			}
			return nil
		},
		"NOT_A_KEY": func(string) error { return errors.New("never called") },
	})

	t.Run("valid values", func(t *testing.T) {
		assert.NoError(t, checker.Check(map[string]string{KeyTiampPort: "8091", KeyProtocol: "https"}))
	})

	t.Run("invalid values only", func(t *testing.T) {
		err := checker.Check(map[string]string{KeyTiampPort: "http", KeyProtocol: "ftp", KeyHost: "anything"})
		require.Error(t, err)
		assert.Equal(t,
			`invalid value for key "PROTOCOL": unsupported protocol; invalid value for key "TIAMP_PORT": not a port`,
			err.Error())
	})

	t.Run("unknown keys and invalid values", func(t *testing.T) {
		err := checker.Check(map[string]string{"NOT_A_KEY": "x", KeyProtocol: "ftp"})
		require.Error(t, err)
		assert.Equal(t,
			`invalid keys: NOT_A_KEY; invalid value for key "PROTOCOL": unsupported protocol`,
			err.Error())
	})
}

func TestConfig_MergeAndRedacted(t *testing.T) {
	base := Template()
	merged := base.Merge(map[string]string{KeyHost: "tiamp.local", KeyClientSecret: "s3cr3t"})

	assert.Equal(t, "esb-test.utb.coop", base.Get(KeyHost), "merge must not mutate the receiver")
	assert.Equal(t, "tiamp.local", merged.Get(KeyHost))
	assert.Equal(t, "s3cr3t", merged.Get(KeyClientSecret))

	redacted := merged.Redacted()
	assert.Equal(t, redactedValue, redacted.Get(KeyClientSecret))
	assert.Equal(t, "s3cr3t", merged.Get(KeyClientSecret))

	assert.Equal(t, "", Template().Redacted().Get(KeyClientSecret), "an empty secret stays empty")
}

func TestKnownKeys(t *testing.T) {
	keys := KnownKeys()
	assert.Len(t, keys, 10)
	assert.IsIncreasing(t, keys)
	for _, k := range keys {
		assert.True(t, IsKnownKey(k))
	}
	assert.False(t, IsKnownKey("PORT"))
}
