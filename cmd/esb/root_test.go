package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_UsageMessage(t *testing.T) {
	out, err := runCLI(t, "project")

	require.NoError(t, err)
	assert.Equal(t, "Erreur : veuillez fournir un code d'imputation\n", out)
}

func TestCLI_LookupAgainstService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/system/tiamp/employee/7", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"not found"}`))
	}))
	defer srv.Close()

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	out, err := runCLI(t, "--set", "HOST="+u.Hostname(), "--set", "TIAMP_PORT="+u.Port(), "employee", "7")

	require.NoError(t, err)
	assert.Equal(t, "Erreur : not found\n", out)
}

func TestCLI_RejectsUnknownKey(t *testing.T) {
	_, err := runCLI(t, "--set", "NOPE=1", "p", "1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid keys: NOPE")
}

func TestCLI_Config(t *testing.T) {
	out, err := runCLI(t, "config", "--set", "CLIENT_SECRET=s3cret", "--set", "HOST=h")

	require.NoError(t, err)
	assert.Contains(t, out, "HOST = h\n")
	assert.Contains(t, out, "CLIENT_SECRET = ********\n")
	assert.NotContains(t, out, "s3cret")
}

func TestCLI_SetKeepsCommasAndEquals(t *testing.T) {
	tmpl := "{PROTOCOL}://{HOST}/x,y/{employee_id}?a=b,c&client_id={CLIENT_ID}"

	out, err := runCLI(t, "config", "--set", "EMPLOYEE_URL_TEMPLATE="+tmpl, "--set", "HTTP_PROXY=http://p:1,http://q:2")

	require.NoError(t, err)
	assert.Contains(t, out, "EMPLOYEE_URL_TEMPLATE = "+tmpl+"\n")
	assert.Contains(t, out, "HTTP_PROXY = http://p:1,http://q:2\n")
}

func TestCLI_SetRequiresAssignment(t *testing.T) {
	_, err := runCLI(t, "config", "--set", "HOST")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "want KEY=value")
}
