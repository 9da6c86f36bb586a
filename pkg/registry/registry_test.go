// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_ListsEveryJobType(t *testing.T) {
	reg := Default()

	assert.Equal(t, []string{
		"calculate-fit-score",
		"normalize-traits",
		"prepare-narrative-context",
		"rank-business-paths",
		"search-business-models",
		"send-results-notification",
		"submit-quiz-response",
	}, reg.TaskTypes())

	activity, ok := reg.Find("rank-business-paths")
	require.True(t, ok)
	assert.Equal(t, "10s", activity.Timeout)
	assert.NotEmpty(t, activity.InputSchema)

	_, ok = reg.Find("auth-signin-google")
	assert.False(t, ok)
}

func TestLoadRegistry_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"2.0.0","activities":[{"id":"x","taskType":"x"}]}`), 0o644))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", reg.Version)
	assert.Equal(t, []string{"x"}, reg.TaskTypes())

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))
	_, err = LoadRegistry(path)
	assert.ErrorContains(t, err, "decode activity registry")
}

func TestInputValidator(t *testing.T) {
	v := NewInputValidator(Default())

	tests := []struct {
		name      string
		taskType  string
		variables string
		wantValid bool
	}{
		{"inline quiz", "rank-business-paths", `{"quizResponse": {"riskComfortLevel": 4}, "topN": 3}`, true},
		{"quiz by id", "normalize-traits", `{"quizResponseId": "b7f5c3d2-0d55-4f0e-9a39-1f7a4cbe8f10"}`, true},
		{"unrelated process variables pass", "rank-business-paths", `{"quizResponseId": "x", "applicationId": 7}`, true},
		{"neither quiz nor id", "rank-business-paths", `{"topN": 3}`, false},
		{"negative topN", "rank-business-paths", `{"quizResponseId": "x", "topN": -1}`, false},
		{"missing business model", "calculate-fit-score", `{"quizResponseId": "x"}`, false},
		{"empty business model", "calculate-fit-score", `{"quizResponseId": "x", "businessModelId": ""}`, false},
		{"ranked path without score", "send-results-notification", `{"rankedPaths": [{"id": "a", "name": "A"}]}`, false},
		{"not json", "submit-quiz-response", `{quiz`, false},
		{"unknown task type accepts anything", "does-not-exist", `{}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems, err := v.Validate(tt.taskType, tt.variables)
			require.NoError(t, err)
			if tt.wantValid {
				assert.Empty(t, problems)
			} else {
				assert.NotEmpty(t, problems)
			}
		})
	}
}

func TestInputValidator_NilSafe(t *testing.T) {
	var v *InputValidator
	problems, err := v.Validate("rank-business-paths", `{}`)
	assert.NoError(t, err)
	assert.Nil(t, problems)
}

func TestActivity_TimeoutDuration(t *testing.T) {
	d, err := Activity{ID: "a", Timeout: "15s"}.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, d)

	for _, bad := range []string{"", "soon", "0s", "-1s"} {
		_, err := Activity{ID: "a", Timeout: bad}.TimeoutDuration()
		assert.Error(t, err, bad)
	}

	for _, a := range Default().Activities {
		_, err := a.TimeoutDuration()
		assert.NoError(t, err, a.ID)
	}
}
