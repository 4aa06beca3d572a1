package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"jobmatch/internal/delivery/http/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cleanEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"POLE_EMPLOI_CLIENT_ID", "POLE_EMPLOI_CLIENT_SECRET",
		"ADZUNA_APP_ID", "ADZUNA_APP_KEY",
		"REDIS_ADDR", "PROFILE_FILE", "USE_MOCK_DATA",
	} {
		t.Setenv(k, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSkillsCommand(t *testing.T) {
	cleanEnv(t)

	out, err := execute(t, "skills", "React and TypeScript with k8s")
	require.NoError(t, err)
	assert.Equal(t, "TypeScript\nReact\nKubernetes\n", out)
}

func TestSkillsCommand_Score(t *testing.T) {
	cleanEnv(t)

	out, err := execute(t, "skills", "--score", "React and TypeScript with k8s")
	require.NoError(t, err)
	assert.Contains(t, out, "match score: 85 (TypeScript, React, Kubernetes)")
}

func TestSkillsCommand_NothingDetected(t *testing.T) {
	cleanEnv(t)

	out, err := execute(t, "skills", "bonne humeur")
	require.NoError(t, err)
	assert.Equal(t, "no known skills detected\n", out)
}

func TestSkillsCommand_RequiresText(t *testing.T) {
	_, err := execute(t, "skills")
	assert.Error(t, err)
}

func TestMatchCommand_JSON(t *testing.T) {
	cleanEnv(t)

	out, err := execute(t, "match", "--mock", "--output", "json", "--min-score", "1", "--limit", "2")
	require.NoError(t, err)

	var res dto.MatchesResponse
	require.NoError(t, json.Unmarshal([]byte(out), &res), out)
	assert.LessOrEqual(t, len(res.Jobs), 2)
	assert.Positive(t, res.TotalJobs)
	for _, j := range res.Jobs {
		assert.GreaterOrEqual(t, j.MatchScore, 1)
	}
}

func TestMatchCommand_Table(t *testing.T) {
	cleanEnv(t)

	out, err := execute(t, "match", "--mock")
	require.NoError(t, err)
	assert.Contains(t, out, "matching jobs for")
	assert.Contains(t, out, "Score")
}

func TestMatchCommand_InvalidFlags(t *testing.T) {
	cleanEnv(t)

	_, err := execute(t, "match", "--mock", "--sort-by", "salary")
	assert.ErrorContains(t, err, "sortBy")

	_, err = execute(t, "match", "--mock", "--output", "xml")
	assert.ErrorContains(t, err, "output format")

	_, err = execute(t, "match", "--mock", "--limit", "0")
	assert.ErrorContains(t, err, "pageSize")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "jobmatch version: unknown\n", out)
}

func TestCacheClearCommand_Memory(t *testing.T) {
	cleanEnv(t)

	out, err := execute(t, "cache", "clear", "--mock")
	require.NoError(t, err)
	assert.Equal(t, "cleared cached searches (memory)\n", out)
}

func TestSkillsCommand_TitleRelevance(t *testing.T) {
	cleanEnv(t)

	out, err := execute(t, "skills", "--title", "Comptable Senior", "Python")
	require.NoError(t, err)
	assert.Equal(t, "Python\ntitle relevant: false\n", out)

	out, err = execute(t, "skills", "--title", "Développeur Python", "Python")
	require.NoError(t, err)
	assert.Equal(t, "Python\ntitle relevant: true\n", out)
}
