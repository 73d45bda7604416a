package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/match-signal-service/internal/models"
)

const testSnapshotJSON = `{
  "leagues": {
    "premier_league": {
      "10": [
        {"match_id": "pl-1", "championship": "premier_league", "status": "SCHEDULED",
         "probabilities": {"home_win": 0.82, "draw": 0.09, "away_win": 0.09}, "confidence": 0.88},
        {"match_id": "pl-2", "championship": "premier_league", "status": "SCHEDULED",
         "probabilities": {"home_win": 0.75, "draw": 0.125, "away_win": 0.125}, "confidence": 0.80}
      ]
    },
    "serie_a": {
      "7": [
        {"match_id": "m1", "championship": "serie_a", "status": "SCHEDULED",
         "probabilities": {"home_win": 0.72, "draw": 0.15, "away_win": 0.13}, "confidence": 0.78}
      ]
    }
  }
}`

// resetFlags restores flag variables, which persist between executions in one process
func resetFlags() {
	ctlConfigPath, ctlTenantPath, ctlVerbose = "", "", false
	classifyFile, classifyProfile, classifyBankroll, classifyNow, classifyFormat = "", "", -1, "", "json"
	rankFile, rankStrategy, rankFormat = "", "play", "json"
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestClassifyCommand tests JSON classification output in league display order
func TestClassifyCommand(t *testing.T) {
	path := writeFile(t, "snapshot.json", testSnapshotJSON)

	out, err := execute(t, "", "classify", "--file", path, "--bankroll", "1000", "--now", "2026-10-17T14:00:00Z")
	require.NoError(t, err)

	var results []models.Classification
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)

	assert.Equal(t, "m1", results[0].MatchID)
	assert.Equal(t, "serie_a", results[0].Championship)
	assert.Equal(t, models.GradeB, results[0].Grade)
	assert.Equal(t, models.ProfileBalanced, results[0].Profile)
	assert.Equal(t, int64(45), results[0].Stake.Units)
	assert.Equal(t, "premier_league", results[1].Championship)
	assert.Equal(t, "premier_league", results[2].Championship)
}

// TestClassifyCommand_Stdin tests reading the snapshot from stdin with a profile override
func TestClassifyCommand_Stdin(t *testing.T) {
	out, err := execute(t, testSnapshotJSON, "classify", "--file", "-", "--profile", "aggressive")
	require.NoError(t, err)

	var results []models.Classification
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)
	for _, c := range results {
		assert.Equal(t, models.ProfileAggressive, c.Profile)
	}
}

// TestClassifyCommand_Tenant tests that a tenant file raises the confidence floor
func TestClassifyCommand_Tenant(t *testing.T) {
	path := writeFile(t, "snapshot.json", testSnapshotJSON)
	tenant := writeFile(t, "tenant.yaml", "filters:\n  min_confidence: 0.85\n")

	out, err := execute(t, "", "classify", "--file", path, "--tenant", tenant)
	require.NoError(t, err)

	var results []models.Classification
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	allowed := map[string]bool{}
	for _, c := range results {
		allowed[c.MatchID] = c.AllowedByProfile
	}
	assert.False(t, allowed["m1"])
	assert.False(t, allowed["pl-2"])
}

// TestClassifyCommand_Table tests the table output
func TestClassifyCommand_Table(t *testing.T) {
	path := writeFile(t, "snapshot.json", testSnapshotJSON)

	out, err := execute(t, "", "classify", "--file", path, "--format", "table")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "LEAGUE"))
	assert.Contains(t, lines[1], "m1")
}

// TestClassifyCommand_Errors tests rejected inputs
func TestClassifyCommand_Errors(t *testing.T) {
	path := writeFile(t, "snapshot.json", testSnapshotJSON)
	empty := writeFile(t, "empty.json", `{"leagues": {}}`)
	badTenant := writeFile(t, "tenant.yaml", "filters:\n  min_confidence: 2\n")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing file", []string{"classify", "--file", filepath.Join(t.TempDir(), "nope.json")}, "failed to open snapshot"},
		{"no leagues", []string{"classify", "--file", empty}, "no leagues"},
		{"unknown profile", []string{"classify", "--file", path, "--profile", "reckless"}, "unknown profile"},
		{"bad time", []string{"classify", "--file", path, "--now", "yesterday"}, "invalid --now"},
		{"bad format", []string{"classify", "--file", path, "--format", "xml"}, "unknown format"},
		{"bad tenant", []string{"classify", "--file", path, "--tenant", badTenant}, "outside 0-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// TestRankCommand tests the play shortlist output
func TestRankCommand(t *testing.T) {
	path := writeFile(t, "snapshot.json", testSnapshotJSON)

	out, err := execute(t, "", "rank", "--file", path, "--strategy", "play")
	require.NoError(t, err)

	var rankings []models.LeagueRanking
	require.NoError(t, json.Unmarshal([]byte(out), &rankings))
	require.Len(t, rankings, 2)

	var premier *models.LeagueRanking
	for i := range rankings {
		assert.Equal(t, models.StrategyPlay, rankings[i].Strategy)
		if rankings[i].League == "premier_league" {
			premier = &rankings[i]
		}
	}
	require.NotNil(t, premier)
	require.NotEmpty(t, premier.Rows)
	assert.Equal(t, "pl-1", premier.Rows[0].Match.MatchID)
	assert.Equal(t, models.PickPlay, premier.Rows[0].Kind)
}

// TestRankCommand_Errors tests rejected strategies and formats
func TestRankCommand_Errors(t *testing.T) {
	path := writeFile(t, "snapshot.json", testSnapshotJSON)

	_, err := execute(t, "", "rank", "--file", path, "--strategy", "martingale")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown strategy")

	_, err = execute(t, "", "rank", "--file", path, "--format", "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}
