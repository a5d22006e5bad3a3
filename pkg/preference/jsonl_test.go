package preference

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prefopt-project/prefopt/pkg/afero"
)

func writeDataset(t *testing.T, fs afero.Fs, path string, rows []ReflectionRow) {
	t.Helper()

	var lines []string
	for _, row := range rows {
		data, err := json.Marshal(row)
		require.NoError(t, err)
		lines = append(lines, string(data))
	}

	require.NoError(t, afero.WriteFile(fs, path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
}

func TestReadJSONL(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeDataset(t, fs, "data/reflections.jsonl", []ReflectionRow{
		{
			Question:            "q1",
			FirstTrialReasoning: "r1",
			ReflectionChosen:    "good plan",
			ReflectionRejected:  "bad plan",
		},
		{
			Question:            "q2",
			FirstTrialReasoning: "r2",
			ReflectionChosen:    "another good plan",
			ReflectionRejected:  "another bad plan",
		},
	})

	comparisons, err := ReadJSONL(fs, "data/reflections.jsonl")
	require.NoError(t, err)
	require.Len(t, comparisons, 2)
	assert.Contains(t, comparisons[0].Prompt, "Question: q1")
	assert.Equal(t, "good plan", comparisons[0].Chosen[1].Content)
}

func TestReadJSONLSkipsBlankLines(t *testing.T) {
	fs := afero.NewMemMapFs()
	row, err := json.Marshal(ReflectionRow{
		Question:            "q",
		FirstTrialReasoning: "r",
		ReflectionChosen:    "c",
		ReflectionRejected:  "j",
	})
	require.NoError(t, err)

	content := "\n" + string(row) + "\n\n" + string(row) + "\n"
	require.NoError(t, afero.WriteFile(fs, "data.jsonl", []byte(content), 0o644))

	comparisons, err := ReadJSONL(fs, "data.jsonl")
	require.NoError(t, err)
	assert.Len(t, comparisons, 2)
}

func TestReadJSONLReportsLineNumber(t *testing.T) {
	fs := afero.NewMemMapFs()
	row, err := json.Marshal(ReflectionRow{
		Question:            "q",
		FirstTrialReasoning: "r",
		ReflectionChosen:    "c",
		ReflectionRejected:  "j",
	})
	require.NoError(t, err)

	content := string(row) + "\n{not json}\n"
	require.NoError(t, afero.WriteFile(fs, "data.jsonl", []byte(content), 0o644))

	_, err = ReadJSONL(fs, "data.jsonl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data.jsonl:2")
}

func TestReadJSONLRejectsEmptyDataset(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "data.jsonl", []byte("\n\n"), 0o644))

	_, err := ReadJSONL(fs, "data.jsonl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no records")
}

func TestReadJSONLMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := ReadJSONL(fs, "nope.jsonl")
	require.Error(t, err)
}

func TestReadJSONLRejectsInvalidRow(t *testing.T) {
	fs := afero.NewMemMapFs()
	// chosen reflection missing -> empty assistant turn
	require.NoError(t, afero.WriteFile(fs, "data.jsonl",
		[]byte(`{"question":"q","first_trial_reasoning":"r","reflection_rejected":"j"}`+"\n"), 0o644))

	_, err := ReadJSONL(fs, "data.jsonl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data.jsonl:1")
}
