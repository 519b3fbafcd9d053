package tracker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopelock/leadflow/internal/model"
)

func sampleRecord() Record {
	return Record{
		Platform: "Upwork",
		Title:    "AI chatbot",
		Budget:   "$4,000",
		Decision: model.DecisionGo,
		Reason:   "Strong fit",
		Link:     "https://x.test/~aa",
		Urgency:  7,
		Pain:     6,
	}
}

func TestCommandTracker_BuildsArgs(t *testing.T) {
	var gotCommand string
	var gotArgs []string

	tr := NewCommandTracker("python3", "scripts/track-lead.py", 30)
	tr.runner = func(_ context.Context, command string, args []string) (string, string, error) {
		gotCommand = command
		gotArgs = args
		return "Lead tracked\n", "", nil
	}

	out, err := tr.Track(context.Background(), sampleRecord())

	require.NoError(t, err)
	assert.Equal(t, "Lead tracked", out)
	assert.Equal(t, "python3", gotCommand)
	assert.Equal(t, []string{
		"scripts/track-lead.py",
		"--platform", "Upwork",
		"--title", "AI chatbot",
		"--budget", "$4,000",
		"--decision", "GO",
		"--reason", "Strong fit",
		"--link", "https://x.test/~aa",
		"--urgency", "7",
		"--pain", "6",
	}, gotArgs)
}

func TestCommandTracker_OmitsEmptyOptionalFlags(t *testing.T) {
	var gotArgs []string

	tr := NewCommandTracker("python3", "scripts/track-lead.py", 30)
	tr.runner = func(_ context.Context, _ string, args []string) (string, string, error) {
		gotArgs = args
		return "", "", nil
	}

	rec := sampleRecord()
	rec.Link = ""
	rec.Urgency = 0
	rec.Pain = 0
	_, err := tr.Track(context.Background(), rec)

	require.NoError(t, err)
	assert.NotContains(t, gotArgs, "--link")
	assert.NotContains(t, gotArgs, "--urgency")
	assert.NotContains(t, gotArgs, "--pain")
}

func TestCommandTracker_SurfacesStderrOnFailure(t *testing.T) {
	tr := NewCommandTracker("python3", "scripts/track-lead.py", 30)
	tr.runner = func(_ context.Context, _ string, _ []string) (string, string, error) {
		return "", "sheet unavailable\n", errors.New("exit status 1")
	}

	_, err := tr.Track(context.Background(), sampleRecord())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "tracker: command failed")
	assert.Contains(t, err.Error(), "sheet unavailable")
}
