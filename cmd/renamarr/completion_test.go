package main

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/renamarr/internal/jobs"
	"github.com/vmunix/renamarr/internal/presets"
)

func TestCompleteJobIDs(t *testing.T) {
	srv := newMockServer(t).ExpectGET().ExpectPath("/api/v1/jobs").RespondJSON([]jobs.Summary{
		{ID: "abc-1", Status: jobs.StatusRunning},
		{ID: "abd-2", Status: jobs.StatusCompleted},
		{ID: "xyz-3", Status: jobs.StatusFailed},
	}).Build()
	defer srv.Close()
	defer withServerURL(srv.URL)()

	got, dir := completeJobIDs(nil, nil, "ab")
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, dir)
	assert.Equal(t, []cobra.Completion{"abc-1\trunning", "abd-2\tcompleted"}, got)

	got, _ = completeJobIDs(nil, []string{"abc-1"}, "")
	assert.Empty(t, got, "only one id is completed")
}

func TestCompleteJobIDs_ServerDown(t *testing.T) {
	srv := newMockServer(t).RespondStatus(http.StatusInternalServerError).Build()
	defer srv.Close()
	defer withServerURL(srv.URL)()

	got, dir := completeJobIDs(nil, nil, "")
	assert.Nil(t, got)
	assert.Equal(t, cobra.ShellCompDirectiveError, dir)
}

func TestCompletePresets(t *testing.T) {
	srv := newMockServer(t).ExpectGET().ExpectPath("/api/v1/presets").RespondJSON(map[string]any{
		"presets": []presets.Preset{
			{Name: "Plex", Scheme: "{plex}", BuiltIn: true},
			{Name: "Mine", Scheme: "{n} ({y})"},
		},
	}).Build()
	defer srv.Close()
	defer withServerURL(srv.URL)()

	got, _ := completeUserPresets(nil, nil, "")
	assert.Equal(t, []cobra.Completion{"Mine\t{n} ({y})"}, got)

	got, _ = completeSchemes(nil, nil, "preset:P")
	assert.Equal(t, []cobra.Completion{"preset:Plex\t{plex}"}, got)
}

func TestCompletionCmd(t *testing.T) {
	var buf bytes.Buffer
	completionCmd.SetOut(&buf)
	defer completionCmd.SetOut(nil)

	require.NoError(t, completionCmd.RunE(completionCmd, []string{"bash"}))
	assert.Contains(t, buf.String(), "renamarr")
}
