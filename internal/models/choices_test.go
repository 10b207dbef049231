package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseProjectType(t *testing.T) {
	tests := []struct {
		input string
		want  ProjectType
	}{
		{"back-end", ProjectTypeBackEnd},
		{"BACK-END", ProjectTypeBackEnd},
		{"ios", ProjectTypeIOS},
		{"IOS", ProjectTypeIOS},
		{"android", ProjectTypeAndroid},
	}

	for _, tt := range tests {
		got, err := ParseProjectType(tt.input)
		require.NoError(t, err, tt.input)
		require.Equal(t, tt.want, got)
	}

	_, err := ParseProjectType("embedded")
	require.Error(t, err)
	require.Contains(t, err.Error(), "type must be one of the following")
}

func TestParseIssueEnums(t *testing.T) {
	tag, err := ParseIssueTag("BUG")
	require.NoError(t, err)
	require.Equal(t, IssueTagBug, tag)

	priority, err := ParseIssuePriority("medium")
	require.NoError(t, err)
	require.Equal(t, IssuePriorityMedium, priority)

	status, err := ParseIssueStatus("inprogress")
	require.NoError(t, err)
	require.Equal(t, IssueStatusInProgress, status)

	_, err = ParseIssueTag("Feature")
	require.Error(t, err)
	_, err = ParseIssuePriority("Urgent")
	require.Error(t, err)
	_, err = ParseIssueStatus("Blocked")
	require.Error(t, err)
}
