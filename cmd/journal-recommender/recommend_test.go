// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/journal-recommender/internal/history"
	"github.com/pdiddy/journal-recommender/pkg/types"
)

func fieldsCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	for _, f := range fieldFlags {
		c.Flags().String(f.flag, "", f.usage)
	}
	c.Flags().String("file", "", "")
	require.NoError(t, c.ParseFlags(args))
	return c
}

func TestRequestFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "req.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
subjectArea: Physics
title: From file
abstract: File abstract
accPercentTo: 40
`), 0o644))

	tests := []struct {
		name string
		args []string
		want types.RawFields
	}{
		{
			name: "flags only",
			args: []string{"--subject", "Biology", "--title", "T", "--abstract", "A", "--open-access", "true"},
			want: types.RawFields{
				types.FieldSubjectArea: "Biology",
				types.FieldTitle:       "T",
				types.FieldAbstract:    "A",
				types.FieldOpenAccess:  "true",
			},
		},
		{
			name: "file only",
			args: []string{"--file", path},
			want: types.RawFields{
				types.FieldSubjectArea: "Physics",
				types.FieldTitle:       "From file",
				types.FieldAbstract:    "File abstract",
				types.FieldAccTo:       40,
			},
		},
		{
			name: "flags override file",
			args: []string{"--file", path, "--title", "From flag", "--acc-to", "25"},
			want: types.RawFields{
				types.FieldSubjectArea: "Physics",
				types.FieldTitle:       "From flag",
				types.FieldAbstract:    "File abstract",
				types.FieldAccTo:       "25",
			},
		},
		{
			name: "explicit empty flag is kept",
			args: []string{"--title", ""},
			want: types.RawFields{types.FieldTitle: ""},
		},
		{
			name: "nothing set",
			args: nil,
			want: types.RawFields{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := requestFields(fieldsCmd(t, tt.args...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequestFieldsMissingFile(t *testing.T) {
	_, err := requestFields(fieldsCmd(t, "--file", filepath.Join(t.TempDir(), "nope.yaml")))
	assert.ErrorContains(t, err, "reading request file")
}

func TestFormatHistory(t *testing.T) {
	var buf bytes.Buffer
	formatHistory(nil, &buf)
	assert.Equal(t, "No submissions recorded.\n", buf.String())

	buf.Reset()
	formatHistory([]history.Submission{
		{
			Request:   types.RecommendationRequest{Title: "Catalysis on copper surfaces under strain and heat"},
			Journals:  []string{"JACS", "Angewandte Chemie"},
			CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		{Request: types.RecommendationRequest{Title: "Empty"}},
	}, &buf)

	out := buf.String()
	assert.Contains(t, out, "Catalysis on copper surfaces under st...")
	assert.Contains(t, out, "JACS, Angewandte Chemie")
	assert.Contains(t, out, "  -\n")

	buf.Reset()
	formatHistory([]history.Submission{{
		Request: types.RecommendationRequest{Title: strings.Repeat("x", 36) + "ñandú migration patterns"},
	}}, &buf)
	assert.True(t, utf8.ValidString(buf.String()))
	assert.Contains(t, buf.String(), strings.Repeat("x", 36)+"ñ...")
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "journal-recommender "+version+"\n", buf.String())
}
