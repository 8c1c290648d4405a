package main

import (
	"bytes"
	"database/sql"
	"io"
	"strings"
	"testing"

	"notetree/internal/database/sqlc"
	"notetree/internal/nt"

	"github.com/spf13/cobra"
)

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{formatText, formatJSON, formatYAML} {
		if err := validateFormat(f); err != nil {
			t.Errorf("validateFormat(%q) error = %v", f, err)
		}
	}
	if err := validateFormat("xml"); err == nil {
		t.Error("validateFormat(xml) error = nil")
	}
}

func TestWriteTree(t *testing.T) {
	roots := []*nt.TreeView{
		{ID: "a", Label: "Work", Kind: "folder", Children: []*nt.TreeView{
			{ID: "b", Label: "Plan", Kind: "note", ResourceID: "n1", ResourceType: "note"},
		}},
		{ID: "c", Label: "Misc", Kind: "folder"},
	}

	var buf bytes.Buffer
	if err := writeTree(&buf, roots); err != nil {
		t.Fatalf("writeTree() error = %v", err)
	}

	want := "Work  [folder] a\n  Plan  [note] b -> note:n1\nMisc  [folder] c\n"
	if buf.String() != want {
		t.Errorf("writeTree() =\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestRender(t *testing.T) {
	rows := toNodeRows([]*sqlc.TreeNode{
		{ID: "a", Name: "Work", NodeType: "folder", Scope: "notes"},
		{ID: "b", Name: "Plan", NodeType: "note", Scope: "notes", ParentID: sql.NullString{String: "a", Valid: true}},
	})

	tests := []struct {
		format string
		want   []string
	}{
		{formatText, []string{"ID", "PARENT", "Plan"}},
		{formatJSON, []string{`"id": "a"`, `"parent_id": null`, `"parent_id": "a"`}},
		{formatYAML, []string{"- id: a", "parent_id: a", "kind: note"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			cmd := &cobra.Command{}
			cmd.Flags().String("format", tt.format, "")
			var buf bytes.Buffer
			cmd.SetOut(&buf)

			err := render(cmd, rows, func(w io.Writer) error { return writeNodeTable(w, rows) })
			if err != nil {
				t.Fatalf("render() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}
