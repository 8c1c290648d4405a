package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"notetree/internal/database/sqlc"
	"notetree/internal/nt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
}

// render writes v as JSON or YAML when asked to, and otherwise calls text.
func render(cmd *cobra.Command, v any, text func(w io.Writer) error) error {
	w := cmd.OutOrStdout()
	format, _ := cmd.Flags().GetString("format")

	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}

// nodeRow is the printable form of a tree node.
type nodeRow struct {
	ID         string    `json:"id" yaml:"id"`
	ParentID   *string   `json:"parent_id" yaml:"parent_id"`
	Name       string    `json:"name" yaml:"name"`
	Kind       string    `json:"kind" yaml:"kind"`
	Scope      string    `json:"scope" yaml:"scope"`
	OrderIndex int64     `json:"order_index" yaml:"order_index"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" yaml:"updated_at"`
}

func toNodeRows(nodes []*sqlc.TreeNode) []nodeRow {
	rows := make([]nodeRow, 0, len(nodes))
	for _, n := range nodes {
		r := nodeRow{
			ID:         n.ID,
			Name:       n.Name,
			Kind:       n.NodeType,
			Scope:      n.Scope,
			OrderIndex: n.OrderIndex,
			CreatedAt:  n.CreatedAt,
			UpdatedAt:  n.UpdatedAt,
		}
		if n.ParentID.Valid {
			parent := n.ParentID.String
			r.ParentID = &parent
		}
		rows = append(rows, r)
	}
	return rows
}

func writeNodeTable(w io.Writer, rows []nodeRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPARENT\tORDER\tKIND\tSCOPE\tNAME")
	for _, r := range rows {
		parent := "-"
		if r.ParentID != nil {
			parent = *r.ParentID
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n", r.ID, parent, r.OrderIndex, r.Kind, r.Scope, r.Name)
	}
	return tw.Flush()
}

// writeTree prints roots as an indented outline, depth first.
func writeTree(w io.Writer, roots []*nt.TreeView) error {
	type item struct {
		node  *nt.TreeView
		depth int
	}
	stack := make([]item, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, item{roots[i], 0})
	}

	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		line := fmt.Sprintf("%s%s  [%s] %s", strings.Repeat("  ", it.depth), it.node.Label, it.node.Kind, it.node.ID)
		if it.node.ResourceID != "" {
			line += fmt.Sprintf(" -> %s:%s", it.node.ResourceType, it.node.ResourceID)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}

		for i := len(it.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{it.node.Children[i], it.depth + 1})
		}
	}
	return nil
}

// noteRow is the printable form of a note row without its body.
type noteRow struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

func toNoteRows(notes []*sqlc.Note) []noteRow {
	rows := make([]noteRow, 0, len(notes))
	for _, n := range notes {
		rows = append(rows, noteRow{ID: n.ID, Title: n.Title, CreatedAt: n.CreatedAt, UpdatedAt: n.UpdatedAt})
	}
	return rows
}
