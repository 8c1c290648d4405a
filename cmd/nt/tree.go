package main

import (
	"fmt"
	"io"

	"notetree/internal/nt"

	"github.com/spf13/cobra"
)

// orderFlag returns the --order value, or nil when the flag was not given.
func orderFlag(cmd *cobra.Command) *int64 {
	if !cmd.Flags().Changed("order") {
		return nil
	}
	order, _ := cmd.Flags().GetInt64("order")
	return &order
}

var nodeCmd = &cobra.Command{
	Use:   "node",
	Short: "Manage tree nodes",
}

var nodeCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a tree node",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")
		scope, _ := cmd.Flags().GetString("scope")
		parent, _ := cmd.Flags().GetString("parent")

		a, err := newApp(cmd, "CreateNode")
		if err != nil {
			return err
		}
		defer a.Close()

		id, err := a.CreateNode(args[0], kind, scope, parent, orderFlag(cmd))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

var nodeUpdateCmd = &cobra.Command{
	Use:   "update ID NAME",
	Short: "Rename, move or reorder a node (no --parent moves it to the root)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		parent, _ := cmd.Flags().GetString("parent")

		a, err := newApp(cmd, "UpdateNode")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.UpdateNode(args[0], args[1], parent, orderFlag(cmd))
	},
}

var nodeDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete an empty node",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "DeleteNode")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.DeleteNode(args[0])
	},
}

var nodeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List nodes in storage order",
	RunE: func(cmd *cobra.Command, args []string) error {
		scope, _ := cmd.Flags().GetString("scope")

		a, err := newApp(cmd, "ListNodes")
		if err != nil {
			return err
		}
		defer a.Close()

		nodes, err := a.ListNodes(scope)
		if err != nil {
			return err
		}
		rows := toNodeRows(nodes)
		return render(cmd, rows, func(w io.Writer) error {
			if len(rows) == 0 {
				_, err := fmt.Fprintln(w, "No nodes.")
				return err
			}
			return writeNodeTable(w, rows)
		})
	},
}

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show nodes as a tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		scope, _ := cmd.Flags().GetString("scope")

		a, err := newApp(cmd, "Tree")
		if err != nil {
			return err
		}
		defer a.Close()

		roots, err := a.Tree(scope)
		if err != nil {
			return err
		}
		if roots == nil {
			roots = []*nt.TreeView{}
		}
		return render(cmd, roots, func(w io.Writer) error {
			if len(roots) == 0 {
				_, err := fmt.Fprintln(w, "Empty tree.")
				return err
			}
			return writeTree(w, roots)
		})
	},
}

func init() {
	nodeCmd.AddCommand(nodeCreateCmd)
	nodeCreateCmd.Flags().String("kind", nt.KindFolder, "Node kind")
	nodeCreateCmd.Flags().String("scope", nt.ScopeNotes, "Scope: notes or snippets")
	nodeCreateCmd.Flags().String("parent", "", "Parent node id (default: root)")
	nodeCreateCmd.Flags().Int64("order", 0, "Position among siblings")

	nodeCmd.AddCommand(nodeUpdateCmd)
	nodeUpdateCmd.Flags().String("parent", "", "Parent node id (default: root)")
	nodeUpdateCmd.Flags().Int64("order", 0, "Position among siblings (default 0)")

	nodeCmd.AddCommand(nodeDeleteCmd)

	nodeCmd.AddCommand(nodeListCmd)
	nodeListCmd.Flags().String("scope", "", "Only list this scope")

	treeCmd.Flags().String("scope", "", "Only show this scope")
}
