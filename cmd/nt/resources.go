package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// note command
var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
}

var noteCreateCmd = &cobra.Command{
	Use:   "create TITLE",
	Short: "Create a note with a seeded body",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parent, _ := cmd.Flags().GetString("parent")

		a, err := newApp(cmd, "CreateNote")
		if err != nil {
			return err
		}
		defer a.Close()

		id, err := a.CreateNote(args[0], parent)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

var noteShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a note and its body",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "GetNote")
		if err != nil {
			return err
		}
		defer a.Close()

		note, err := a.GetNote(args[0])
		if err != nil {
			return err
		}
		return render(cmd, note, func(w io.Writer) error {
			_, err := io.WriteString(w, note.Body)
			return err
		})
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "ListNotes")
		if err != nil {
			return err
		}
		defer a.Close()

		notes, err := a.ListNotes()
		if err != nil {
			return err
		}
		rows := toNoteRows(notes)
		return render(cmd, rows, func(w io.Writer) error {
			for _, n := range rows {
				fmt.Fprintf(w, "%s  %s  %s\n", n.ID, n.UpdatedAt.Format("2006-01-02 15:04:05"), n.Title)
			}
			return nil
		})
	},
}

var noteRenameCmd = &cobra.Command{
	Use:   "rename ID TITLE",
	Short: "Rename a note and the nodes showing it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "RenameNote")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.RenameNote(args[0], args[1])
	},
}

var noteWriteCmd = &cobra.Command{
	Use:   "write ID",
	Short: "Replace a note body from --content or stdin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, ok, err := readContent(cmd)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no content: pass --content or pipe the body on stdin")
		}

		a, err := newApp(cmd, "WriteNote")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.WriteNote(args[0], content)
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a note and its body (its node stays)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "DeleteNote")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.DeleteNote(args[0])
	},
}

// snippet command
var snippetCmd = &cobra.Command{
	Use:   "snippet",
	Short: "Manage snippets",
}

var snippetCreateCmd = &cobra.Command{
	Use:   "create TITLE",
	Short: "Create a snippet from --content or stdin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		language, _ := cmd.Flags().GetString("language")
		parent, _ := cmd.Flags().GetString("parent")
		content, _, err := readContent(cmd)
		if err != nil {
			return err
		}

		a, err := newApp(cmd, "CreateSnippet")
		if err != nil {
			return err
		}
		defer a.Close()

		id, err := a.CreateSnippet(args[0], language, content, parent)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

var snippetShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a snippet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "GetSnippet")
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := a.GetSnippet(args[0])
		if err != nil {
			return err
		}
		return render(cmd, s, func(w io.Writer) error {
			lang := "-"
			if s.Language != nil {
				lang = *s.Language
			}
			fmt.Fprintf(w, "%s (%s)\n\n", s.Title, lang)
			_, err := io.WriteString(w, s.Content)
			return err
		})
	},
}

var snippetUpdateCmd = &cobra.Command{
	Use:   "update ID TITLE",
	Short: "Replace a snippet's title, language and content",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		language, _ := cmd.Flags().GetString("language")
		content, _, err := readContent(cmd)
		if err != nil {
			return err
		}

		a, err := newApp(cmd, "UpdateSnippet")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.UpdateSnippet(args[0], args[1], language, content)
	},
}

var snippetDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a snippet (its node stays)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "DeleteSnippet")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.DeleteSnippet(args[0])
	},
}

func init() {
	noteCmd.AddCommand(noteCreateCmd)
	noteCreateCmd.Flags().String("parent", "", "Parent node id (default: root)")
	noteCmd.AddCommand(noteShowCmd)
	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteRenameCmd)
	noteCmd.AddCommand(noteWriteCmd)
	noteWriteCmd.Flags().String("content", "", "New body (default: read stdin)")
	noteCmd.AddCommand(noteDeleteCmd)

	snippetCmd.AddCommand(snippetCreateCmd)
	snippetCreateCmd.Flags().String("language", "", "Language of the snippet")
	snippetCreateCmd.Flags().String("content", "", "Snippet content (default: read stdin)")
	snippetCreateCmd.Flags().String("parent", "", "Parent node id (default: root)")
	snippetCmd.AddCommand(snippetShowCmd)
	snippetCmd.AddCommand(snippetUpdateCmd)
	snippetUpdateCmd.Flags().String("language", "", "Language of the snippet")
	snippetUpdateCmd.Flags().String("content", "", "Snippet content (default: read stdin)")
	snippetCmd.AddCommand(snippetDeleteCmd)
}
