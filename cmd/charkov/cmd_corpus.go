package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newCorpusCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Manage stored corpora",
	}
	cmd.AddCommand(newCorpusAddCmd(a))
	cmd.AddCommand(newCorpusListCmd(a))
	cmd.AddCommand(newCorpusShowCmd(a))
	cmd.AddCommand(newCorpusRemoveCmd(a))
	return cmd
}

func newCorpusAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <file>...",
		Short: "Add files to a corpus as new documents",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			for _, path := range args[1:] {
				doc, err := store.AddFile(cmd.Context(), args[0], path)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", doc.ID, humanize.Bytes(uint64(len(doc.Content))), path)
			}
			return nil
		},
	}
}

func newCorpusListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored corpora",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			infos, err := store.Corpora(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list corpora: %w", err)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tDOCUMENTS\tSIZE\tLAST ADDED")
			for _, info := range infos {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", info.Name, info.Documents, humanize.Bytes(uint64(info.Bytes)), humanize.Time(info.LastAdded))
			}
			return tw.Flush()
		},
	}
}

func newCorpusShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "List the documents of a corpus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			docs, err := store.Documents(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSIZE\tADDED\tSOURCE")
			for _, doc := range docs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", doc.ID, humanize.Bytes(uint64(len(doc.Content))), humanize.Time(doc.AddedAt), doc.Source)
			}
			return tw.Flush()
		},
	}
}

func newCorpusRemoveCmd(a *app) *cobra.Command {
	var docID string

	cmd := &cobra.Command{
		Use:   "rm [name]",
		Short: "Remove a corpus, or a single document with --doc",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (docID == "") == (len(args) == 0) {
				return fmt.Errorf("pass exactly one of a corpus name or --doc")
			}

			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			if docID != "" {
				return store.RemoveDocument(cmd.Context(), docID)
			}
			removed, err := store.RemoveCorpus(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d documents\n", removed)
			return nil
		},
	}
	cmd.Flags().StringVar(&docID, "doc", "", "ID of a single document to remove")
	return cmd
}
