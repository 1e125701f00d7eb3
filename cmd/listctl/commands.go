package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"list-timeline/config"
	"list-timeline/internal/list"
	"list-timeline/internal/model"
)

func (c *cli) newItemsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "items <list_id>",
		Short: "Print the raw records of a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := c.app.Repo.FetchRecords(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), records)
		},
	}
}

func (c *cli) newDiscoverCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "discover <list_id>",
		Short: "Run schema discovery and print the column and option mapping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.app.UseCase.Schema(cmd.Context(), list.SchemaInput{ListID: args[0], ForceRefresh: true})
			if err != nil {
				return err
			}
			if c.asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "source\t%s\n\n", out.Source)
			fmt.Fprintln(w, "COLUMN\tFIELD KEY")
			for _, k := range config.SortedKeys(out.Columns) {
				fmt.Fprintf(w, "%s\t%s\n", k, out.Columns[k])
			}
			if len(out.Options) > 0 {
				fmt.Fprintln(w, "\nOPTION\tLABEL")
				for _, k := range config.SortedKeys(out.Options) {
					fmt.Fprintf(w, "%s\t%s\n", k, out.Options[k])
				}
			}
			return w.Flush()
		},
	}
}

func (c *cli) newTasksCommand() *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "tasks <list_id> [list_id...]",
		Short: "Print the normalized tasks of one or more lists",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, status, err := c.fetch(cmd, args, refresh)
			if err != nil {
				return err
			}
			if c.asJSON {
				return writeJSON(cmd.OutOrStdout(), tasks)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTART\tEND\tCATEGORY\tLIST")
			for _, t := range tasks {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Name, t.StartDate, t.EndDate, t.Category, t.SourceListID)
			}
			fmt.Fprintf(w, "\n%d tasks (%s)\n", len(tasks), status)
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Bypass the cache")
	return cmd
}

func (c *cli) newCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories <list_id> [list_id...]",
		Short: "Print the categories used by the tasks of the given lists",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, _, err := c.fetch(cmd, args, false)
			if err != nil {
				return err
			}
			categories := model.Categories(tasks)
			if c.asJSON {
				return writeJSON(cmd.OutOrStdout(), categories)
			}
			for _, cat := range categories {
				fmt.Fprintln(cmd.OutOrStdout(), cat)
			}
			return nil
		},
	}
}

func (c *cli) newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <list_id>",
		Short: "Print the title and description of a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.app.UseCase.GetListInfo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if c.asJSON {
				return writeJSON(cmd.OutOrStdout(), out.Info)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", out.Info.Title, out.Info.Description)
			return nil
		},
	}
}

// fetch reads one list through Fetch and several through FetchMulti. A failed status is
// returned as an error.
func (c *cli) fetch(cmd *cobra.Command, ids []string, refresh bool) ([]model.Task, list.FetchStatus, error) {
	ctx := cmd.Context()
	if len(ids) == 1 {
		out, err := c.app.UseCase.Fetch(ctx, list.FetchInput{ListID: ids[0], ForceRefresh: refresh})
		if err != nil {
			return nil, "", err
		}
		if out.Status == list.StatusFailed {
			return nil, out.Status, fmt.Errorf("fetch %s failed: %w", ids[0], out.Err)
		}
		return out.Tasks, out.Status, nil
	}

	out, err := c.app.UseCase.FetchMulti(ctx, list.FetchMultiInput{ListIDs: ids, ForceRefresh: refresh})
	if err != nil {
		return nil, "", err
	}
	if out.Status == list.StatusFailed {
		return nil, out.Status, fmt.Errorf("fetch of %d lists failed", len(ids))
	}
	return out.Tasks, out.Status, nil
}
