package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/diasKarataev/todo-client/domain"
	"github.com/diasKarataev/todo-client/repository"
	"github.com/diasKarataev/todo-client/usecase/collection"
)

const timeLayout = "2006-01-02 15:04"

func newListCmd(a *app) *cobra.Command {
	var (
		page     int
		pageSize int
		name     string
		details  string
		starred  bool
		sortBy   string
		order    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks with optional filters, sorting and paging",
		RunE: func(cmd *cobra.Command, args []string) error {
			if pageSize <= 0 {
				pageSize = a.cfg.List.PageSize
			}
			sortSpec, err := parseSort(sortBy, order)
			if err != nil {
				return err
			}

			ctrl := collection.New(a.api, a.session, pageSize, a.logger)
			ctrl.SetFilters(repository.FilterSpec{Name: name, Details: details, Starred: starred})
			ctrl.SetSort(sortSpec)

			if err := ctrl.Load(cmd.Context()); err != nil {
				return err
			}
			// Page moves are clamped against the server-reported total, so
			// asking for a page past the end leaves us on page 1.
			if page > 1 {
				if err := ctrl.SetPage(cmd.Context(), page); err != nil {
					return err
				}
			}

			printTasks(ctrl.Tasks())
			fmt.Printf("page %d of %d (%d tasks)\n", ctrl.Page(), ctrl.LastPage(), ctrl.Total())
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "tasks per page")
	cmd.Flags().StringVar(&name, "name", "", "only tasks whose name contains this")
	cmd.Flags().StringVar(&details, "details", "", "only tasks whose details contain this")
	cmd.Flags().BoolVar(&starred, "starred", false, "only starred tasks")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort field: name, details or updated")
	cmd.Flags().StringVar(&order, "order", "asc", "sort order: asc or desc")
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> [details]",
		Short: "Create a task (requires an activated account)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			details := ""
			if len(args) > 1 {
				details = args[1]
			}

			ctrl := a.controller()
			created, err := ctrl.Create(cmd.Context(), args[0], details)
			if err != nil {
				if domain.IsDomainError(err, domain.ErrCodeNotActivated) {
					return fmt.Errorf("cannot create tasks: activate your account first (todo resend-activation)")
				}
				return err
			}

			fmt.Printf("Created %s: %s\n", created.ID, created.Name)
			return nil
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := a.api.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("id:       %s\n", task.ID)
			fmt.Printf("name:     %s\n", task.Name)
			fmt.Printf("details:  %s\n", task.Details)
			fmt.Printf("starred:  %t\n", task.Star)
			fmt.Printf("created:  %s\n", task.CreatedDate.Format(timeLayout))
			fmt.Printf("updated:  %s\n", task.LastUpdated.Format(timeLayout))
			return nil
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	var name, details string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a task's name and/or details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("details") {
				return fmt.Errorf("nothing to change: pass --name and/or --details")
			}

			task, err := a.api.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			ctrl := a.controller()
			ctrl.StartEdit(*task)

			newName := task.Name
			newDetails := task.Details
			if cmd.Flags().Changed("name") {
				newName = name
			}
			if cmd.Flags().Changed("details") {
				newDetails = details
			}
			ctrl.SetEditDraft(newName, newDetails)

			updated, err := ctrl.SaveEdit(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Updated %s: %s\n", updated.ID, updated.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new task name")
	cmd.Flags().StringVar(&details, "details", "", "new task details")
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.controller().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}
}

func newStarCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "star <id>",
		Short: "Toggle a task's star",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.controller().ToggleStar(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if res.Starred {
				fmt.Println("Starred.")
			} else {
				fmt.Println("Unstarred.")
			}
			return nil
		},
	}
}

func printTasks(tasks []domain.Task) {
	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\t\tNAME\tDETAILS\tUPDATED")
	for _, t := range tasks {
		star := " "
		if t.Star {
			star = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			t.ID, star, t.Name, t.Details, t.LastUpdated.Format(timeLayout))
	}
	w.Flush()
}

func parseSort(field, order string) (repository.SortSpec, error) {
	spec := repository.SortSpec{}

	switch field {
	case "", "none":
		spec.Field = repository.SortNone
	case "name":
		spec.Field = repository.SortByName
	case "details":
		spec.Field = repository.SortByDetails
	case "updated":
		spec.Field = repository.SortByUpdated
	default:
		return spec, fmt.Errorf("unknown sort field %q (use name, details or updated)", field)
	}

	switch order {
	case "", "asc":
		spec.Order = repository.OrderAsc
	case "desc":
		spec.Order = repository.OrderDesc
	default:
		return spec, fmt.Errorf("unknown sort order %q (use asc or desc)", order)
	}
	return spec, nil
}
