package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/hicham722/taskflow/internal/dto"
	"github.com/hicham722/taskflow/internal/stats"

	"github.com/spf13/cobra"
)

var (
	flagFilter   string
	flagDesc     string
	flagCategory string
	flagAmount   float64
	flagDue      string
	flagStatus   string
	flagNotes    string
	flagReminder bool
	flagYes      bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks with dashboard stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := requireUser()
		if err != nil {
			return err
		}
		tasks := s.coord.List(cmd.Context())
		view := stats.Apply(tasks, stats.Filter(flagFilter), time.Now())

		printTasks(view)
		printDashboard(stats.Compute(tasks))
		printMode(s)
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, u, err := requireUser()
		if err != nil {
			return err
		}
		s.coord.List(cmd.Context())

		p, err := payloadFromFlags(args[0], u.Email)
		if err != nil {
			return err
		}
		t, err := s.coord.Create(cmd.Context(), p)
		if err != nil {
			return err
		}
		fmt.Printf("created %s (%s)\n", t.ID, t.Title)
		printMode(s)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id> <title>",
	Short: "Replace a task wholesale",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, u, err := requireUser()
		if err != nil {
			return err
		}
		s.coord.List(cmd.Context())

		p, err := payloadFromFlags(args[1], u.Email)
		if err != nil {
			return err
		}
		t, err := s.coord.Update(cmd.Context(), args[0], p)
		if err != nil {
			return err
		}
		fmt.Printf("updated %s (%s)\n", t.ID, t.Title)
		printMode(s)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := requireUser()
		if err != nil {
			return err
		}
		s.coord.List(cmd.Context())

		if !flagYes && !confirm("Are you sure you want to delete this task?") {
			fmt.Println("aborted")
			return nil
		}
		if err := s.coord.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("deleted", args[0])
		printMode(s)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := requireUser()
		if err != nil {
			return err
		}
		tasks := s.coord.List(cmd.Context())
		printDashboard(stats.Compute(tasks))
		printMode(s)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&flagFilter, "filter", "f", "all", "all|today|overdue|week|month")

	for _, cmd := range []*cobra.Command{addCmd, editCmd} {
		cmd.Flags().StringVar(&flagDesc, "desc", "", "description")
		cmd.Flags().StringVar(&flagCategory, "category", "Personal", "Personal|Work|Finance|Shopping|Health")
		cmd.Flags().Float64Var(&flagAmount, "amount", 0, "monetary amount")
		cmd.Flags().StringVar(&flagDue, "due", "", "due date (YYYY-MM-DD)")
		cmd.Flags().StringVar(&flagStatus, "status", "Upcoming", "Upcoming|Completed|Overdue")
		cmd.Flags().StringVar(&flagNotes, "notes", "", "free-form notes")
		cmd.Flags().BoolVar(&flagReminder, "reminder", false, "remind the day before the due date")
	}
	rmCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "skip delete confirmation")

	rootCmd.AddCommand(listCmd, addCmd, editCmd, rmCmd, statsCmd)
}

func payloadFromFlags(title, owner string) (dto.TaskPayload, error) {
	if flagDue == "" {
		flagDue = time.Now().Format("2006-01-02")
	}
	due, err := dto.NewDueDate(flagDue)
	if err != nil {
		return dto.TaskPayload{}, err
	}
	return dto.TaskPayload{
		Title:       title,
		Description: flagDesc,
		Category:    flagCategory,
		Amount:      flagAmount,
		DueDate:     due,
		Status:      flagStatus,
		Notes:       flagNotes,
		Reminder:    flagReminder,
		UserID:      owner,
	}, nil
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func printTasks(tasks []dto.Task) {
	if len(tasks) == 0 {
		fmt.Println("no tasks")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tDUE\tSTATUS\tAMOUNT")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.2f\n",
			shortID(t.ID), t.Title, t.Category, t.DueDate, t.Status, t.Amount)
	}
	w.Flush()
}

func printDashboard(d stats.Dashboard) {
	fmt.Printf("\n%d tasks, %d completed, %d pending payments, %.1f%% done\n",
		d.TotalTasks, d.CompletedTasks, d.PendingPayments, d.Progress)
}

func printMode(s *session) {
	fmt.Printf("mode: %s\n", s.coord.Mode())
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
