package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"turndown/internal/api"
)

func newTasksCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "Show the derived housekeeping work list",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			board, err := api.DerivedTasks(cmd.Context(), api.DerivedTasksRequest{
				Config: cfg,
				Logger: ctx.commandLogger(),
			})
			if err != nil {
				return err
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, board)
			}

			out := cmd.OutOrStdout()
			printSessionNotices(out, board.Session)
			if len(board.Tasks) == 0 {
				fmt.Fprintln(out, "No housekeeping work right now.")
				return nil
			}

			rows := make([][]string, 0, len(board.Tasks))
			for _, task := range board.Tasks {
				rows = append(rows, []string{
					task.RoomCode,
					task.Kind,
					task.Status,
					task.Priority,
					task.Assignee,
					strconv.Itoa(task.Points),
					task.ID,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Room", "Kind", "Status", "Priority", "Assignee", "Points", "Task"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
}

func newStartCommand(ctx *commandContext) *cobra.Command {
	var assignee string

	cmd := &cobra.Command{
		Use:   "start <task-id>",
		Short: "Start a pending task",
		Long: "Start a pending task. Accepts durable task ids and the " +
			"virtual:<facility>:<room> ids shown by `turndown tasks`; starting " +
			"a virtual task persists it under a durable id.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			result, err := api.StartTask(cmd.Context(), api.StartTaskRequest{
				Config:   cfg,
				Logger:   ctx.commandLogger(),
				TaskID:   strings.TrimSpace(args[0]),
				Assignee: strings.TrimSpace(assignee),
			})
			if err != nil {
				return err
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			printSessionNotices(out, result.Session)
			fmt.Fprintf(out, "Started %s cleaning for room %s (task %s)\n",
				result.Task.Kind, result.Task.RoomCode, result.Task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&assignee, "assignee", "", "Assign the task to a specific operator")
	return cmd
}

func newCompleteCommand(ctx *commandContext) *cobra.Command {
	var (
		used     []string
		returned []string
		checked  []string
		photos   []string
		note     string
	)

	cmd := &cobra.Command{
		Use:   "complete <task-id>",
		Short: "Complete an in-progress task and reconcile inventory",
		Long: "Complete an in-progress task. Consumed quantities are passed as " +
			"repeated --used item=qty flags; for checkout rooms, --returned " +
			"item=qty overrides the expected dirty linen count.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			consumed, err := parseQuantities(used)
			if err != nil {
				return fmt.Errorf("parse --used: %w", err)
			}
			returns, err := parseQuantities(returned)
			if err != nil {
				return fmt.Errorf("parse --returned: %w", err)
			}

			checklist := make([]api.ChecklistItem, 0, len(checked))
			for _, text := range checked {
				checklist = append(checklist, api.ChecklistItem{Text: text, Done: true})
			}

			result, err := api.CompleteTask(cmd.Context(), api.CompleteTaskRequest{
				Config:    cfg,
				Logger:    ctx.commandLogger(),
				TaskID:    strings.TrimSpace(args[0]),
				Checklist: checklist,
				Consumed:  consumed,
				Returned:  returns,
				PhotoRefs: photos,
				Note:      strings.TrimSpace(note),
			})
			if err != nil {
				return err
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			printSessionNotices(out, result.Session)
			fmt.Fprintf(out, "Completed room %s (+%d points)\n", result.Task.RoomCode, result.Task.Points)
			if result.Task.LinenExchanged > 0 {
				fmt.Fprintf(out, "Linen exchanged: %d\n", result.Task.LinenExchanged)
			}
			if result.Task.Note != "" {
				fmt.Fprintf(out, "Note: %s\n", result.Task.Note)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&used, "used", nil, "Consumed quantity as item=qty (repeatable)")
	cmd.Flags().StringArrayVar(&returned, "returned", nil, "Dirty return count as item=qty (repeatable)")
	cmd.Flags().StringArrayVar(&checked, "check", nil, "Checklist entry to mark done (repeatable)")
	cmd.Flags().StringArrayVar(&photos, "photo", nil, "Completion photo reference (repeatable)")
	cmd.Flags().StringVar(&note, "note", "", "Note to attach to the task")
	return cmd
}

// parseQuantities turns repeated item=qty flags into a quantity map.
func parseQuantities(pairs []string) (map[string]int, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	quantities := make(map[string]int, len(pairs))
	for _, pair := range pairs {
		item, raw, found := strings.Cut(pair, "=")
		item = strings.TrimSpace(item)
		if !found || item == "" {
			return nil, fmt.Errorf("expected item=qty, got %q", pair)
		}
		qty, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("quantity for %s: %w", item, err)
		}
		if qty < 0 {
			return nil, fmt.Errorf("quantity for %s must not be negative", item)
		}
		quantities[item] = qty
	}
	return quantities, nil
}
