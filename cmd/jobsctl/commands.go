package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"

	"github.com/animeaux/animeaux/jobs"
)

// enqueuer is the part of jobs.Client the commands use.
type enqueuer interface {
	EnqueueWarmPresets(ctx context.Context, entities ...string) (*asynq.TaskInfo, error)
	EnqueueBump(ctx context.Context, reason string) (*asynq.TaskInfo, error)
}

func newRootCmd(client enqueuer, inspector jobs.QueueInspector, queue string) *cobra.Command {
	root := &cobra.Command{
		Use:           "jobsctl",
		Short:         "Manage the list cache background jobs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newWarmCmd(client), newBumpCmd(client), newStatsCmd(inspector, queue))
	return root
}

func newWarmCmd(client enqueuer) *cobra.Command {
	return &cobra.Command{
		Use:   "warm [entity...]",
		Short: "Enqueue a preset warm-up",
		Long: `Enqueue a warm-up of the preset list pages.

Entities: ` + strings.Join(jobs.AllEntities, ", ") + `. Without arguments every entity is warmed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, entity := range args {
				if !jobs.ValidEntity(entity) {
					return fmt.Errorf("unknown entity %q", entity)
				}
			}
			info, err := client.EnqueueWarmPresets(cmd.Context(), args...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "enqueued %s (%s)\n", jobs.TaskWarmPresets, info.ID)
			return nil
		},
	}
}

func newBumpCmd(client enqueuer) *cobra.Command {
	var reason string
	cmd := &cobra.Command{
		Use:   "bump",
		Short: "Enqueue a list cache invalidation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := client.EnqueueBump(cmd.Context(), reason)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "enqueued %s (%s)\n", jobs.TaskBumpCache, info.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "manual", "reason recorded in the worker logs")
	return cmd
}

func newStatsCmd(inspector jobs.QueueInspector, queue string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the queue state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := inspector.GetQueueInfo(queue)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "queue:     %s\n", info.Queue)
			fmt.Fprintf(out, "pending:   %d\n", info.Pending)
			fmt.Fprintf(out, "active:    %d\n", info.Active)
			fmt.Fprintf(out, "scheduled: %d\n", info.Scheduled)
			fmt.Fprintf(out, "retry:     %d\n", info.Retry)
			return nil
		},
	}
}
