package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gogpu/meshwarp"
)

type flags struct {
	verbose bool
	preview float64
	output  string
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "meshwarp",
		Short:         "Mesh-based image deformation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newApplyCommand(), newVersionCommand())
	return root
}

func newApplyCommand() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "apply JOB",
		Short: "Apply the deformation described by a YAML or TOML job file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.verbose {
				meshwarp.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
				defer meshwarp.SetLogger(nil)
			}
			job, err := loadJob(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("preview") {
				job.Preview = f.preview
			}
			if f.output != "" {
				job.Output = f.output
			}
			if err := job.validate(); err != nil {
				return err
			}
			res, err := runJob(job)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), job, res)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log worker activity to stderr")
	cmd.Flags().Float64Var(&f.preview, "preview", 0, "render a preview at this scale (0 < s < 1) instead of full size")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "override the job's output path")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the library version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("meshwarp", meshwarp.Version)
		},
	}
}
