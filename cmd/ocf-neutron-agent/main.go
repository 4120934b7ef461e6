// ocf-neutron-agent is an OCF resource agent supervising one OpenStack
// network agent daemon. The cluster manager invokes it with one action per
// run and interprets its exit code.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zipfer/ocf-neutron-agent/internal/ocf"
)

func main() {
	root := buildRoot(&command{})
	err := root.Execute()
	code := ocf.CodeOf(err)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(int(code))
}

// buildRoot wires one subcommand per OCF action. Unknown actions fall
// through to the root handler and report unimplemented.
func buildRoot(c *command) *cobra.Command {
	root := &cobra.Command{
		Use:           "ocf-neutron-agent <action>",
		Short:         "OCF resource agent for an OpenStack network agent daemon",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Usage()
			if len(args) == 0 {
				return ocf.Errorf(ocf.ErrUnimplemented, "no action given")
			}
			return ocf.Errorf(ocf.ErrUnimplemented, "unimplemented action %q", args[0])
		},
	}

	root.AddCommand(
		newActionCommand(ocf.ActionStart, "Start the daemon", c.Start),
		newActionCommand(ocf.ActionStop, "Stop the daemon, escalating at the deadline", c.Stop),
		newActionCommand(ocf.ActionStatus, "Report whether the daemon is running", c.Status),
		newActionCommand(ocf.ActionMonitor, "Periodic liveness check", c.Monitor),
		newActionCommand(ocf.ActionValidate, "Validate prerequisites", c.Validate),
		newActionCommand(ocf.ActionValidateAll, "Validate prerequisites", c.Validate),
		newActionCommand(ocf.ActionMetaData, "Print the OCF meta-data document", c.MetaData),
		&cobra.Command{
			Use:   ocf.ActionUsage,
			Short: "Print usage",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return cmd.Root().Usage()
			},
		},
	)
	return root
}

func newActionCommand(action, short string, run func(*cobra.Command) error) *cobra.Command {
	return &cobra.Command{
		Use:   action,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd)
		},
	}
}
