package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zipfer/ocf-neutron-agent/internal/config"
	"github.com/Zipfer/ocf-neutron-agent/internal/journal"
	"github.com/Zipfer/ocf-neutron-agent/internal/logger"
	"github.com/Zipfer/ocf-neutron-agent/internal/metadata"
	"github.com/Zipfer/ocf-neutron-agent/internal/ocf"
	"github.com/Zipfer/ocf-neutron-agent/internal/osproc"
	"github.com/Zipfer/ocf-neutron-agent/internal/pidrec"
	"github.com/Zipfer/ocf-neutron-agent/internal/supervisor"
)

// command binds action handlers to a lazily-built supervisor so the
// read-only meta-data and usage paths never touch parameters.
type command struct{}

// newSupervisor resolves the handle and assembles the supervisor plus a
// teardown func for the optional journal.
func (c *command) newSupervisor() (*supervisor.Supervisor, func(), error) {
	h, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve parameters: %w", err)
	}
	log := logger.New(h.Log, ocf.ResourceInstance())
	sup := supervisor.New(h, pidrec.File{Path: h.PIDFile}, osproc.NewRunner(), log)

	teardown := func() {}
	if h.JournalDSN != "" {
		sink, err := journal.OpenSQLite(h.JournalDSN)
		if err != nil {
			// The journal is an audit aid, never a reason to fail the action.
			log.Warn("journal unavailable", "dsn", h.JournalDSN, "error", err)
		} else {
			sup.Journal = sink
			teardown = func() { _ = sink.Close() }
		}
	}
	return sup, teardown, nil
}

// opContext derives the operation context from the caller-supplied timeout
// when one is present; the cluster manager killing us is the hard backstop.
func opContext() (context.Context, context.CancelFunc) {
	if t, ok := ocf.MetaTimeout(); ok {
		return context.WithTimeout(context.Background(), t)
	}
	return context.WithCancel(context.Background())
}

func (c *command) Start(_ *cobra.Command) error {
	sup, teardown, err := c.newSupervisor()
	if err != nil {
		return err
	}
	defer teardown()
	if err := sup.Validate(false); err != nil {
		return err
	}
	ctx, cancel := opContext()
	defer cancel()
	return sup.Start(ctx)
}

func (c *command) Stop(_ *cobra.Command) error {
	sup, teardown, err := c.newSupervisor()
	if err != nil {
		return err
	}
	defer teardown()
	if err := sup.Validate(false); err != nil {
		return err
	}
	ctx, cancel := opContext()
	defer cancel()
	return sup.Stop(ctx)
}

func (c *command) Status(cmd *cobra.Command) error {
	return c.check(cmd, ocf.ActionStatus)
}

func (c *command) Monitor(cmd *cobra.Command) error {
	return c.check(cmd, ocf.ActionMonitor)
}

func (c *command) check(cmd *cobra.Command, action string) error {
	sup, teardown, err := c.newSupervisor()
	if err != nil {
		return err
	}
	defer teardown()
	if err := sup.Validate(ocf.IsProbe(action)); err != nil {
		return err
	}
	if err := sup.Status(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), sup.Handle.BinaryName()+" is running")
	return nil
}

func (c *command) Validate(_ *cobra.Command) error {
	sup, teardown, err := c.newSupervisor()
	if err != nil {
		return err
	}
	defer teardown()
	return sup.Validate(ocf.IsProbe(ocf.ActionValidate))
}

func (c *command) MetaData(cmd *cobra.Command) error {
	_, err := fmt.Fprint(cmd.OutOrStdout(), metadata.XML)
	return err
}
