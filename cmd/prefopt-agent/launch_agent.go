package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	launchAgent "github.com/prefopt-project/prefopt/internal/prefopt-agent/launch"
	"github.com/prefopt-project/prefopt/pkg/afero"
	"github.com/prefopt-project/prefopt/pkg/logging"
)

// LaunchAgent implements the AgentModule interface for the launch agent
type LaunchAgent struct {
	agent *launchAgent.LaunchAgent
}

// Name returns the name of the agent
func (l *LaunchAgent) Name() string {
	return "launch"
}

// ShortDescription returns a short description of the agent
func (l *LaunchAgent) ShortDescription() string {
	return "Launch and watch a preference-optimization training run"
}

// LongDescription returns a detailed description of the agent
func (l *LaunchAgent) LongDescription() string {
	return "The launch agent ships a validated recipe and its preference data to the external " +
		"training runtime, resumes from the latest checkpoint when one exists, watches the run " +
		"to completion, and stores the final training metrics."
}

// ConfigureCommand configures the agent command
func (l *LaunchAgent) ConfigureCommand(cmd *cobra.Command) {
	cmd.Run = func(cmd *cobra.Command, args []string) {
		runAgentCommand(cmd, l, l.Start)
	}
}

// FxModules returns the fx modules needed by this agent
func (l *LaunchAgent) FxModules() []fx.Option {
	return []fx.Option{
		afero.Module,
		logging.Module,
		logging.ModuleNamed("another_log"),
		launchAgent.Module,
		fx.Populate(&l.agent),
	}
}

// Start starts the agent
func (l *LaunchAgent) Start() error {
	return l.agent.Start()
}

// NewLaunchAgent creates a new launch agent
func NewLaunchAgent() *LaunchAgent {
	return &LaunchAgent{}
}
