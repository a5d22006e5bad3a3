package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	recipeAgent "github.com/prefopt-project/prefopt/internal/prefopt-agent/recipe"
	"github.com/prefopt-project/prefopt/pkg/afero"
	"github.com/prefopt-project/prefopt/pkg/logging"
)

// RecipeAgent implements the AgentModule interface for the recipe agent
type RecipeAgent struct {
	agent *recipeAgent.RecipeAgent
}

// Name returns the name of the agent
func (r *RecipeAgent) Name() string {
	return "recipe"
}

// ShortDescription returns a short description of the agent
func (r *RecipeAgent) ShortDescription() string {
	return "Validate and render preference-optimization recipes"
}

// LongDescription returns a detailed description of the agent
func (r *RecipeAgent) LongDescription() string {
	return "The recipe agent loads a preference-optimization recipe, applies the validation rules " +
		"the training runtime would enforce at startup, logs a parameter summary, and can render " +
		"the canonical form of the recipe back to disk."
}

// ConfigureCommand configures the agent command
func (r *RecipeAgent) ConfigureCommand(cmd *cobra.Command) {
	cmd.Run = func(cmd *cobra.Command, args []string) {
		runAgentCommand(cmd, r, r.Start)
	}
}

// FxModules returns the fx modules needed by this agent
func (r *RecipeAgent) FxModules() []fx.Option {
	return []fx.Option{
		afero.Module,
		logging.Module,
		logging.ModuleNamed("another_log"),
		recipeAgent.Module,
		fx.Populate(&r.agent),
	}
}

// Start starts the agent
func (r *RecipeAgent) Start() error {
	return r.agent.Start()
}

// NewRecipeAgent creates a new recipe agent
func NewRecipeAgent() *RecipeAgent {
	return &RecipeAgent{}
}
