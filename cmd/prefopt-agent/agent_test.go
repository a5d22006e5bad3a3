package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/fx"
)

// MockAgentModule is a mock implementation of the AgentModule interface for testing
type MockAgentModule struct {
	mock.Mock
}

func (m *MockAgentModule) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockAgentModule) ShortDescription() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockAgentModule) LongDescription() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockAgentModule) FxModules() []fx.Option {
	args := m.Called()
	return args.Get(0).([]fx.Option)
}

func (m *MockAgentModule) ConfigureCommand(cmd *cobra.Command) {
	m.Called(cmd)
}

func (m *MockAgentModule) Start() error {
	args := m.Called()
	return args.Error(0)
}

func TestCreateAgentCommand(t *testing.T) {
	mockModule := new(MockAgentModule)

	mockModule.On("Name").Return("mock-agent")
	mockModule.On("ShortDescription").Return("Mock Agent Short Description")
	mockModule.On("LongDescription").Return("Mock Agent Long Description")
	mockModule.On("ConfigureCommand", mock.AnythingOfType("*cobra.Command")).Run(func(args mock.Arguments) {
		cmd := args.Get(0).(*cobra.Command)
		cmd.Run = func(cmd *cobra.Command, args []string) {}
	})

	cmd := CreateAgentCommand(mockModule)

	assert.Equal(t, "mock-agent", cmd.Use)
	assert.Equal(t, "Mock Agent Short Description", cmd.Short)
	assert.Equal(t, "Mock Agent Long Description", cmd.Long)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))

	mockModule.AssertExpectations(t)
}

func TestRootCommandRegistersAgents(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Use] = true
	}

	assert.True(t, names["recipe"])
	assert.True(t, names["launch"])
}
