package config

import (
	"github.com/windsorcli/boxctl/api/v1alpha1"
)

// MockConfigHandler is a mock implementation of the ConfigHandler interface
type MockConfigHandler struct {
	LoadConfigFunc       func() error
	LoadConfigStringFunc func(content string) error
	GetConfigFunc        func() *v1alpha1.Config
	GetStringFunc        func(key string, defaultValue ...string) string
	GetIntFunc           func(key string, defaultValue ...int) int
	GetBoolFunc          func(key string, defaultValue ...bool) bool
	GetStringSliceFunc   func(key string, defaultValue ...[]string) []string
	SetFunc              func(key string, value string) error
	ValidateFunc         func() ([]string, error)
	IsLoadedFunc         func() bool
	SourcesFunc          func() []string
}

// =============================================================================
// Constructor
// =============================================================================

// NewMockConfigHandler is a constructor for MockConfigHandler
func NewMockConfigHandler() *MockConfigHandler {
	return &MockConfigHandler{}
}

// =============================================================================
// Public Methods
// =============================================================================

// LoadConfig calls the mock LoadConfigFunc if set, otherwise returns nil
func (m *MockConfigHandler) LoadConfig() error {
	if m.LoadConfigFunc != nil {
		return m.LoadConfigFunc()
	}
	return nil
}

// LoadConfigString calls the mock LoadConfigStringFunc if set, otherwise returns nil
func (m *MockConfigHandler) LoadConfigString(content string) error {
	if m.LoadConfigStringFunc != nil {
		return m.LoadConfigStringFunc(content)
	}
	return nil
}

// GetConfig calls the mock GetConfigFunc if set, otherwise returns the defaults
func (m *MockConfigHandler) GetConfig() *v1alpha1.Config {
	if m.GetConfigFunc != nil {
		return m.GetConfigFunc()
	}
	return DefaultConfig.DeepCopy()
}

// GetString calls the mock GetStringFunc if set, otherwise returns the default value
func (m *MockConfigHandler) GetString(key string, defaultValue ...string) string {
	if m.GetStringFunc != nil {
		return m.GetStringFunc(key, defaultValue...)
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

// GetInt calls the mock GetIntFunc if set, otherwise returns the default value
func (m *MockConfigHandler) GetInt(key string, defaultValue ...int) int {
	if m.GetIntFunc != nil {
		return m.GetIntFunc(key, defaultValue...)
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return 0
}

// GetBool calls the mock GetBoolFunc if set, otherwise returns the default value
func (m *MockConfigHandler) GetBool(key string, defaultValue ...bool) bool {
	if m.GetBoolFunc != nil {
		return m.GetBoolFunc(key, defaultValue...)
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return false
}

// GetStringSlice calls the mock GetStringSliceFunc if set, otherwise returns the default value
func (m *MockConfigHandler) GetStringSlice(key string, defaultValue ...[]string) []string {
	if m.GetStringSliceFunc != nil {
		return m.GetStringSliceFunc(key, defaultValue...)
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return []string{}
}

// Set calls the mock SetFunc if set, otherwise returns nil
func (m *MockConfigHandler) Set(key string, value string) error {
	if m.SetFunc != nil {
		return m.SetFunc(key, value)
	}
	return nil
}

// Validate calls the mock ValidateFunc if set, otherwise returns no warnings
func (m *MockConfigHandler) Validate() ([]string, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc()
	}
	return nil, nil
}

// IsLoaded calls the mock IsLoadedFunc if set, otherwise returns true
func (m *MockConfigHandler) IsLoaded() bool {
	if m.IsLoadedFunc != nil {
		return m.IsLoadedFunc()
	}
	return true
}

// Sources calls the mock SourcesFunc if set, otherwise returns nil
func (m *MockConfigHandler) Sources() []string {
	if m.SourcesFunc != nil {
		return m.SourcesFunc()
	}
	return nil
}

// Ensure MockConfigHandler implements the ConfigHandler interface
var _ ConfigHandler = (*MockConfigHandler)(nil)
