package tools

// MockToolsManager is a mock implementation of the ToolsManager interface for testing purposes.
type MockToolsManager struct {
	RequireFunc func(tools ...string) error
	CheckFunc   func() error
}

// NewMockToolsManager creates a new instance of MockToolsManager.
func NewMockToolsManager() *MockToolsManager {
	return &MockToolsManager{}
}

// Require calls the mock RequireFunc if set, otherwise returns nil.
func (m *MockToolsManager) Require(tools ...string) error {
	if m.RequireFunc != nil {
		return m.RequireFunc(tools...)
	}
	return nil
}

// Check calls the mock CheckFunc if set, otherwise returns nil.
func (m *MockToolsManager) Check() error {
	if m.CheckFunc != nil {
		return m.CheckFunc()
	}
	return nil
}

var _ ToolsManager = (*MockToolsManager)(nil)
