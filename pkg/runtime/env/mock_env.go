package env

// MockEnvPrinter is a mock implementation of the EnvPrinter interface
type MockEnvPrinter struct {
	GetEnvVarsFunc func() (map[string]string, error)
}

// NewMockEnvPrinter creates a new MockEnvPrinter instance
func NewMockEnvPrinter() *MockEnvPrinter {
	return &MockEnvPrinter{}
}

// GetEnvVars calls the custom GetEnvVarsFunc if provided.
func (m *MockEnvPrinter) GetEnvVars() (map[string]string, error) {
	if m.GetEnvVarsFunc != nil {
		return m.GetEnvVarsFunc()
	}
	return map[string]string{}, nil
}

var _ EnvPrinter = (*MockEnvPrinter)(nil)
