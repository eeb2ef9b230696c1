package shell

// The MockShell is a mock implementation of the Shell interface for testing purposes.
// Each method delegates to its Func field when set and otherwise returns zero values,
// so tests only stub the calls they care about.

// =============================================================================
// Types
// =============================================================================

type MockShell struct {
	DefaultShell
	SetVerbosityFunc    func(verbose bool)
	IsVerboseFunc       func() bool
	IsInteractiveFunc   func() bool
	GetProjectRootFunc  func() (string, error)
	LookPathFunc        func(command string) (string, error)
	ExecFunc            func(command string, args ...string) (string, error)
	ExecSilentFunc      func(command string, args ...string) (string, error)
	ExecProgressFunc    func(message string, command string, args ...string) (string, error)
	ExecInteractiveFunc func(env map[string]string, command string, args ...string) error
	ExecReplaceFunc     func(env map[string]string, command string, args ...string) error
}

// =============================================================================
// Constructor
// =============================================================================

// NewMockShell creates a new instance of MockShell
func NewMockShell() *MockShell {
	return &MockShell{
		DefaultShell: *NewDefaultShell(),
	}
}

// =============================================================================
// Public Methods
// =============================================================================

// SetVerbosity calls the custom SetVerbosityFunc if provided.
func (s *MockShell) SetVerbosity(verbose bool) {
	if s.SetVerbosityFunc != nil {
		s.SetVerbosityFunc(verbose)
		return
	}
	s.verbose = verbose
}

// IsVerbose calls the custom IsVerboseFunc if provided.
func (s *MockShell) IsVerbose() bool {
	if s.IsVerboseFunc != nil {
		return s.IsVerboseFunc()
	}
	return s.verbose
}

// IsInteractive calls the custom IsInteractiveFunc if provided.
func (s *MockShell) IsInteractive() bool {
	if s.IsInteractiveFunc != nil {
		return s.IsInteractiveFunc()
	}
	return false
}

// GetProjectRoot calls the custom GetProjectRootFunc if provided.
func (s *MockShell) GetProjectRoot() (string, error) {
	if s.GetProjectRootFunc != nil {
		return s.GetProjectRootFunc()
	}
	return "", nil
}

// LookPath calls the custom LookPathFunc if provided.
func (s *MockShell) LookPath(command string) (string, error) {
	if s.LookPathFunc != nil {
		return s.LookPathFunc(command)
	}
	return "/usr/local/bin/" + command, nil
}

// Exec calls the custom ExecFunc if provided.
func (s *MockShell) Exec(command string, args ...string) (string, error) {
	if s.ExecFunc != nil {
		return s.ExecFunc(command, args...)
	}
	return "", nil
}

// ExecSilent calls the custom ExecSilentFunc if provided.
func (s *MockShell) ExecSilent(command string, args ...string) (string, error) {
	if s.ExecSilentFunc != nil {
		return s.ExecSilentFunc(command, args...)
	}
	return "", nil
}

// ExecProgress calls the custom ExecProgressFunc if provided.
func (s *MockShell) ExecProgress(message string, command string, args ...string) (string, error) {
	if s.ExecProgressFunc != nil {
		return s.ExecProgressFunc(message, command, args...)
	}
	return "", nil
}

// ExecInteractive calls the custom ExecInteractiveFunc if provided.
func (s *MockShell) ExecInteractive(env map[string]string, command string, args ...string) error {
	if s.ExecInteractiveFunc != nil {
		return s.ExecInteractiveFunc(env, command, args...)
	}
	return nil
}

// ExecReplace calls the custom ExecReplaceFunc if provided.
func (s *MockShell) ExecReplace(env map[string]string, command string, args ...string) error {
	if s.ExecReplaceFunc != nil {
		return s.ExecReplaceFunc(env, command, args...)
	}
	return nil
}

// Ensure MockShell implements the Shell interface
var _ Shell = (*MockShell)(nil)
