package notify

import (
	"fmt"
	"io"
	"os"
	"strings"

	fcolor "github.com/fatih/color"
)

// The notify package writes severity-marked messages for the user.
// Every message carries a leading symbol so output stays readable when color is disabled.

// =============================================================================
// Types
// =============================================================================

// MessageType determines the symbol and color of a message
type MessageType int

const (
	// ErrorType is red with a ✗ symbol
	ErrorType MessageType = iota
	// WarningType is yellow with a ⚠ symbol
	WarningType
	// ActivityType is uncolored with a ► symbol
	ActivityType
	// SuccessType is green with a ✔ symbol
	SuccessType
	// InfoType is blue with an ℹ symbol
	InfoType
)

type messageConfig struct {
	symbol string
	color  *fcolor.Color
}

// =============================================================================
// Public Functions
// =============================================================================

// Errorf writes an error message to the writer
func Errorf(writer io.Writer, format string, args ...any) {
	Write(writer, ErrorType, format, args...)
}

// Warningf writes a warning message to the writer
func Warningf(writer io.Writer, format string, args ...any) {
	Write(writer, WarningType, format, args...)
}

// Activityf writes a progress message to the writer
func Activityf(writer io.Writer, format string, args ...any) {
	Write(writer, ActivityType, format, args...)
}

// Successf writes a success message to the writer
func Successf(writer io.Writer, format string, args ...any) {
	Write(writer, SuccessType, format, args...)
}

// Infof writes an informational message to the writer
func Infof(writer io.Writer, format string, args ...any) {
	Write(writer, InfoType, format, args...)
}

// Write formats the message, prefixes it with the symbol of its type and writes it
// in the type's color. A nil writer defaults to os.Stderr. Continuation lines of
// multi-line content are indented under the first line.
func Write(writer io.Writer, msgType MessageType, format string, args ...any) {
	if writer == nil {
		writer = os.Stderr
	}

	content := format
	if len(args) > 0 {
		content = fmt.Sprintf(format, args...)
	}

	config := getMessageConfig(msgType)
	indent := strings.Repeat(" ", len([]rune(config.symbol)))
	content = strings.ReplaceAll(strings.TrimRight(content, "\n"), "\n", "\n"+indent)

	_, _ = config.color.Fprintf(writer, "%s%s\n", config.symbol, content)
}

// =============================================================================
// Private Functions
// =============================================================================

// getMessageConfig returns the symbol and color for a message type
func getMessageConfig(msgType MessageType) messageConfig {
	switch msgType {
	case ErrorType:
		return messageConfig{symbol: "✗ ", color: fcolor.New(fcolor.FgRed, fcolor.Bold)}
	case WarningType:
		return messageConfig{symbol: "⚠ ", color: fcolor.New(fcolor.FgYellow, fcolor.Bold)}
	case SuccessType:
		return messageConfig{symbol: "✔ ", color: fcolor.New(fcolor.FgGreen, fcolor.Bold)}
	case InfoType:
		return messageConfig{symbol: "ℹ ", color: fcolor.New(fcolor.FgBlue, fcolor.Bold)}
	default:
		return messageConfig{symbol: "► ", color: fcolor.New(fcolor.Reset)}
	}
}
