package workspace

import (
	"fmt"

	"github.com/nomocas/mini-wysiwyg/internal/log"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// canNotify reports whether context reaches a client
func canNotify(context *glsp.Context) bool {
	return context != nil && context.Notify != nil
}

// logMessage sends window/logMessage without blocking the handler
func logMessage(context *glsp.Context, messageType protocol.MessageType, message string) {
	if !canNotify(context) {
		return
	}
	go func() {
		context.Notify(protocol.ServerWindowLogMessage, &protocol.LogMessageParams{
			Type:    messageType,
			Message: message,
		})
	}()
}

// LogError logs an error message to stderr and optionally to the LSP client
func LogError(context *glsp.Context, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Error("%s", message)
	logMessage(context, protocol.MessageTypeError, message)
}

// LogWarning logs a warning message to stderr and optionally to the LSP client
func LogWarning(context *glsp.Context, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Warn("%s", message)
	logMessage(context, protocol.MessageTypeWarning, message)
}

// ShowMessage sends a message to be displayed to the user
func ShowMessage(context *glsp.Context, messageType protocol.MessageType, message string) {
	if !canNotify(context) {
		return
	}
	go func() {
		context.Notify(protocol.ServerWindowShowMessage, &protocol.ShowMessageParams{
			Type:    messageType,
			Message: message,
		})
	}()
}
