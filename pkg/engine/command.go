package engine

import "context"

// CommandOp is the type of engine command.
type CommandOp uint8

const (
	CmdSetValue CommandOp = 0x01 // Merge one field value
	CmdBlur     CommandOp = 0x02 // Mark a field touched
	CmdGoTo     CommandOp = 0x03 // Activate a section by ID
	CmdNext     CommandOp = 0x04 // Advance to the next section
	CmdPrevious CommandOp = 0x05 // Return to the previous section
	CmdSubmit   CommandOp = 0x06 // Run the submission lifecycle
	CmdCancel   CommandOp = 0x07 // Invoke the cancel callback
	CmdReset    CommandOp = 0x08 // Restore initial values and state
)

// String returns the string representation of the CommandOp.
func (op CommandOp) String() string {
	switch op {
	case CmdSetValue:
		return "SetValue"
	case CmdBlur:
		return "Blur"
	case CmdGoTo:
		return "GoTo"
	case CmdNext:
		return "Next"
	case CmdPrevious:
		return "Previous"
	case CmdSubmit:
		return "Submit"
	case CmdCancel:
		return "Cancel"
	case CmdReset:
		return "Reset"
	default:
		return "Unknown"
	}
}

// Command represents a single engine operation to apply.
type Command struct {
	Op      CommandOp // Operation type
	Field   string    // Field name (SetValue, Blur)
	Value   any       // New value (SetValue)
	Section string    // Target section ID (GoTo)
}

// Apply dispatches a command to the corresponding engine method.
// Widget layers that route user events through a single channel use
// this instead of the method API; the two are equivalent. The context
// feeds CmdSubmit; other commands ignore it. Unknown ops are no-ops.
func (e *Engine) Apply(ctx context.Context, cmd Command) error {
	switch cmd.Op {
	case CmdSetValue:
		e.SetValue(cmd.Field, cmd.Value)
	case CmdBlur:
		e.Blur(cmd.Field)
	case CmdGoTo:
		e.GoTo(cmd.Section)
	case CmdNext:
		e.Next()
	case CmdPrevious:
		e.Previous()
	case CmdSubmit:
		return e.Submit(ctx)
	case CmdCancel:
		e.Cancel()
	case CmdReset:
		e.Reset()
	default:
		e.logger.Debug("ignoring unknown command", "op", cmd.Op)
	}
	return nil
}
