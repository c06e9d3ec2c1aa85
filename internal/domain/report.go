package domain

// Level is the severity of a user-facing notification
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notifier shows a modal-style message to the user
type Notifier interface {
	Notify(level Level, title, message string)
}
