package core

// Logger is any service that can log leveled messages. Implementations may
// inspect trailing args for well-known types (eg. a user.User to attribute
// the event to).
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
