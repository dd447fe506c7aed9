package notify

import "log"

// Notifier is how cart, session and order operations surface outcomes to the
// user. Errors never propagate past an operation boundary; they end up here.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier writes notifications to the standard logger.
type LogNotifier struct{}

func (LogNotifier) Success(msg string) { log.Printf("notify: %s", msg) }
func (LogNotifier) Error(msg string)   { log.Printf("notify error: %s", msg) }

// Discard drops all notifications.
type Discard struct{}

func (Discard) Success(string) {}
func (Discard) Error(string)   {}
