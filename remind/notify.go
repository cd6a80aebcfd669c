package remind

import "log/slog"

// LogNotifier delivers reminders to the structured log. It stands in for a
// desktop notification surface on environments without one; permission is
// implicitly granted.
type LogNotifier struct {
	Log *slog.Logger
}

func (n LogNotifier) Notify(title, body string) error {
	log := n.Log
	if log == nil {
		log = slog.Default()
	}
	log.Info(title, "milestone", body)
	return nil
}
