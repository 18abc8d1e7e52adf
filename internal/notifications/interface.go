package notifications

// Notifier delivers out-of-band alerts about trading activity.
type Notifier interface {
	SendAlert(level, message string) error
}

// NopNotifier discards all alerts. Used when no notification channel is
// configured.
type NopNotifier struct{}

func (NopNotifier) SendAlert(level, message string) error { return nil }
