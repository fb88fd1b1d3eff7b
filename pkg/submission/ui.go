package submission

import (
	"github.com/sirupsen/logrus"

	"github.com/North-Head-Digital/nhd-website/pkg/endpoints"
)

// UI is the status sink of one form: its status element and submit control.
type UI interface {
	// ShowLoading disables the control and shows the in-flight message.
	ShowLoading(message string)
	ShowSuccess(message string)
	ShowError(message string)
	// Reset re-enables the control and restores its original label.
	Reset()
}

// StateObserver may additionally be implemented by a UI to follow transitions.
type StateObserver interface {
	StateChanged(from, to State)
}

// Tracker is the analytics side channel. Calls are fire-and-forget.
type Tracker interface {
	Track(event string, props map[string]string)
}

// TrackerFunc adapts a function to Tracker.
type TrackerFunc func(event string, props map[string]string)

func (f TrackerFunc) Track(event string, props map[string]string) { f(event, props) }

// LogTracker writes analytics events to a logger.
type LogTracker struct {
	Logger logrus.FieldLogger
}

func (t LogTracker) Track(event string, props map[string]string) {
	fields := logrus.Fields{"event": event}
	for k, v := range props {
		fields["prop_"+k] = v
	}
	t.Logger.WithFields(fields).Info("Analytics event")
}

// Profile holds the user-facing texts and event names of one form kind.
type Profile struct {
	Kind         endpoints.Kind
	Loading      string
	Success      string
	JSONFailure  string // used when a rejected JSON response carries no message
	FormFailure  string // shown when the form-encoded fallback fails
	SuccessEvent string
	ErrorEvent   string
}

// GenericFailure is shown when no more specific message is available.
const GenericFailure = "Unable to submit your request right now."

var (
	ContactProfile = Profile{
		Kind:         endpoints.Contact,
		Loading:      "Sending your message...",
		Success:      "Thanks. Your request was submitted successfully.",
		JSONFailure:  "We could not send your message right now.",
		FormFailure:  "Unable to submit your message at this time.",
		SuccessEvent: "contact_submit_success",
		ErrorEvent:   "contact_submit_error",
	}

	NewsletterProfile = Profile{
		Kind:         endpoints.Newsletter,
		Loading:      "Submitting...",
		Success:      "Thanks for subscribing.",
		JSONFailure:  "Unable to subscribe right now.",
		FormFailure:  "Unable to subscribe right now.",
		SuccessEvent: "newsletter_subscribe_success",
		ErrorEvent:   "newsletter_subscribe_error",
	}
)

// ProfileFor returns the built-in profile for kind.
func ProfileFor(kind endpoints.Kind) Profile {
	if kind == endpoints.Newsletter {
		return NewsletterProfile
	}
	return ContactProfile
}
