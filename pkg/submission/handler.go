// Package submission delivers contact and newsletter form payloads: JSON to
// each resolved API endpoint in turn, then form-encoded to the page origin.
package submission

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/North-Head-Digital/nhd-website/pkg/common"
	"github.com/North-Head-Digital/nhd-website/pkg/endpoints"
	"github.com/North-Head-Digital/nhd-website/pkg/metrics"
	"github.com/North-Head-Digital/nhd-website/pkg/utils"
)

// Options configures a Handler. Only Origin is required.
type Options struct {
	// Origin is the page origin, e.g. https://northheaddigital.com. Its host
	// selects the default API base and it receives the form-encoded fallback.
	Origin string
	// Client performs every request. Defaults to a client without timeout.
	Client *http.Client
	// Site is consulted once per submission. Nil means an empty configuration.
	Site func() endpoints.SiteConfig
	// Tracker receives analytics events. Nil disables analytics.
	Tracker Tracker
	Logger  *logrus.Logger
	// Profile overrides the built-in texts of the kind.
	Profile *Profile
}

// Handler submits one kind of form.
type Handler struct {
	profile Profile
	origin  string
	client  *http.Client
	site    func() endpoints.SiteConfig
	tracker Tracker
	logger  *logrus.Logger
}

// Result describes a finished submission.
type Result struct {
	ID string
	// State is Success or Error.
	State   State
	Message string
	// Strategy names the strategy that delivered the payload.
	Strategy string
	Err      error
}

func NewHandler(kind endpoints.Kind, opts Options) *Handler {
	h := &Handler{
		profile: ProfileFor(kind),
		origin:  opts.Origin,
		client:  opts.Client,
		site:    opts.Site,
		tracker: opts.Tracker,
		logger:  opts.Logger,
	}
	if opts.Profile != nil {
		h.profile = *opts.Profile
	}
	if h.client == nil {
		h.client = &http.Client{}
	}
	if h.site == nil {
		h.site = func() endpoints.SiteConfig { return endpoints.SiteConfig{} }
	}
	if h.logger == nil {
		h.logger = logrus.StandardLogger()
	}
	return h
}

// Kind returns the form kind this handler submits.
func (h *Handler) Kind() endpoints.Kind {
	return h.profile.Kind
}

// FormName returns the logical name of form, defaulting to the kind.
func (h *Handler) FormName(form Form) string {
	if name := strings.TrimSpace(form.Name()); name != "" {
		return name
	}
	return string(h.profile.Kind)
}

// Endpoints resolves the JSON endpoints for form against the current site configuration.
func (h *Handler) Endpoints(form Form) []string {
	return endpoints.Resolve(h.profile.Kind, form.Endpoint(), h.site(), utils.HostFromOrigin(h.origin))
}

// Strategies returns the ordered chain for form: one JSON strategy per
// endpoint followed by the form-encoded fallback.
func (h *Handler) Strategies(form Form) []Strategy {
	eps := h.Endpoints(form)
	strategies := make([]Strategy, 0, len(eps)+1)
	for _, ep := range eps {
		strategies = append(strategies, &JSONStrategy{
			Endpoint: ep,
			Client:   h.client,
			Fallback: h.profile.JSONFailure,
		})
	}
	return append(strategies, &FormStrategy{
		Origin:   h.origin,
		FormName: h.FormName(form),
		Client:   h.client,
		Message:  h.profile.FormFailure,
	})
}

// Submit runs one submission of form to completion. The captured payload is
// sent as is; required fields are the caller's to check. The UI is reset on
// every exit path. Concurrent calls for the same form are not coordinated.
func (h *Handler) Submit(ctx context.Context, form Form, ui UI) Result {
	payload := Capture(h.profile.Kind, form)

	id := uuid.NewString()
	name := h.FormName(form)
	logger := h.logger.WithFields(logrus.Fields{
		"submission_id": id,
		"form":          name,
	})
	ctx = context.WithValue(ctx, common.LoggerKey, logger)

	state := Idle
	advance := func(next State) {
		if !state.CanTransition(next) {
			logger.WithFields(logrus.Fields{
				"from": state.String(),
				"to":   next.String(),
			}).Warn("Unexpected submission state transition")
		}
		prev := state
		state = next
		if obs, ok := ui.(StateObserver); ok {
			obs.StateChanged(prev, next)
		}
	}

	advance(Submitting)
	ui.ShowLoading(h.profile.Loading)

	start := time.Now()
	defer func() {
		ui.Reset()
		advance(Idle)
		if metrics.Config.EnableLatency {
			metrics.SubmissionLatency.WithLabelValues(name).Observe(float64(time.Since(start).Milliseconds()))
		}
	}()

	chain := &Chain{
		Strategies: h.Strategies(form),
		OnFailure: func(idx int, s Strategy, err error) {
			metrics.AttemptsTotal.WithLabelValues(name, strategyKind(s), failureStatus(err)).Inc()
			logger.WithFields(logrus.Fields{
				"attempt":  idx + 1,
				"strategy": s.Name(),
			}).WithError(err).Debug("Submission attempt failed")
		},
		OnSuccess: func(idx int, s Strategy) {
			metrics.AttemptsTotal.WithLabelValues(name, strategyKind(s), "success").Inc()
		},
	}

	winner, err := chain.Run(ctx, payload)
	if err != nil {
		msg := failureMessage(err)
		advance(Error)
		ui.ShowError(msg)
		h.track(h.profile.ErrorEvent, map[string]string{"form": name, "error": "true"})
		metrics.SubmissionsTotal.WithLabelValues(name, "error").Inc()
		logger.WithError(err).Warn("Form submission failed")
		return Result{ID: id, State: Error, Message: msg, Err: err}
	}

	advance(Success)
	form.Reset()
	h.track(h.profile.SuccessEvent, map[string]string{"form": name})
	ui.ShowSuccess(h.profile.Success)
	metrics.SubmissionsTotal.WithLabelValues(name, "success").Inc()
	logger.WithField("strategy", winner.Name()).Info("Form submitted")

	return Result{ID: id, State: Success, Message: h.profile.Success, Strategy: winner.Name()}
}

func (h *Handler) track(event string, props map[string]string) {
	if h.tracker == nil {
		return
	}
	h.tracker.Track(event, props)
}

// failureMessage picks the most specific visitor-facing message for err.
func failureMessage(err error) string {
	var rejected *RejectedError
	if errors.As(err, &rejected) && rejected.Message != "" {
		return rejected.Message
	}
	return GenericFailure
}

func failureStatus(err error) string {
	var rejected *RejectedError
	if errors.As(err, &rejected) && rejected.Status != 0 {
		return metrics.GetStatusClass(strconv.Itoa(rejected.Status))
	}
	return "transport_error"
}

func strategyKind(s Strategy) string {
	switch s.(type) {
	case *JSONStrategy:
		return "json"
	case *FormStrategy:
		return "form"
	default:
		return "custom"
	}
}
