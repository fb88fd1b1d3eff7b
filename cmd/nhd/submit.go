package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/North-Head-Digital/nhd-website/pkg/config"
	"github.com/North-Head-Digital/nhd-website/pkg/endpoints"
	"github.com/North-Head-Digital/nhd-website/pkg/submission"
)

var (
	formEndpoint string
	formName     string
	formOrigin   string
	formValues   = map[string]*string{}
)

// endpointsCmd prints the resolved endpoint list
var endpointsCmd = &cobra.Command{
	Use:       "endpoints [contact|newsletter]",
	Short:     "Print the JSON endpoints a form would try, in order",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(endpoints.Contact), string(endpoints.Newsletter)},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}

		h := newHandler(kind)
		form := submission.NewValuesForm(formName, formEndpoint, nil)
		for _, ep := range h.Endpoints(form) {
			fmt.Fprintln(cmd.OutOrStdout(), ep)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "fallback: POST %s/ (%s)\n", strings.TrimRight(origin(), "/"), h.FormName(form))
		return nil
	},
}

// submitCmd pushes a payload through the submission chain
var submitCmd = &cobra.Command{
	Use:   "submit [contact|newsletter]",
	Short: "Submit a contact or newsletter form from the terminal",
	Long: `Runs the same chain as the website: JSON to each resolved endpoint in
order, then a form-encoded POST to the origin. Exits non-zero when every
strategy fails.

Example:
  nhd submit contact --name "Jo" --email jo@example.com --message "Hello"
  nhd submit newsletter --email jo@example.com --origin https://northheaddigital.com`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(endpoints.Contact), string(endpoints.Newsletter)},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}

		values := map[string]string{}
		for _, field := range submission.FieldsFor(kind) {
			if cmd.Flags().Changed(field) {
				values[field] = *formValues[field]
			}
		}
		if kind == endpoints.Newsletter && strings.TrimSpace(values["email"]) == "" {
			return errors.New("--email is required for newsletter submissions")
		}

		form := submission.NewValuesForm(formName, formEndpoint, values)
		res := newHandler(kind).Submit(cmd.Context(), form, &terminalUI{out: cmd.OutOrStdout(), logger: logger})
		if res.State != submission.Success {
			return fmt.Errorf("submission failed: %s", res.Message)
		}
		return nil
	},
}

func parseKind(arg string) (endpoints.Kind, error) {
	switch kind := endpoints.Kind(strings.ToLower(arg)); kind {
	case endpoints.Contact, endpoints.Newsletter:
		return kind, nil
	default:
		return "", fmt.Errorf("unknown form %q (want contact or newsletter)", arg)
	}
}

func origin() string {
	if formOrigin != "" {
		return formOrigin
	}
	return cfg.Client.Origin
}

func newHandler(kind endpoints.Kind) *submission.Handler {
	site := config.SiteSource(cfg.Site, cfg.Client.SiteConfigFile, func(err error) {
		logger.WithError(err).Warn("Failed to read site config, using configured values")
	})

	return submission.NewHandler(kind, submission.Options{
		Origin:  origin(),
		Client:  &http.Client{Timeout: cfg.Client.Timeout},
		Site:    site,
		Tracker: submission.LogTracker{Logger: logger},
		Logger:  logger,
	})
}

// terminalUI renders submission status as lines of text.
type terminalUI struct {
	out    io.Writer
	logger *logrus.Logger
}

func (u *terminalUI) ShowLoading(message string) { fmt.Fprintln(u.out, message) }
func (u *terminalUI) ShowSuccess(message string) { fmt.Fprintln(u.out, message) }
func (u *terminalUI) ShowError(message string)   { fmt.Fprintln(u.out, "error:", message) }
func (u *terminalUI) Reset()                     {}

func (u *terminalUI) StateChanged(from, to submission.State) {
	u.logger.WithFields(logrus.Fields{"from": from.String(), "to": to.String()}).Debug("Submission state changed")
}

func init() {
	for _, cmd := range []*cobra.Command{endpointsCmd, submitCmd} {
		cmd.Flags().StringVar(&formEndpoint, "endpoint", "", "Per-form endpoint override (tried first)")
		cmd.Flags().StringVar(&formName, "form-name", "", "Logical form name (default: the form kind)")
		cmd.Flags().StringVar(&formOrigin, "origin", "", "Page origin (default: client.origin from config)")
	}

	for _, field := range submission.ContactFields {
		formValues[field] = submitCmd.Flags().String(field, "", fmt.Sprintf("Value of the %s field", field))
	}
}
