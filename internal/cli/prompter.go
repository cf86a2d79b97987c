package cli

import (
	"errors"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/AlecAivazis/survey/v2"

	"ragchat/client/internal/interfaces"
)

// SurveyPrompter asks questions on the terminal and prints alerts to stderr.
type SurveyPrompter struct {
	errOut  io.Writer
	opts    []survey.AskOpt
	alerted atomic.Bool
}

func NewSurveyPrompter(errOut io.Writer, opts ...survey.AskOpt) *SurveyPrompter {
	return &SurveyPrompter{errOut: errOut, opts: opts}
}

func (p *SurveyPrompter) Confirm(message string) bool {
	confirm := false
	if err := survey.AskOne(&survey.Confirm{Message: message}, &confirm, p.opts...); err != nil {
		slog.Debug("Confirmation prompt failed", "error", err)
		return false
	}
	return confirm
}

func (p *SurveyPrompter) Alert(message string) {
	p.alerted.Store(true)
	errorColor.Fprintln(p.errOut, message)
}

// Alerted reports whether an alert has been shown since startup.
func (p *SurveyPrompter) Alerted() bool {
	return p.alerted.Load()
}

// AskCredentials fills in whichever of email and password is still empty.
func (p *SurveyPrompter) AskCredentials(email, password *string) error {
	var qs []*survey.Question
	if *email == "" {
		qs = append(qs, &survey.Question{Name: "email", Prompt: &survey.Input{Message: "Email:"}, Validate: survey.Required})
	}
	if *password == "" {
		qs = append(qs, &survey.Question{Name: "password", Prompt: &survey.Password{Message: "Password:"}, Validate: survey.Required})
	}
	if len(qs) == 0 {
		return nil
	}
	answers := struct {
		Email    string
		Password string
	}{}
	if err := survey.Ask(qs, &answers, p.opts...); err != nil {
		return err
	}
	if answers.Email != "" {
		*email = answers.Email
	}
	if answers.Password != "" {
		*password = answers.Password
	}
	return nil
}

// assumeYes confirms everything and forwards alerts.
type assumeYes struct {
	interfaces.Prompter
}

func (assumeYes) Confirm(string) bool { return true }

// credentialAsker is implemented by prompters that can ask for a login.
type credentialAsker interface {
	AskCredentials(email, password *string) error
}

var errNoCredentials = errors.New("email and password are required")
