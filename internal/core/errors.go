package core

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Business-rule sentinels. Service methods wrap them in *RuleError; match
// with errors.Is.
var (
	ErrModelNotFound              = errors.New("model not found")
	ErrModelAlreadyExists         = errors.New("model already exists")
	ErrModelAlreadyInstalled      = errors.New("model already installed")
	ErrModelNotInstalled          = errors.New("model not installed")
	ErrModelHasInstalledInstances = errors.New("model has installed instances")
)

// RuleError reports a rejected business operation. Err carries the storage
// failure when a uniqueness constraint, rather than the pre-check, caught the
// violation.
type RuleError struct {
	Rule    error
	ModelID uuid.UUID
	Name    string
	Err     error
}

func (e *RuleError) Error() string {
	subject := e.Name
	if subject == "" && e.ModelID != uuid.Nil {
		subject = e.ModelID.String()
	}
	msg := e.Rule.Error()
	if subject != "" {
		msg = fmt.Sprintf("%s: %s", msg, subject)
	}
	if e.Err != nil {
		msg += " (" + e.Err.Error() + ")"
	}
	return msg
}

// Unwrap exposes both the rule sentinel and the storage cause.
func (e *RuleError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Rule}
	}
	return []error{e.Rule, e.Err}
}

func (s *Service) reject(rule error, id uuid.UUID, name string, cause error) error {
	s.log.Debug().Str("rule", rule.Error()).Str("model_id", id.String()).Str("name", name).Msg("operation rejected")
	return &RuleError{Rule: rule, ModelID: id, Name: name, Err: cause}
}
