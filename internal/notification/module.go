// Package notification delivers the emails other modules ask for through
// messaging events.
package notification

import (
	"context"
	"fmt"

	"github.com/shandysiswandi/dinebite/internal/notification/inbound"
	"github.com/shandysiswandi/dinebite/internal/notification/outbound/email"
	"github.com/shandysiswandi/dinebite/internal/notification/usecase"
	"github.com/shandysiswandi/dinebite/internal/pkg/clock"
	"github.com/shandysiswandi/dinebite/internal/pkg/config"
	"github.com/shandysiswandi/dinebite/internal/pkg/goroutine"
	"github.com/shandysiswandi/dinebite/internal/pkg/instrument"
	"github.com/shandysiswandi/dinebite/internal/pkg/mail"
	"github.com/shandysiswandi/dinebite/internal/pkg/messaging"
	"github.com/shandysiswandi/dinebite/internal/pkg/uid"
	"github.com/shandysiswandi/dinebite/internal/pkg/validator"
)

// Dependency carries the shared infrastructure the module consumes.
type Dependency struct {
	// Ctx bounds the consumers. Without it, or without Messaging, no
	// consumer is started and the module only validates its templates.
	Ctx        context.Context
	Messaging  messaging.Messaging
	Config     config.Config
	Instrument instrument.Instrumentation
	UUID       uid.StringID
	Clock      clock.Clocker
	Goroutine  *goroutine.Manager
	Validator  validator.Validator
	Mail       mail.Mail
}

// New wires the password reset email path: the
// password_reset_otp_issued consumer renders the code and mails it.
func New(dep Dependency) error {
	uc, err := usecase.NewNotification(usecase.Dependency{
		Config:     dep.Config,
		Clock:      dep.Clock,
		Validator:  dep.Validator,
		RepoMail:   email.New(dep.Mail, dep.Instrument),
		Instrument: dep.Instrument,
	})
	if err != nil {
		return fmt.Errorf("notification: parse email templates: %w", err)
	}

	if dep.Ctx == nil || dep.Messaging == nil {
		return nil
	}

	inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)

	return nil
}
