package usecase

import (
	"bytes"
	"context"
	"embed"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/shandysiswandi/dinebite/internal/pkg/clock"
	"github.com/shandysiswandi/dinebite/internal/pkg/config"
	"github.com/shandysiswandi/dinebite/internal/pkg/instrument"
	"github.com/shandysiswandi/dinebite/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

//go:embed templates
var templateFS embed.FS

type repoMail interface {
	SendPasswordResetOTP(ctx context.Context, to, subject, textBody, htmlBody string) error
}

// Usecase renders and sends notification emails.
type Usecase struct {
	cfg       config.Config
	clock     clock.Clocker
	validator validator.Validator
	repoMail  repoMail
	ins       instrument.Instrumentation
	html      *htmltemplate.Template
	text      *texttemplate.Template
}

// Dependency lists what NewNotification needs.
type Dependency struct {
	Config     config.Config
	Clock      clock.Clocker
	Validator  validator.Validator
	RepoMail   repoMail
	Instrument instrument.Instrumentation
}

// NewNotification parses the embedded email templates.
func NewNotification(dep Dependency) (*Usecase, error) {
	html, err := htmltemplate.New("").Option("missingkey=zero").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	text, err := texttemplate.New("").Option("missingkey=zero").ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, err
	}

	return &Usecase{
		cfg:       dep.Config,
		clock:     dep.Clock,
		validator: dep.Validator,
		repoMail:  dep.RepoMail,
		ins:       dep.Instrument,
		html:      html,
		text:      text,
	}, nil
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}

// render executes the html and text templates sharing a base name.
func (s *Usecase) render(name string, data map[string]any) (html, text string, err error) {
	var hb, tb bytes.Buffer
	if err := s.html.ExecuteTemplate(&hb, name+".html", data); err != nil {
		return "", "", err
	}
	if err := s.text.ExecuteTemplate(&tb, name+".txt", data); err != nil {
		return "", "", err
	}

	return hb.String(), tb.String(), nil
}

func (s *Usecase) baseEmailTemplateData() map[string]any {
	appName := s.cfg.GetString("app.name")
	if appName == "" {
		appName = "DineBite"
	}

	return map[string]any{
		"app_name":      appName,
		"support_email": s.cfg.GetString("modules.notification.support_email"),
		"company_name":  s.cfg.GetString("modules.notification.company_name"),
		"year":          s.clock.Now().Format("2006"),
	}
}
