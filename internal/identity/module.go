package identity

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/dinebite/internal/identity/inbound"
	"github.com/shandysiswandi/dinebite/internal/identity/outbound/db"
	"github.com/shandysiswandi/dinebite/internal/identity/outbound/mq"
	"github.com/shandysiswandi/dinebite/internal/identity/usecase"
	"github.com/shandysiswandi/dinebite/internal/pkg/clock"
	"github.com/shandysiswandi/dinebite/internal/pkg/config"
	"github.com/shandysiswandi/dinebite/internal/pkg/goroutine"
	"github.com/shandysiswandi/dinebite/internal/pkg/hash"
	"github.com/shandysiswandi/dinebite/internal/pkg/idempotency"
	"github.com/shandysiswandi/dinebite/internal/pkg/instrument"
	"github.com/shandysiswandi/dinebite/internal/pkg/jwt"
	"github.com/shandysiswandi/dinebite/internal/pkg/messaging"
	"github.com/shandysiswandi/dinebite/internal/pkg/otpcode"
	"github.com/shandysiswandi/dinebite/internal/pkg/router"
	"github.com/shandysiswandi/dinebite/internal/pkg/uid"
	"github.com/shandysiswandi/dinebite/internal/pkg/validator"
)

// Dependency carries the shared infrastructure the identity module uses.
type Dependency struct {
	// Ctx bounds background jobs. Without it no job is started.
	Ctx         context.Context
	DBConn      *pgxpool.Pool              `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Messaging   messaging.Messaging        `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	UUID        uid.StringID               `validate:"required"`
	HMAC        hash.Hash                  `validate:"required"`
	Password    hash.Hash                  `validate:"required"`
	OTP         otpcode.Generator          `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
	JWT         jwt.JWT                    `validate:"required"`
}

// New wires the identity repositories, use cases, HTTP routes and the
// expired code purge job.
func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoDB := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        repoDB,
		RepoMessaging: repoMsg,
		Idempotency:   dep.Idempotency,
		Validator:     dep.Validator,
		Config:        dep.Config,
		HMAC:          dep.HMAC,
		Password:      dep.Password,
		UID:           dep.UID,
		OTP:           dep.OTP,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)
	if dep.Ctx != nil {
		inbound.RegisterJob(dep.Ctx, dep.Goroutine, dep.UUID, uc)
	}

	return nil
}
