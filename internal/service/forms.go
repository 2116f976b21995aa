// Package service contains the application services behind the HTTP layer:
// per-visitor package forms and the audit log.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/guttosm/package-form/internal/form"
	"github.com/guttosm/package-form/internal/logger"
	"github.com/guttosm/package-form/internal/session"
)

// FormSession is one visitor's package form and its pending notifications.
type FormSession struct {
	ID            string
	Form          *form.Controller
	Notifications *form.Queue
}

// FormService hands out a mounted package form per session id.
type FormService interface {
	// Session returns the form for id, creating and mounting it on first use.
	Session(ctx context.Context, id string) (*FormSession, error)

	// End unmounts and forgets the form for id.
	End(id string)

	// Active returns the number of live sessions.
	Active() int

	// Stats returns session store counters.
	Stats() session.Metrics

	// Close unmounts every form and stops the expiry sweeper.
	Close()
}

// FormServiceConfig configures a FormService.
type FormServiceConfig struct {
	// Capacity is the number of live sessions; the least recently used goes first.
	Capacity int
	// TTL is how long an idle session lives.
	TTL time.Duration
	// SkipUnscopedLoad mounts forms with only the warehouse-scoped package
	// type request.
	SkipUnscopedLoad bool
	// QueueSize bounds the pending notifications per session.
	QueueSize int
}

// FormServiceImpl implements FormService on a session store.
type FormServiceImpl struct {
	api    form.API
	cfg    FormServiceConfig
	store  *session.Store[*FormSession]
	logger zerolog.Logger
}

// NewFormService creates a form service backed by api.
func NewFormService(api form.API, cfg FormServiceConfig) *FormServiceImpl {
	s := &FormServiceImpl{
		api:    api,
		cfg:    cfg,
		logger: logger.Logger(),
	}
	s.store = session.New(session.Config{
		Capacity: cfg.Capacity,
		TTL:      cfg.TTL,
	}, s.evicted)
	return s
}

// Session implements FormService. The mount outlives ctx's cancellation so a
// client hanging up mid-load does not leave the form with failed lists.
func (s *FormServiceImpl) Session(ctx context.Context, id string) (*FormSession, error) {
	sess, created := s.store.GetOrCreate(id, func() *FormSession {
		return s.newSession(id)
	})
	if !created {
		return sess, nil
	}

	s.logger.Debug().Str("session_id", id).Msg("Mounting package form")
	if err := sess.Form.Mount(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, form.ErrAlreadyMounted) {
		return nil, err
	}
	return sess, nil
}

func (s *FormServiceImpl) newSession(id string) *FormSession {
	queue := form.NewQueue(s.cfg.QueueSize)
	sessionLogger := logger.ForSession(id)
	return &FormSession{
		ID: id,
		Form: form.New(s.api,
			form.WithLogger(sessionLogger),
			form.WithNotifier(form.LoggingNotifier{Next: queue, Logger: sessionLogger}),
			form.WithSkipUnscopedLoad(s.cfg.SkipUnscopedLoad),
		),
		Notifications: queue,
	}
}

func (s *FormServiceImpl) evicted(id string, sess *FormSession) {
	sess.Form.Unmount()
	s.logger.Debug().Str("session_id", id).Msg("Package form unmounted")
}

// End implements FormService.
func (s *FormServiceImpl) End(id string) {
	s.store.Delete(id)
}

// Active implements FormService.
func (s *FormServiceImpl) Active() int {
	return s.store.Len()
}

// Stats implements FormService.
func (s *FormServiceImpl) Stats() session.Metrics {
	return s.store.Metrics()
}

// Close implements FormService.
func (s *FormServiceImpl) Close() {
	s.store.Stop()
}
