package service

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type State uint8

const (
	Unstarted State = iota
	Started
	Stopping
	Stopped
)

var ErrAlreadyStarted = errors.New("the service was already started in the past")

// Service implements a graceful start/stop lifecycle. A service can only
// be started once; after it has stopped it stays stopped.
type Service struct {
	name string

	// A context for long running operations of the service. It gets
	// cancelled as soon as the service receives a shutdown signal.
	ctx    context.Context
	cancel context.CancelFunc

	lk    sync.RWMutex
	state State

	// Closed when the service should start to gracefully shut down.
	shutdown chan struct{}

	// Closed when the service has shut down.
	done chan struct{}
}

func New(name string) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		name:     name,
		ctx:      ctx,
		cancel:   cancel,
		state:    Unstarted,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (s *Service) ServiceStarted() error {
	s.lk.Lock()
	defer s.lk.Unlock()

	if s.state != Unstarted {
		return ErrAlreadyStarted
	}
	s.state = Started
	log.WithField("service", s.name).Debugln("Service started")

	go func() {
		select {
		case <-s.shutdown:
		case <-s.done:
		}
		s.cancel()
	}()

	return nil
}

func (s *Service) ServiceStopped() {
	s.lk.Lock()
	defer s.lk.Unlock()

	if s.state == Unstarted || s.state == Stopped {
		return
	}
	s.state = Stopped
	log.WithField("service", s.name).Debugln("Service stopped")

	close(s.done)
}

// SigShutdown is closed as soon as the service received a shutdown request.
func (s *Service) SigShutdown() chan struct{} {
	return s.shutdown
}

// SigDone is closed as soon as the service has stopped.
func (s *Service) SigDone() chan struct{} {
	return s.done
}

func (s *Service) ServiceContext() context.Context {
	return s.ctx
}

func (s *Service) State() State {
	s.lk.RLock()
	defer s.lk.RUnlock()
	return s.state
}

// Shutdown requests a graceful shutdown and blocks until the service has
// stopped. Calling it more than once has no further effect.
func (s *Service) Shutdown() {
	s.lk.Lock()
	if s.state != Started {
		s.lk.Unlock()
		return
	}
	s.state = Stopping
	log.WithField("service", s.name).Debugln("Service shutting down")
	s.lk.Unlock()

	close(s.shutdown)
	<-s.done
}
