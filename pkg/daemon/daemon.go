package daemon

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/lelibreauquotidien/yunomdns/pkg/announce"
	"github.com/lelibreauquotidien/yunomdns/pkg/config"
	"github.com/lelibreauquotidien/yunomdns/pkg/netinfo"
	"github.com/lelibreauquotidien/yunomdns/pkg/service"
)

// resolveAddrs wraps the interface inspection for testing.
var resolveAddrs = netinfo.Interfaces

// Daemon drives the announcer through its lifecycle: load the config,
// resolve the interface addresses, build and register the records, then
// hold them live until the context is cancelled or Shutdown is called.
type Daemon struct {
	*service.Service
	announcer *announce.Announcer
}

func New(engine announce.Engine) *Daemon {
	return &Daemon{
		Service:   service.New("daemon"),
		announcer: announce.NewAnnouncer(engine),
	}
}

// Run blocks until the given context is cancelled or the daemon is shut
// down. The returned error is nil for every condition that still counts
// as a clean run, notably an empty interface list and per-interface
// registration failures. Only an unusable config or a failed network
// state query surface as errors.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.ServiceStarted(); err != nil {
		return err
	}
	defer d.ServiceStopped()

	conf, err := config.Load(config.Global.ConfigFile)
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	if err = conf.Validate(); err != nil {
		return err
	}

	if len(conf.Interfaces) == 0 {
		log.Infoln("No interfaces configured, nothing to announce")
		return nil
	}

	conf.EnsureDefaultDomain()

	resolved, err := resolveAddrs()
	if err != nil {
		return err
	}

	groups := announce.Build(conf.Interfaces, conf.Domains, resolved)
	published := d.announcer.Announce(groups)
	log.WithField("records", published).Infoln("Announcing, waiting for termination signal")

	select {
	case <-ctx.Done():
	case <-d.SigShutdown():
	}

	log.Infoln("Withdrawing all records")
	d.announcer.Shutdown()

	return nil
}
