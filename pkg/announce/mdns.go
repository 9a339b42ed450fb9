package announce

import (
	"net"

	"github.com/hashicorp/mdns"
	"github.com/pkg/errors"

	"github.com/lelibreauquotidien/yunomdns/internal/wrap"
)

var appNet wrap.Neter = wrap.Net{}

type mdnsEngine struct{}

// NewEngine returns an Engine backed by the hashicorp mdns responder.
func NewEngine() Engine {
	return &mdnsEngine{}
}

func (e *mdnsEngine) Open(iface string, ips []net.IP) (Session, error) {
	ifi, err := appNet.InterfaceByName(iface)
	if err != nil {
		return nil, errors.Wrapf(err, "bind mdns session to %s", iface)
	}

	return &mdnsSession{
		iface:   ifi,
		servers: map[string]*mdns.Server{},
	}, nil
}

// mdnsSession spawns one responder per registered record, all bound to
// the session's interface.
type mdnsSession struct {
	iface   *net.Interface
	servers map[string]*mdns.Server
}

func (s *mdnsSession) Register(r Record) error {
	zone, err := mdns.NewMDNSService(r.Instance, r.Service, r.Domain, r.Host, r.Port, r.IPs, nil)
	if err != nil {
		return errors.Wrapf(err, "build zone for %s", r.Host)
	}

	srv, err := mdns.NewServer(&mdns.Config{Zone: zone, Iface: s.iface})
	if err != nil {
		return errors.Wrapf(err, "publish %s on %s", r.Host, s.iface.Name)
	}

	s.servers[r.Instance] = srv
	return nil
}

func (s *mdnsSession) Withdraw(r Record) error {
	srv, found := s.servers[r.Instance]
	if !found {
		return nil
	}
	delete(s.servers, r.Instance)
	return srv.Shutdown()
}

func (s *mdnsSession) Close() error {
	// anything that wasn't withdrawn explicitly goes down with the session
	var firstErr error
	for instance, srv := range s.servers {
		delete(s.servers, instance)
		if err := srv.Shutdown(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
