package wrap

import (
	stdnet "net"
)

type Neter interface {
	Interfaces() ([]stdnet.Interface, error)
	InterfaceAddrs(iface *stdnet.Interface) ([]stdnet.Addr, error)
	InterfaceByName(name string) (*stdnet.Interface, error)
}

type Net struct{}

func (n Net) Interfaces() ([]stdnet.Interface, error) {
	return stdnet.Interfaces()
}

func (n Net) InterfaceAddrs(iface *stdnet.Interface) ([]stdnet.Addr, error) {
	return iface.Addrs()
}

func (n Net) InterfaceByName(name string) (*stdnet.Interface, error) {
	return stdnet.InterfaceByName(name)
}
