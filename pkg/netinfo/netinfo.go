package netinfo

import (
	"net"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/lelibreauquotidien/yunomdns/internal/wrap"
)

var appNet wrap.Neter = wrap.Net{}

// InterfaceAddress holds at most one address per family for a single
// network interface. Both fields may be nil when the interface carries
// no usable address, which is not an error.
type InterfaceAddress struct {
	Name string
	IPv4 net.IP
	IPv6 net.IP
}

func (ia InterfaceAddress) Empty() bool {
	return ia.IPv4 == nil && ia.IPv6 == nil
}

// IPs returns the resolved addresses, IPv4 first. The slice has one or
// two entries, or none for an interface without addresses.
func (ia InterfaceAddress) IPs() []net.IP {
	var ips []net.IP
	if ia.IPv4 != nil {
		ips = append(ips, ia.IPv4)
	}
	if ia.IPv6 != nil {
		ips = append(ips, ia.IPv6)
	}
	return ips
}

// Interfaces queries the OS for all network interfaces and their
// currently assigned addresses. The loopback interface is excluded
// entirely and loopback ranges are filtered from the remaining
// interfaces. Per interface the first address of each family wins.
func Interfaces() (map[string]InterfaceAddress, error) {
	ifaces, err := appNet.Interfaces()
	if err != nil {
		return nil, errors.Wrap(err, "query network interfaces")
	}

	resolved := map[string]InterfaceAddress{}
	for i := range ifaces {
		iface := ifaces[i]
		if iface.Flags&net.FlagLoopback != 0 || iface.Name == "lo" {
			continue
		}

		ia := InterfaceAddress{Name: iface.Name}

		addrs, err := appNet.InterfaceAddrs(&iface)
		if err != nil {
			log.WithError(err).WithField("iface", iface.Name).Warnln("Couldn't read interface addresses")
			resolved[iface.Name] = ia
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok || ipnet.IP.IsLoopback() {
				continue
			}
			if v4 := ipnet.IP.To4(); v4 != nil {
				if ia.IPv4 == nil {
					ia.IPv4 = v4
				}
			} else if ia.IPv6 == nil {
				ia.IPv6 = ipnet.IP.To16()
			}
		}

		resolved[iface.Name] = ia
	}

	return resolved, nil
}
