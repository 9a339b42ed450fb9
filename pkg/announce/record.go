package announce

import (
	"net"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/lelibreauquotidien/yunomdns/pkg/netinfo"
)

const (
	// ServiceType is the fixed DNS-SD service every domain is announced under.
	ServiceType = "_device-info._tcp"

	// ServiceDomain is the reserved top level label for multicast name resolution.
	ServiceDomain = "local."

	// ServicePort is fixed. The records exist to resolve names, the
	// port carries no meaning beyond pointing at the web server.
	ServicePort = 80

	localSuffix = ".local"
)

// Record is a single mDNS announcement that binds one domain to one
// interface's current addresses. Records are built once at startup and
// never mutated afterwards.
type Record struct {
	Instance string
	Service  string
	Domain   string
	Host     string
	Port     int
	IPs      []net.IP
}

// Group collects the records announced through one interface's session
// together with the addresses that session binds to.
type Group struct {
	Iface   string
	IPs     []net.IP
	Records []Record
}

// Label strips the local suffix from a configured domain.
func Label(domain string) string {
	return strings.TrimSuffix(domain, localSuffix)
}

// IsSubdomain reports whether the domain has labels beneath the local
// suffix, e.g. "sub.example.local".
func IsSubdomain(domain string) bool {
	return strings.Contains(Label(domain), ".")
}

// NewRecord builds the announcement for one (interface, domain) pair.
func NewRecord(iface, domain string, ips []net.IP) Record {
	label := Label(domain)
	return Record{
		Instance: iface + ": " + label,
		Service:  ServiceType,
		Domain:   ServiceDomain,
		Host:     label + localSuffix + ".",
		Port:     ServicePort,
		IPs:      ips,
	}
}

// Build walks the configured interfaces and domains and produces the
// record groups to announce, one group per interface that resolved at
// least one address. Bad units are skipped with a diagnostic and never
// abort their siblings: a configured interface that doesn't exist on
// this host drops only that interface, an unsupported domain drops only
// that domain.
func Build(interfaces []string, domains []string, resolved map[string]netinfo.InterfaceAddress) []Group {
	groups := make([]Group, 0, len(interfaces))
	for _, ifaceName := range interfaces {
		ia, found := resolved[ifaceName]
		if !found {
			log.WithField("iface", ifaceName).Warnln("Configured interface was not found on this host, skipping it")
			continue
		}
		if ia.Empty() {
			log.WithField("iface", ifaceName).Debugln("Interface has no usable address, nothing to announce on it")
			continue
		}

		group := Group{Iface: ifaceName, IPs: ia.IPs()}
		for _, domain := range domains {
			if IsSubdomain(domain) {
				log.WithField("domain", domain).Warnln("Subdomains are not supported, skipping it")
				continue
			}
			group.Records = append(group.Records, NewRecord(ifaceName, domain, ia.IPs()))
		}

		groups = append(groups, group)
	}
	return groups
}
