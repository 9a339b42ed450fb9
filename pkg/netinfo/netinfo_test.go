package netinfo

import (
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lelibreauquotidien/yunomdns/internal/wrap"
)

type testNet struct {
	ifaces    []net.Interface
	ifacesErr error
	addrs     map[string][]net.Addr
	addrsErr  map[string]error
}

func (t testNet) Interfaces() ([]net.Interface, error) {
	return t.ifaces, t.ifacesErr
}

func (t testNet) InterfaceAddrs(iface *net.Interface) ([]net.Addr, error) {
	if err, found := t.addrsErr[iface.Name]; found {
		return nil, err
	}
	return t.addrs[iface.Name], nil
}

func (t testNet) InterfaceByName(name string) (*net.Interface, error) {
	for i := range t.ifaces {
		if t.ifaces[i].Name == name {
			return &t.ifaces[i], nil
		}
	}
	return nil, fmt.Errorf("no such network interface")
}

func ipNet(t *testing.T, cidr string) *net.IPNet {
	t.Helper()
	ip, n, err := net.ParseCIDR(cidr)
	require.NoError(t, err)
	n.IP = ip
	return n
}

func setup(t *testing.T, tn testNet) {
	appNet = tn
	t.Cleanup(func() { appNet = wrap.Net{} })
}

func TestInterfaces_returnsErrorOfQuery(t *testing.T) {
	expectedErr := fmt.Errorf("some error")
	setup(t, testNet{ifacesErr: expectedErr})

	resolved, err := Interfaces()
	assert.Nil(t, resolved)
	assert.ErrorIs(t, err, expectedErr)
}

func TestInterfaces_excludesLoopbackInterface(t *testing.T) {
	setup(t, testNet{
		ifaces: []net.Interface{
			{Name: "lo", Flags: net.FlagUp | net.FlagLoopback},
			{Name: "eth0", Flags: net.FlagUp},
		},
		addrs: map[string][]net.Addr{
			"lo":   {ipNet(t, "127.0.0.1/8")},
			"eth0": {ipNet(t, "192.168.1.10/24")},
		},
	})

	resolved, err := Interfaces()
	require.NoError(t, err)
	assert.NotContains(t, resolved, "lo")
	assert.Contains(t, resolved, "eth0")
}

func TestInterfaces_excludesLoopbackInterfaceByName(t *testing.T) {
	// no loopback flag set, the name alone must be enough
	setup(t, testNet{
		ifaces: []net.Interface{{Name: "lo", Flags: net.FlagUp}},
	})

	resolved, err := Interfaces()
	require.NoError(t, err)
	assert.NotContains(t, resolved, "lo")
}

func TestInterfaces_filtersLoopbackRanges(t *testing.T) {
	setup(t, testNet{
		ifaces: []net.Interface{{Name: "eth0", Flags: net.FlagUp}},
		addrs: map[string][]net.Addr{
			"eth0": {
				ipNet(t, "127.0.0.53/8"),
				ipNet(t, "::1/128"),
				ipNet(t, "192.168.1.10/24"),
				ipNet(t, "fe80::1/64"),
			},
		},
	})

	resolved, err := Interfaces()
	require.NoError(t, err)

	eth0 := resolved["eth0"]
	assert.Equal(t, net.ParseIP("192.168.1.10").To4(), eth0.IPv4)
	assert.Equal(t, net.ParseIP("fe80::1").To16(), eth0.IPv6)
}

func TestInterfaces_firstAddressPerFamilyWins(t *testing.T) {
	setup(t, testNet{
		ifaces: []net.Interface{{Name: "eth0", Flags: net.FlagUp}},
		addrs: map[string][]net.Addr{
			"eth0": {
				ipNet(t, "192.168.1.10/24"),
				ipNet(t, "10.0.0.5/8"),
				ipNet(t, "fe80::1/64"),
				ipNet(t, "fe80::2/64"),
			},
		},
	})

	resolved, err := Interfaces()
	require.NoError(t, err)

	eth0 := resolved["eth0"]
	assert.Equal(t, net.ParseIP("192.168.1.10").To4(), eth0.IPv4)
	assert.Equal(t, net.ParseIP("fe80::1").To16(), eth0.IPv6)
	assert.Len(t, eth0.IPs(), 2)
}

func TestInterfaces_interfaceWithoutAddressesIsKept(t *testing.T) {
	setup(t, testNet{
		ifaces: []net.Interface{{Name: "wlan0", Flags: net.FlagUp}},
	})

	resolved, err := Interfaces()
	require.NoError(t, err)

	wlan0, found := resolved["wlan0"]
	require.True(t, found)
	assert.True(t, wlan0.Empty())
	assert.Empty(t, wlan0.IPs())
}

func TestInterfaces_addrsErrorSkipsOnlyThatInterface(t *testing.T) {
	setup(t, testNet{
		ifaces: []net.Interface{
			{Name: "eth0", Flags: net.FlagUp},
			{Name: "eth1", Flags: net.FlagUp},
		},
		addrs: map[string][]net.Addr{
			"eth1": {ipNet(t, "192.168.1.11/24")},
		},
		addrsErr: map[string]error{"eth0": fmt.Errorf("some error")},
	})

	resolved, err := Interfaces()
	require.NoError(t, err)

	assert.True(t, resolved["eth0"].Empty())
	assert.Equal(t, net.ParseIP("192.168.1.11").To4(), resolved["eth1"].IPv4)
}

func TestInterfaceAddress_IPsOrder(t *testing.T) {
	ia := InterfaceAddress{
		Name: "eth0",
		IPv4: net.ParseIP("192.168.1.10").To4(),
		IPv6: net.ParseIP("fe80::1").To16(),
	}
	ips := ia.IPs()
	require.Len(t, ips, 2)
	assert.Equal(t, ia.IPv4, ips[0])
	assert.Equal(t, ia.IPv6, ips[1])
}
