package netcfg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseFile(testContext(), fixturePath(t))
	require.NoError(t, err)
	return doc
}

func TestInterfaceLines(t *testing.T) {
	doc := loadFixture(t)
	lines := doc.InterfaceLines()
	require.Len(t, lines, 4)
	require.Equal(t, "interface Loopback0", lines[0].Text)
}

func TestInterfacesLoopback(t *testing.T) {
	doc := loadFixture(t)
	ifaces := doc.Interfaces(testContext())
	require.Len(t, ifaces, 4)

	lo := ifaces[0]
	require.Equal(t, "Loopback0", lo.Name)
	require.NotNil(t, lo.Description)
	require.Equal(t, "Management loopback", *lo.Description)
	require.NotNil(t, lo.VRF)
	require.Equal(t, "MGMT", *lo.VRF)
	require.NotNil(t, lo.Enabled)
	require.True(t, *lo.Enabled)
	require.Equal(t, []IPv4Address{
		{Address: "10.0.255.1", Mask: "255.255.255.255"},
	}, lo.IPv4)
	require.Nil(t, lo.OSPF)
}

func TestInterfacesEthernetFull(t *testing.T) {
	doc := loadFixture(t)
	eth := doc.Interfaces(testContext())[1]

	require.Equal(t, "Ethernet0/0", eth.Name)
	require.Equal(t, "Uplink to CoreSW", *eth.Description)
	require.True(t, *eth.Enabled)
	require.Equal(t, 100000, *eth.Bandwidth)
	require.Equal(t, 10, *eth.Delay)
	require.Equal(t, 30, *eth.LoadInterval)
	require.Equal(t, 9000, *eth.MTU)
	require.Equal(t, 1400, *eth.IPMTU)
	require.NotNil(t, eth.CDP)
	require.True(t, *eth.CDP)
	require.Nil(t, eth.LLDP)

	require.Equal(t, []IPv4Address{
		{Address: "10.0.0.1", Mask: "255.255.255.0"},
		{Address: "10.0.1.1", Mask: "255.255.255.0", Secondary: true},
	}, eth.IPv4)
}

func TestInterfacesOSPF(t *testing.T) {
	doc := loadFixture(t)
	ospf := doc.Interfaces(testContext())[1].OSPF
	require.NotNil(t, ospf)

	require.Equal(t, 1, *ospf.ProcessID)
	require.Equal(t, 0, *ospf.Area)
	require.Equal(t, "point-to-point", *ospf.NetworkType)
	require.Equal(t, 150, *ospf.Cost)
	require.Equal(t, 200, *ospf.Priority)
	require.NotNil(t, ospf.BFD)
	require.Equal(t, "enabled", *ospf.BFD)
	require.Equal(t, map[string]int{"hello": 5, "dead": 20}, ospf.Timers)
	require.NotNil(t, ospf.Authentication)
	require.Equal(t, "key-chain", ospf.Authentication.Method)
	require.Equal(t, "OSPF-KEYS", ospf.Authentication.Keychain)
}

func TestInterfacesShutdownAndLLDP(t *testing.T) {
	doc := loadFixture(t)
	eth := doc.Interfaces(testContext())[2]

	require.Equal(t, "Ethernet0/1", eth.Name)
	require.NotNil(t, eth.Enabled)
	require.False(t, *eth.Enabled)
	require.NotNil(t, eth.CDP)
	require.False(t, *eth.CDP)
	require.NotNil(t, eth.LLDP)
	require.NotNil(t, eth.LLDP.Transmit)
	require.False(t, *eth.LLDP.Transmit)
	require.NotNil(t, eth.LLDP.Receive)
	require.True(t, *eth.LLDP.Receive)
}

func TestInterfacesBare(t *testing.T) {
	doc := loadFixture(t)
	eth := doc.Interfaces(testContext())[3]

	require.Equal(t, "Ethernet0/2", eth.Name)
	require.Nil(t, eth.Description)
	require.Nil(t, eth.Enabled, "admin state without explicit config is unknown")
	require.Nil(t, eth.IPv4)
	require.Nil(t, eth.OSPF)
	require.Nil(t, eth.CDP)
	require.Nil(t, eth.LLDP)
}
