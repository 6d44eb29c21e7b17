package netcfg

import (
	"context"
	"regexp"
	"strconv"

	"github.com/ashkalikava/net-parser/internal/ctxlog"
)

// Interface is the structured model extracted from one interface section.
// Pointer fields are nil when the configuration does not state a value; for
// tri-state settings such as the admin state this is distinct from false.
type Interface struct {
	Name         string
	Description  *string
	Enabled      *bool
	VRF          *string
	MTU          *int
	IPMTU        *int
	Bandwidth    *int
	Delay        *int
	LoadInterval *int
	CDP          *bool
	LLDP         *LLDPConfig
	IPv4         []IPv4Address
	OSPF         *OSPFConfig
}

// LLDPConfig captures per-interface LLDP transmit/receive switches.
type LLDPConfig struct {
	Transmit *bool
	Receive  *bool
}

// IPv4Address is one address statement of an interface.
type IPv4Address struct {
	Address   string
	Mask      string
	Secondary bool
}

// OSPFConfig is the per-interface OSPF configuration.
type OSPFConfig struct {
	ProcessID      *int
	Area           *int
	NetworkType    *string
	Cost           *int
	Priority       *int
	BFD            *string
	Timers         map[string]int
	Authentication *OSPFAuthentication
}

// OSPFAuthentication holds the interface OSPF authentication settings.
type OSPFAuthentication struct {
	Method         string
	Keychain       string
	Key            string
	EncryptionType int
}

var (
	interfaceRegex    = regexp.MustCompile(`^interface (?P<name>\S.*)$`)
	descriptionRegex  = regexp.MustCompile(`^description (?P<description>.*)$`)
	ipv4AddrRegex     = regexp.MustCompile(`^ip address (?P<address>(?:\d{1,3}\.){3}\d{1,3}) (?P<mask>(?:\d{1,3}\.){3}\d{1,3})(?: (?P<secondary>secondary))?`)
	vrfRegex          = regexp.MustCompile(`^(?:ip )?vrf forwarding (?P<vrf>\S+)`)
	shutdownRegex     = regexp.MustCompile(`^shutdown$`)
	noShutdownRegex   = regexp.MustCompile(`^no shutdown$`)
	cdpRegex          = regexp.MustCompile(`^cdp enable`)
	noCdpRegex        = regexp.MustCompile(`^no cdp enable`)
	lldpTransmitRegex = regexp.MustCompile(`^(?P<no>no )?lldp transmit`)
	lldpReceiveRegex  = regexp.MustCompile(`^(?P<no>no )?lldp receive`)
	mtuRegex          = regexp.MustCompile(`^mtu (?P<mtu>\d+)`)
	ipMtuRegex        = regexp.MustCompile(`^ip mtu (?P<ip_mtu>\d+)`)
	bandwidthRegex    = regexp.MustCompile(`^bandwidth (?P<bandwidth>\d+)`)
	delayRegex        = regexp.MustCompile(`^delay (?P<delay>\d+)`)
	loadIntervalRegex = regexp.MustCompile(`^load-interval (?P<load_interval>\d+)`)

	ospfProcessRegex     = regexp.MustCompile(`^ip ospf (?P<process_id>\d+) area (?P<area>\d+)$`)
	ospfNetworkTypeRegex = regexp.MustCompile(`^ip ospf network (?P<network_type>\S+)`)
	ospfPriorityRegex    = regexp.MustCompile(`^ip ospf priority (?P<priority>\d+)`)
	ospfCostRegex        = regexp.MustCompile(`^ip ospf cost (?P<cost>\d+)`)
	ospfBfdRegex         = regexp.MustCompile(`^ip ospf bfd(?: (?:(?P<disable>disable)|(?P<strict_mode>strict-mode)))?`)
	ospfTimersRegex      = regexp.MustCompile(`^ip ospf (?P<timer>\S+?)-interval (?P<interval>\d+)$`)
	ospfAuthMethodRegex  = regexp.MustCompile(`^ip ospf authentication (?P<method>\S+)(?: (?P<keychain>\S+))?`)
	ospfAuthKeyRegex     = regexp.MustCompile(`^ip ospf authentication-key(?: (?P<encryption_type>\d))? (?P<value>\S+)`)
)

// InterfaceLines returns the lines opening an interface section.
func (d *Document) InterfaceLines() []*Line {
	return d.FindLines(interfaceRegex)
}

// Interfaces extracts the structured model of every interface section.
func (d *Document) Interfaces(ctx context.Context) []*Interface {
	logger := ctxlog.FromContext(ctx)
	lines := d.InterfaceLines()

	out := make([]*Interface, 0, len(lines))
	for _, line := range lines {
		iface := parseInterface(line)
		logger.Debug("Built interface model.", "interface", iface.Name)
		out = append(out, iface)
	}
	return out
}

func parseInterface(line *Line) *Interface {
	name, _ := line.Group(interfaceRegex, "name")
	iface := &Interface{Name: name}

	if desc, ok := line.FirstChildGroup(descriptionRegex, "description"); ok {
		iface.Description = &desc
	}
	if vrf, ok := line.FirstChildGroup(vrfRegex, "vrf"); ok {
		iface.VRF = &vrf
	}

	// Admin state is tri-state: an explicit shutdown wins, an explicit
	// no-shutdown enables, and silence leaves the platform default (nil).
	if len(line.FindChildren(shutdownRegex)) > 0 {
		iface.Enabled = boolPtr(false)
	} else if len(line.FindChildren(noShutdownRegex)) > 0 {
		iface.Enabled = boolPtr(true)
	}

	if len(line.FindChildren(cdpRegex)) > 0 {
		iface.CDP = boolPtr(true)
	} else if len(line.FindChildren(noCdpRegex)) > 0 {
		iface.CDP = boolPtr(false)
	}
	iface.LLDP = parseLLDP(line)

	iface.MTU = line.firstChildInt(mtuRegex, "mtu")
	iface.IPMTU = line.firstChildInt(ipMtuRegex, "ip_mtu")
	iface.Bandwidth = line.firstChildInt(bandwidthRegex, "bandwidth")
	iface.Delay = line.firstChildInt(delayRegex, "delay")
	iface.LoadInterval = line.firstChildInt(loadIntervalRegex, "load_interval")

	for _, addr := range line.FindChildren(ipv4AddrRegex) {
		groups, _ := addr.Groups(ipv4AddrRegex)
		iface.IPv4 = append(iface.IPv4, IPv4Address{
			Address:   groups["address"],
			Mask:      groups["mask"],
			Secondary: groups["secondary"] != "",
		})
	}

	iface.OSPF = parseOSPF(line)
	return iface
}

func parseLLDP(line *Line) *LLDPConfig {
	cfg := &LLDPConfig{}
	if groups, ok := line.FirstChildGroups(lldpTransmitRegex); ok {
		cfg.Transmit = boolPtr(groups["no"] == "")
	}
	if groups, ok := line.FirstChildGroups(lldpReceiveRegex); ok {
		cfg.Receive = boolPtr(groups["no"] == "")
	}
	if cfg.Transmit == nil && cfg.Receive == nil {
		return nil
	}
	return cfg
}

func parseOSPF(line *Line) *OSPFConfig {
	cfg := &OSPFConfig{}
	found := false

	if groups, ok := line.FirstChildGroups(ospfProcessRegex); ok {
		cfg.ProcessID = intPtr(groups["process_id"])
		cfg.Area = intPtr(groups["area"])
		found = true
	}
	if networkType, ok := line.FirstChildGroup(ospfNetworkTypeRegex, "network_type"); ok {
		cfg.NetworkType = &networkType
		found = true
	}
	if cost := line.firstChildInt(ospfCostRegex, "cost"); cost != nil {
		cfg.Cost = cost
		found = true
	}
	if priority := line.firstChildInt(ospfPriorityRegex, "priority"); priority != nil {
		cfg.Priority = priority
		found = true
	}
	if groups, ok := line.FirstChildGroups(ospfBfdRegex); ok {
		state := "enabled"
		if groups["disable"] != "" {
			state = "disabled"
		} else if groups["strict_mode"] != "" {
			state = "strict-mode"
		}
		cfg.BFD = &state
		found = true
	}

	for _, timer := range line.FindChildren(ospfTimersRegex) {
		groups, _ := timer.Groups(ospfTimersRegex)
		interval, err := strconv.Atoi(groups["interval"])
		if err != nil {
			continue
		}
		if cfg.Timers == nil {
			cfg.Timers = make(map[string]int)
		}
		cfg.Timers[groups["timer"]] = interval
		found = true
	}

	method, hasMethod := line.FirstChildGroups(ospfAuthMethodRegex)
	key, hasKey := line.FirstChildGroups(ospfAuthKeyRegex)
	if hasMethod || hasKey {
		auth := &OSPFAuthentication{}
		if hasMethod {
			auth.Method = method["method"]
			auth.Keychain = method["keychain"]
		}
		if hasKey {
			auth.Key = key["value"]
			if key["encryption_type"] != "" {
				auth.EncryptionType, _ = strconv.Atoi(key["encryption_type"])
			}
		}
		cfg.Authentication = auth
		found = true
	}

	if !found {
		return nil
	}
	return cfg
}

// firstChildInt parses the first matching descendant's named group as an int.
func (l *Line) firstChildInt(re *regexp.Regexp, group string) *int {
	val, ok := l.FirstChildGroup(re, group)
	if !ok {
		return nil
	}
	return intPtr(val)
}

func intPtr(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func boolPtr(b bool) *bool {
	return &b
}
