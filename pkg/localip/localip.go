// Package localip discovers the host's outbound IP address. It is used to
// build a reachable default base URL when none is configured.
package localip

import "net"

const (
	probeAddr   = "8.8.8.8:80"
	networkType = "udp"
)

// Get returns the local IP address used for outbound traffic by opening a
// UDP socket towards a public resolver. No packets are sent.
func Get() (string, error) {
	conn, err := net.Dial(networkType, probeAddr)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	return conn.LocalAddr().(*net.UDPAddr).IP.String(), nil
}
