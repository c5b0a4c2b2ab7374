// Package services names the well-known TCP services a reachability
// target is likely to expose on a home network.
package services

import (
	"net"
	"strconv"
)

// tcpServices maps well-known TCP ports to service names.
var tcpServices = map[int]string{
	// Network plumbing
	22:  "ssh",
	53:  "dns",
	80:  "http",
	443: "https",
	853: "dns-tls",

	// File sharing
	139:  "netbios-ssn",
	445:  "smb",
	548:  "afp",
	2049: "nfs",

	// Home server apps
	1883:  "mqtt",
	3000:  "adguard",
	5000:  "synology",
	8006:  "proxmox",
	8080:  "http-alt",
	8096:  "jellyfin",
	8123:  "home-assistant",
	8443:  "https-alt",
	9000:  "portainer",
	32400: "plex",
	51820: "wireguard",
}

// Lookup returns the service name for a TCP port, or "" when unknown.
func Lookup(port int) string {
	return tcpServices[port]
}

// ForTarget returns the service name for the port of a host:port target.
func ForTarget(target string) string {
	_, port, err := net.SplitHostPort(target)
	if err != nil {
		return ""
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return ""
	}
	return Lookup(n)
}
