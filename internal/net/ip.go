package net

import (
	"net"

	"SmartDesk/internal/logging"
)

// GetOutgoingIP finds the preferred local IP address to show in the feed URL.
func GetOutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// No route to the internet; fall back to the interfaces.
		return getLocalIPFallback()
	}
	defer conn.Close()

	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

func getLocalIPFallback() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "127.0.0.1"
	}
	for _, address := range addrs {
		if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
			return ipnet.IP.String()
		}
	}
	logging.Logger.Warn("no suitable local IP found, feed URL uses loopback")
	return "127.0.0.1"
}
