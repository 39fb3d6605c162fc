package tcp

import (
	"errors"
	"fmt"
	"net/netip"
)

// ErrInvalidAddress is returned when a host is not an IPv4 literal.
var ErrInvalidAddress = errors.New("invalid IPv4 address")

// ParseIPv4 converts a dotted-quad host into its binary form.
func ParseIPv4(host string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w %q: %v", ErrInvalidAddress, host, err)
	}
	if !addr.Is4() {
		return netip.Addr{}, fmt.Errorf("%w %q: not IPv4", ErrInvalidAddress, host)
	}
	return addr, nil
}
