package gateway

import (
	"net"

	"github.com/jackpal/gateway"
)

// Resolver defines the port interface for discovering the host's default
// outbound gateway. It is the only piece of environment introspection the
// accessor depends on, kept behind a port so the core stays
// platform-agnostic and tests can substitute a fixed address.
type Resolver interface {
	// DefaultGateway returns the gateway address of the default route, or
	// an error when the routing configuration exposes none.
	DefaultGateway() (net.IP, error)
}

// OSResolver queries the local OS routing configuration on every call.
// Results are deliberately not cached: the default route can change between
// calls on a booting instance.
type OSResolver struct{}

func NewOSResolver() OSResolver {
	return OSResolver{}
}

func (OSResolver) DefaultGateway() (net.IP, error) {
	return gateway.DiscoverGateway()
}

// Static is a Resolver that always returns the same address. Useful for
// tests and for deployments where the metadata server location is known.
type Static struct {
	ip net.IP
}

func NewStatic(ip net.IP) Static {
	return Static{ip: ip}
}

func (s Static) DefaultGateway() (net.IP, error) {
	if s.ip == nil {
		return nil, &ResolveError{Message: "no gateway configured"}
	}
	return s.ip, nil
}
