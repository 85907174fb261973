package service

import (
	"strings"
	"time"

	"github.com/rohmanhakim/cloudmeta/internal/gateway"
	"github.com/rohmanhakim/cloudmeta/internal/telemetry"
)

// GatewayPlaceholder is the token a metadata base URL template may carry to
// be substituted with the host's default outbound gateway address. Used by
// providers that expose the metadata server on the default route.
const GatewayPlaceholder = "%default_gateway%"

// MetadataBaseURL returns the metadata base URL with any required
// substitutions applied. The gateway is discovered once per call, not
// cached: the default route can change while an instance is booting. When
// no gateway is found the placeholder is replaced with the empty string.
func MetadataBaseURL(template string, resolver gateway.Resolver, sink telemetry.Sink) string {
	// Guarded so URLs without the placeholder never trigger a routing query.
	if !strings.Contains(template, GatewayPlaceholder) {
		return template
	}

	defaultGateway := ""
	ip, err := resolver.DefaultGateway()
	if err != nil {
		sink.RecordError(
			time.Now(),
			"service",
			"MetadataBaseURL",
			telemetry.CauseGatewayLookup,
			err.Error(),
			[]telemetry.Attribute{
				telemetry.NewAttr(telemetry.AttrURL, template),
			},
		)
	} else if ip != nil {
		defaultGateway = ip.String()
	}

	return strings.ReplaceAll(template, GatewayPlaceholder, defaultGateway)
}
