package options

import (
	"net/netip"
	"net/url"
	"strconv"
	"strings"

	"github.com/0xalexb/hjarta-config/config"
)

// URL validates a URL with a scheme and a host. The empty string is accepted
// and means "no URL".
type URL struct {
	config.Base
	config.OptionallyRequired

	isDir bool
}

// NewURL creates a URL option.
func NewURL(opts ...Opt) *URL {
	return &URL{OptionallyRequired: newOptionallyRequired(opts)}
}

// NewDirURL creates a URL option whose path always ends with a slash.
func NewDirURL(opts ...Opt) *URL {
	return &URL{OptionallyRequired: newOptionallyRequired(opts), isDir: true}
}

// Validate applies default and required handling, then Run.
func (u *URL) Validate(f *config.Field, value any) (any, error) {
	return u.Apply(value, func(value any) (any, error) {
		return u.Run(f, value)
	})
}

// Run parses and normalizes the URL.
func (u *URL) Run(_ *config.Field, value any) (any, error) {
	raw, ok := value.(string)
	if !ok {
		return nil, config.Errorf(config.ErrMalformedURL, "Unable to parse the URL.")
	}

	if raw == "" {
		return raw, nil
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, config.Errorf(config.ErrMalformedURL, "Unable to parse the URL.")
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, config.Errorf(config.ErrMalformedURL, "The URL isn't valid, it should include the http:// (scheme)")
	}

	if u.isDir && !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
		if parsed.RawPath != "" {
			parsed.RawPath += "/"
		}
	}

	return parsed.String(), nil
}

// Address is a normalized host and port.
type Address struct {
	Host string
	Port int
}

// String returns "host:port".
func (a Address) String() string {
	return a.Host + ":" + strconv.Itoa(a.Port)
}

// IPAddress validates a "host:port" string where host is an IP address or "localhost".
type IPAddress struct {
	config.Base
	config.OptionallyRequired

	warnWildcard bool
}

// NewIPAddress creates an IPAddress option.
func NewIPAddress(opts ...Opt) *IPAddress {
	return &IPAddress{OptionallyRequired: newOptionallyRequired(opts)}
}

// WarnOnWildcard emits a warning when the address listens on every interface.
func (a *IPAddress) WarnOnWildcard() *IPAddress {
	a.warnWildcard = true

	return a
}

// Validate applies default and required handling, then Run.
func (a *IPAddress) Validate(f *config.Field, value any) (any, error) {
	return a.Apply(value, func(value any) (any, error) {
		return a.Run(f, value)
	})
}

// Run parses the address into an Address. An Address is parsed again from
// its string form.
func (a *IPAddress) Run(_ *config.Field, value any) (any, error) {
	if addr, ok := value.(Address); ok {
		value = addr.String()
	}

	raw, ok := value.(string)

	separator := strings.LastIndex(raw, ":")
	if !ok || separator < 0 {
		return nil, config.Errorf(config.ErrTypeMismatch, "Must be a string of format 'IP:PORT'")
	}

	host, portText := raw[:separator], raw[separator+1:]

	if host != "localhost" {
		host = strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")

		addr, err := netip.ParseAddr(host)
		if err != nil {
			return nil, config.Errorf(config.ErrInvalidValue,
				"'%s' does not appear to be an IPv4 or IPv6 address", host)
		}

		host = addr.String()
	}

	port, err := strconv.Atoi(portText)
	if err != nil {
		return nil, config.Errorf(config.ErrInvalidValue, "'%s' is not a valid port", portText)
	}

	return Address{Host: host, Port: port}, nil
}

// PostValidation warns about wildcard addresses when enabled.
func (a *IPAddress) PostValidation(f *config.Field) error {
	addr, ok := f.Config().Get(f.Key()).(Address)
	if !ok || !a.warnWildcard {
		return nil
	}

	if addr.Host == "0.0.0.0" || addr.Host == "::" {
		f.Warnf("The use of the IP address '%s' suggests a production environment "+
			"or the use of a proxy to connect to the server. However, "+
			"the server is intended for local development purposes only. "+
			"Please use a third party production-ready server instead.", addr.Host)
	}

	return nil
}
