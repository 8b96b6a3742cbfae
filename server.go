package casedesk

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/zachmann/go-utils/duration"
)

// ServerConf configures the http server
type ServerConf struct {
	IPListen          string       `yaml:"ip_listen"`
	Port              int          `yaml:"port"`
	TLS               tlsConf      `yaml:"tls"`
	TrustedProxies    []string     `yaml:"trusted_proxies"`
	ForwardedIPHeader string       `yaml:"forwarded_ip_header"`
	Timeouts          timeoutsConf `yaml:"timeouts"`
	// AccessLog receives the access log; nil writes to stdout
	AccessLog io.Writer `yaml:"-"`
}

type tlsConf struct {
	Enabled      bool   `yaml:"enabled"`
	RedirectHTTP bool   `yaml:"redirect_http"`
	Cert         string `yaml:"cert"`
	Key          string `yaml:"key"`
}

// timeoutsConf overrides the default server timeouts; unset values keep the
// defaults of FiberServerConfig
type timeoutsConf struct {
	Read  duration.DurationOption `yaml:"read"`
	Write duration.DurationOption `yaml:"write"`
	Idle  duration.DurationOption `yaml:"idle"`
}

func (t timeoutsConf) apply(conf *fiber.Config) {
	if d := t.Read.Duration(); d > 0 {
		conf.ReadTimeout = d
	}
	if d := t.Write.Duration(); d > 0 {
		conf.WriteTimeout = d
	}
	if d := t.Idle.Duration(); d > 0 {
		conf.IdleTimeout = d
	}
}
