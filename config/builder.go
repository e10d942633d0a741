package config

import (
	"github.com/jpalmerr/buildpulse"
)

// BuildHosts converts parsed configuration into SDK Host objects, in
// configured order.
func BuildHosts(cfg *Config) ([]buildpulse.Host, error) {
	hosts := make([]buildpulse.Host, 0, len(cfg.Hosts))
	for _, hc := range cfg.Hosts {
		var opts []buildpulse.HostOption
		if hc.Interval > 0 {
			opts = append(opts, buildpulse.WithHostInterval(millis(hc.Interval)))
		}
		if hc.Timeout > 0 {
			opts = append(opts, buildpulse.WithHostTimeout(millis(hc.Timeout)))
		}

		h, err := buildpulse.NewHost(hc.Name, hc.URL, opts...)
		if err != nil {
			return nil, err
		}
		hosts = append(hosts, h)
	}
	return hosts, nil
}

// Options converts parsed configuration into [buildpulse.New] options.
func Options(cfg *Config) ([]buildpulse.Option, error) {
	hosts, err := BuildHosts(cfg)
	if err != nil {
		return nil, err
	}

	opts := []buildpulse.Option{
		buildpulse.WithHosts(hosts...),
		buildpulse.WithPollInterval(cfg.PollInterval()),
		buildpulse.WithStabilityWindow(cfg.StabilityWindow),
		buildpulse.WithBell(cfg.EnableBell),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, buildpulse.WithTimeout(cfg.RequestTimeout()))
	}
	return opts, nil
}
