package main

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Config is loaded once at startup and never modified afterwards.
type Config struct {
	ProbeID  int
	URL      string
	Token    string
	PortName string

	// MetricsPushURL is optional; process metrics are only pushed when set.
	MetricsPushURL string
	// DatadogEnabled mirrors every reading to Datadog. It is turned on by the
	// presence of DD_API_KEY, which the Datadog client reads itself.
	DatadogEnabled bool
}

// LoadConfig builds a Config from the given lookup function, usually
// os.LookupEnv.
func LoadConfig(lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}

	probeID, err := requireEnv(lookup, "PROBE_ID")
	if err != nil {
		return nil, err
	}
	cfg.ProbeID, err = strconv.Atoi(probeID)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse PROBE_ID %q to int", probeID)
	}

	if cfg.URL, err = requireEnv(lookup, "URL"); err != nil {
		return nil, err
	}
	if err := validateURL(cfg.URL); err != nil {
		return nil, err
	}

	if cfg.Token, err = requireEnv(lookup, "TOKEN"); err != nil {
		return nil, err
	}
	if cfg.PortName, err = requireEnv(lookup, "COM_PORT"); err != nil {
		return nil, err
	}

	if v, ok := lookup("METRICS_PUSH_URL"); ok && strings.TrimSpace(v) != "" {
		cfg.MetricsPushURL = strings.TrimSpace(v)
	}
	if v, ok := lookup("DD_API_KEY"); ok && v != "" {
		cfg.DatadogEnabled = true
	}

	return cfg, nil
}

func requireEnv(lookup func(string) (string, bool), key string) (string, error) {
	v, ok := lookup(key)
	if !ok {
		return "", errors.Errorf("%s environment variable is not set", key)
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", errors.Errorf("%s environment variable is empty", key)
	}
	return v, nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errors.Wrapf(err, "invalid URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Errorf("URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return errors.Errorf("URL %q has no host", raw)
	}
	return nil
}
