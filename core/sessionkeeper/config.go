package sessionkeeper

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Config holds the session keeper configuration.
// Designed for environment-based loading via core/config.
type Config struct {
	// Timing
	SessionTimeout    time.Duration `env:"SESSION_TIMEOUT" envDefault:"30m"`           // Idle time before forced logout
	WarningLead       time.Duration `env:"SESSION_WARNING_LEAD" envDefault:"5m"`       // Warning shown this long before timeout
	KeepAliveInterval time.Duration `env:"SESSION_KEEPALIVE_INTERVAL" envDefault:"5m"` // Background heartbeat period
	RedirectDelay     time.Duration `env:"SESSION_REDIRECT_DELAY" envDefault:"2s"`     // Grace period before the login redirect
	RequestTimeout    time.Duration `env:"SESSION_REQUEST_TIMEOUT" envDefault:"10s"`   // Deadline for extend and keep-alive calls

	// Endpoints. Relative URLs are resolved against BaseURL.
	BaseURL          string `env:"SESSION_BASE_URL"`
	ExtendSessionURL string `env:"SESSION_EXTEND_URL" envDefault:"/AuthServlet?action=extendSession"`
	LogoutURL        string `env:"SESSION_LOGOUT_URL" envDefault:"/AuthServlet?action=logout"`
	LoginURL         string `env:"SESSION_LOGIN_URL" envDefault:"/views/login.jsp"`
}

// DefaultConfig returns the defaults of the point-of-sale web client.
func DefaultConfig() Config {
	return Config{
		SessionTimeout:    30 * time.Minute,
		WarningLead:       5 * time.Minute,
		KeepAliveInterval: 5 * time.Minute,
		RedirectDelay:     2 * time.Second,
		RequestTimeout:    10 * time.Second,
		ExtendSessionURL:  "/AuthServlet?action=extendSession",
		LogoutURL:         "/AuthServlet?action=logout",
		LoginURL:          "/views/login.jsp",
	}
}

// withDefaults fills zero-valued fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.SessionTimeout == 0 {
		c.SessionTimeout = def.SessionTimeout
	}
	if c.WarningLead == 0 {
		c.WarningLead = def.WarningLead
	}
	if c.KeepAliveInterval == 0 {
		c.KeepAliveInterval = def.KeepAliveInterval
	}
	if c.RedirectDelay == 0 {
		c.RedirectDelay = def.RedirectDelay
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = def.RequestTimeout
	}
	if c.ExtendSessionURL == "" {
		c.ExtendSessionURL = def.ExtendSessionURL
	}
	if c.LogoutURL == "" {
		c.LogoutURL = def.LogoutURL
	}
	if c.LoginURL == "" {
		c.LoginURL = def.LoginURL
	}
	return c
}

// Validate checks the timing invariants: 0 < WarningLead < SessionTimeout and
// positive intervals.
func (c Config) Validate() error {
	switch {
	case c.SessionTimeout <= 0:
		return errors.Join(ErrInvalidConfig, errors.New("session timeout must be positive"))
	case c.WarningLead <= 0:
		return errors.Join(ErrInvalidConfig, errors.New("warning lead must be positive"))
	case c.WarningLead >= c.SessionTimeout:
		return errors.Join(ErrInvalidConfig,
			fmt.Errorf("warning lead %v must be shorter than session timeout %v", c.WarningLead, c.SessionTimeout))
	case c.KeepAliveInterval <= 0:
		return errors.Join(ErrInvalidConfig, errors.New("keep-alive interval must be positive"))
	case c.RedirectDelay < 0:
		return errors.Join(ErrInvalidConfig, errors.New("redirect delay must not be negative"))
	case c.RequestTimeout < 0:
		return errors.Join(ErrInvalidConfig, errors.New("request timeout must not be negative"))
	}
	return nil
}

// endpoints holds the resolved URLs.
type endpoints struct {
	extend *url.URL
	logout *url.URL
	login  *url.URL
}

func (c Config) resolve() (endpoints, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return endpoints{}, errors.Join(ErrInvalidConfig, fmt.Errorf("base url: %w", err))
	}

	ref := func(name, raw string) (*url.URL, error) {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, errors.Join(ErrInvalidConfig, fmt.Errorf("%s url: %w", name, err))
		}
		return base.ResolveReference(u), nil
	}

	var e endpoints
	if e.extend, err = ref("extend session", c.ExtendSessionURL); err != nil {
		return endpoints{}, err
	}
	if !e.extend.IsAbs() {
		return endpoints{}, errors.Join(ErrInvalidConfig,
			fmt.Errorf("extend session url %q is not absolute; set BaseURL", e.extend))
	}
	if e.logout, err = ref("logout", c.LogoutURL); err != nil {
		return endpoints{}, err
	}
	if e.login, err = ref("login", c.LoginURL); err != nil {
		return endpoints{}, err
	}
	return e, nil
}
