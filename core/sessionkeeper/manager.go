package sessionkeeper

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/pahanaedu/bookstore/core/logger"
	"github.com/pahanaedu/bookstore/core/scheduler"
)

// activeWindow is how recent the last activity must be for IsUserActive.
const activeWindow = time.Minute

// countdownTick is the refresh period of the warning countdown.
const countdownTick = time.Second

// Manager runs the session lifecycle of one client: it warns before idle
// logout, renews the session in the background and redirects to the login
// page once the session ends. Safe for concurrent use.
type Manager struct {
	cfg       Config
	endpoints endpoints
	id        uuid.UUID

	sched       scheduler.Scheduler
	ownedTimers *scheduler.Timers
	client      *http.Client
	notifier    Notifier
	navigator   Navigator
	log         *slog.Logger

	// throttles activity debug logs, activity may arrive on every key press
	activityLog rate.Sometimes

	mu           sync.Mutex
	ctx          context.Context
	cancel       context.CancelFunc
	started      bool
	closed       bool
	state        State
	reason       Reason
	lastActivity time.Time
	logoutAt     time.Time
	countdown    time.Duration

	// At most one generation of each timer is live; zero means none.
	warningTimer   scheduler.Handle
	logoutTimer    scheduler.Handle
	countdownTimer scheduler.Handle
	keepAliveTimer scheduler.Handle
	redirectTimer  scheduler.Handle

	done     chan struct{}
	doneOnce sync.Once
}

// Option configures the collaborators of a Manager.
type Option func(*Manager)

// WithScheduler sets the timer scheduler. Defaults to wall-clock timers owned
// and stopped by the Manager.
func WithScheduler(s scheduler.Scheduler) Option {
	return func(m *Manager) {
		if s != nil {
			m.sched = s
		}
	}
}

// WithHTTPClient sets the client used for extend and keep-alive calls.
// It may be the application's intercepted client: the Manager's own requests
// are never counted as activity.
func WithHTTPClient(c *http.Client) Option {
	return func(m *Manager) {
		if c != nil {
			m.client = c
		}
	}
}

// WithNotifier sets the user-facing notifier. Defaults to LogNotifier.
func WithNotifier(n Notifier) Option {
	return func(m *Manager) {
		if n != nil {
			m.notifier = n
		}
	}
}

// WithNavigator sets the redirect target handler. Defaults to LogNavigator.
func WithNavigator(n Navigator) Option {
	return func(m *Manager) {
		if n != nil {
			m.navigator = n
		}
	}
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// New creates a Manager. Zero-valued Config fields take DefaultConfig values.
// Timers are armed by Start.
func New(cfg Config, opts ...Option) (*Manager, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	eps, err := cfg.resolve()
	if err != nil {
		return nil, err
	}

	m := &Manager{
		cfg:         cfg,
		endpoints:   eps,
		id:          uuid.New(),
		log:         logger.Nop(),
		activityLog: rate.Sometimes{First: 1, Interval: 30 * time.Second},
		state:       StateActive,
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.sched == nil {
		m.ownedTimers = scheduler.NewTimers()
		m.sched = m.ownedTimers
	}
	if m.client == nil {
		m.client = &http.Client{}
	}
	m.log = m.log.With(logger.Component("sessionkeeper"), logger.ID("session_manager_id", m.id.String()))
	if m.notifier == nil {
		m.notifier = LogNotifier{Logger: m.log}
	}
	if m.navigator == nil {
		m.navigator = LogNavigator{Logger: m.log}
	}
	m.lastActivity = m.sched.Now()

	return m, nil
}

// Start arms the warning and logout timers and the keep-alive heartbeat.
// Values of ctx reach the keep-alive requests but its cancellation does not:
// the heartbeat runs until Close or expiry.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if m.started {
		return ErrAlreadyStarted
	}
	m.started = true
	m.ctx, m.cancel = context.WithCancel(context.WithoutCancel(ctx))
	m.lastActivity = m.sched.Now()

	if m.state == StateExpired {
		// Invalidated by an intercepted response before Start.
		return nil
	}

	m.startTimersLocked()
	m.armEvery(&m.keepAliveTimer, m.cfg.KeepAliveInterval, m.keepAliveTick)

	m.log.InfoContext(ctx, "session keeper started",
		logger.Group("timing",
			slog.Duration("session_timeout", m.cfg.SessionTimeout),
			slog.Duration("warning_lead", m.cfg.WarningLead),
			slog.Duration("keep_alive_interval", m.cfg.KeepAliveInterval)))

	return nil
}

// Close cancels every timer, including a pending login redirect, and marks the
// session inactive. Intended for application shutdown. Safe to call repeatedly.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.clearTimersLocked()
	m.cancelLocked(&m.keepAliveTimer)
	m.cancelLocked(&m.redirectTimer)
	if m.cancel != nil {
		m.cancel()
	}
	m.mu.Unlock()

	if m.ownedTimers != nil {
		m.ownedTimers.Stop()
	}
	m.finish()

	m.log.Debug("session keeper closed")
	return nil
}

// Done is closed once the login redirect has been issued or the Manager is closed.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}

// UpdateActivity records user activity. While the warning is shown it hides the
// warning and restarts the full timer cycle; otherwise it only stores the
// timestamp, so calling it on every input event is cheap.
func (m *Manager) UpdateActivity() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastActivity = m.sched.Now()
	m.activityLog.Do(func() {
		m.log.Debug("user activity", logger.State(m.state.String()))
	})

	if m.state != StateWarningShown || m.closed {
		return
	}

	m.state = StateActive
	m.notifier.HideWarning()
	m.startTimersLocked()
	m.log.Info("session warning dismissed by activity", logger.Event("activity"))
}

// AutoLogout ends the session with reason timeout. The logout timer calls it;
// so can an explicit "logout now" action. No-op once the session has ended.
func (m *Manager) AutoLogout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expireLocked(ReasonTimeout)
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Reason returns why the session ended, or ReasonNone while it is live.
func (m *Manager) Reason() Reason {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reason
}

// IsActive reports whether the session is live: not expired and not closed.
func (m *Manager) IsActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state != StateExpired && !m.closed
}

// IsWarningVisible reports whether the expiry warning is currently shown.
func (m *Manager) IsWarningVisible() bool {
	return m.State() == StateWarningShown
}

// Status returns "active" or "inactive".
func (m *Manager) Status() string {
	if m.IsActive() {
		return "active"
	}
	return "inactive"
}

// LastActivity returns the time of the most recent recorded activity.
func (m *Manager) LastActivity() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastActivity
}

// IsUserActive reports whether there was activity within the last minute.
func (m *Manager) IsUserActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sched.Now().Sub(m.lastActivity) < activeWindow
}

// TimeUntilLogout returns the time left before the logout timer fires.
// Returns 0 when the session is not running.
func (m *Manager) TimeUntilLogout() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started || m.closed || m.state == StateExpired {
		return 0
	}
	return max(m.logoutAt.Sub(m.sched.Now()), 0)
}

// LogoutURL returns the resolved server logout endpoint.
func (m *Manager) LogoutURL() string {
	return m.endpoints.logout.String()
}

// LoginURL returns the login redirect target for reason.
func (m *Manager) LoginURL(reason Reason) string {
	u := *m.endpoints.login
	if reason != ReasonNone {
		q := u.Query()
		q.Set("reason", string(reason))
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// startTimersLocked cancels the current warning/logout generation and arms a
// new one counted from now.
func (m *Manager) startTimersLocked() {
	if !m.started || m.closed || m.state == StateExpired {
		return
	}
	m.clearTimersLocked()

	now := m.sched.Now()
	m.logoutAt = now.Add(m.cfg.SessionTimeout)
	m.arm(&m.warningTimer, m.cfg.SessionTimeout-m.cfg.WarningLead, m.showWarningLocked)
	m.arm(&m.logoutTimer, m.cfg.SessionTimeout, func() { m.expireLocked(ReasonTimeout) })

	m.log.Debug("session timers armed",
		slog.Duration("warning_in", m.cfg.SessionTimeout-m.cfg.WarningLead),
		slog.Duration("logout_in", m.cfg.SessionTimeout))
}

// clearTimersLocked cancels the warning, logout and countdown timers.
func (m *Manager) clearTimersLocked() {
	m.cancelLocked(&m.warningTimer)
	m.cancelLocked(&m.logoutTimer)
	m.cancelLocked(&m.countdownTimer)
}

func (m *Manager) cancelLocked(slot *scheduler.Handle) {
	if *slot != 0 {
		m.sched.Cancel(*slot)
		*slot = 0
	}
}

// arm schedules fire to run once under the lock. A firing whose handle is no
// longer in slot was cancelled or superseded and is dropped.
func (m *Manager) arm(slot *scheduler.Handle, delay time.Duration, fire func()) {
	var h scheduler.Handle
	h = m.sched.Schedule(delay, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if *slot != h {
			return
		}
		*slot = 0
		fire()
	})
	*slot = h
}

// armEvery schedules fire periodically. fire runs without the lock and receives
// the handle so it can check it is still current.
func (m *Manager) armEvery(slot *scheduler.Handle, interval time.Duration, fire func(h scheduler.Handle)) {
	var h scheduler.Handle
	h = m.sched.Every(interval, func() {
		m.mu.Lock()
		current := *slot == h
		m.mu.Unlock()
		if current {
			fire(h)
		}
	})
	*slot = h
}

func (m *Manager) showWarningLocked() {
	if m.state != StateActive || m.closed {
		return
	}

	m.state = StateWarningShown
	m.countdown = m.cfg.WarningLead
	m.notifier.ShowWarning(m.countdown)
	m.armEvery(&m.countdownTimer, countdownTick, m.countdownTick)

	m.log.Info("session warning shown", logger.Event("warning"), logger.Remaining(m.countdown))
}

func (m *Manager) countdownTick(h scheduler.Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.countdownTimer != h {
		return
	}
	if m.state != StateWarningShown {
		m.cancelLocked(&m.countdownTimer)
		return
	}

	m.countdown = max(m.countdown-countdownTick, 0)
	m.notifier.UpdateCountdown(m.countdown)
	if m.countdown == 0 {
		m.cancelLocked(&m.countdownTimer)
	}
}

func (m *Manager) keepAliveTick(h scheduler.Handle) {
	m.mu.Lock()
	if m.keepAliveTimer != h || m.state == StateExpired || m.closed {
		m.mu.Unlock()
		return
	}
	ctx := m.ctx
	m.mu.Unlock()

	// Failures are handled inside: the session is already expired.
	_ = m.SendKeepAlive(ctx)
}

// expireLocked moves the session to its terminal state and schedules the login
// redirect. Returns false if the session had already ended.
func (m *Manager) expireLocked(reason Reason) bool {
	if m.state == StateExpired || m.closed {
		return false
	}

	prev := m.state
	m.state = StateExpired
	m.reason = reason
	m.clearTimersLocked()
	m.cancelLocked(&m.keepAliveTimer)
	if m.cancel != nil {
		m.cancel()
	}

	if prev == StateWarningShown {
		m.notifier.HideWarning()
	}
	if reason == ReasonTimeout {
		m.notifier.Notify(LevelWarning, msgTimedOut)
	} else {
		m.notifier.Notify(LevelError, msgInvalidate)
	}

	target := m.LoginURL(reason)
	m.arm(&m.redirectTimer, m.cfg.RedirectDelay, func() {
		m.navigator.Navigate(target)
		m.log.Info("redirected to login", logger.URL(target), logger.Reason(string(reason)))
		m.finish()
	})

	m.log.Warn("session expired",
		logger.Event("expired"),
		logger.State(prev.String()),
		logger.Reason(string(reason)),
		slog.Duration("redirect_in", m.cfg.RedirectDelay))

	return true
}

func (m *Manager) finish() {
	m.doneOnce.Do(func() { close(m.done) })
}
