// Package sessionkeeper manages the client side of an authenticated session:
// it warns the user before idle logout, keeps the server session alive in the
// background and forces a redirect to the login page when the session ends.
//
// # Lifecycle
//
// A Manager moves through three states:
//
//	Active --(timeout-lead idle)--> WarningShown --(lead elapsed)--> Expired
//	   ^                                  |
//	   +---- activity / ExtendSession ----+
//
// Expired is terminal. It is reached when the logout timer fires (reason
// "timeout"), when AutoLogout is called (reason "timeout"), when any request
// seen by Interceptor returns 401 or 403 (reason "expired"), or when an extend
// or keep-alive call fails (reason "expired"). Renewal failures fail closed:
// a transport error is treated the same as a rejected session, with no retry.
// After RedirectDelay the Navigator receives LoginURL with ?reason=<reason>.
//
// Activity while Active only records a timestamp; the timers restart only when
// activity dismisses a visible warning or an extension succeeds.
//
// # Usage
//
//	keeper, err := sessionkeeper.New(cfg,
//		sessionkeeper.WithNotifier(ui),
//		sessionkeeper.WithNavigator(sessionkeeper.NavigatorFunc(openLogin)),
//		sessionkeeper.WithLogger(log),
//	)
//	if err != nil {
//		return err
//	}
//	defer keeper.Close()
//
//	client := httpclient.New(httpclient.WithMiddleware(keeper.Interceptor()))
//
//	if err := keeper.Start(ctx); err != nil {
//		return err
//	}
//
//	// wire input events
//	onKey(keeper.UpdateActivity)
//	onExtendClicked(func() { _ = keeper.ExtendSession(ctx) })
//	onLogoutClicked(keeper.AutoLogout)
//
// # Time
//
// All timers go through a scheduler.Scheduler. Tests pass a scheduler.Manual
// and drive the clock with Advance.
package sessionkeeper
