// Package httpclient builds *http.Client values whose transport is a chain of
// client-side middleware. Cross-cutting concerns such as request IDs, logging
// and session-expiry detection are declared as Middleware instead of patching
// the client at runtime.
//
//	client := httpclient.New(
//		httpclient.WithTimeout(15*time.Second),
//		httpclient.WithMiddleware(
//			httpclient.RequestID(),
//			httpclient.Logging(log),
//			keeper.Interceptor(),
//		),
//	)
//
// Middleware run in the order given: the first one sees the request first and
// the response last.
package httpclient
