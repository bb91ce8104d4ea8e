// Package auth provides the session middleware of the web application.
//
// The middleware reads the session cookie, redirects unauthenticated requests
// to the login page and stores the session state in fiber.Locals:
//   - handler.LocalCurrentUser: the models.User, also written to the access log
//   - handler.LocalSession: the *session.Data with the organization
//   - handler.LocalSessionID: the session id, the key of the form replay cache
//
// Static files, metrics, login and logout are reachable without a session.
//
// Usage:
//
//	app.Use(authmiddleware.Middleware)
package auth
