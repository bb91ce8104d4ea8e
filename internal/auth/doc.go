// Package auth provides authentication and authorization for the membership service.
//
// Users log in against the local database (LocalProvider, Argon2id hashes).
// Their rights come from the roles they are a member of: every role carries
// flags such as assign roles or webmaster, and a user holds a right when any
// valid role of the current organization, or of a global category, grants it.
//
// # Authorization
//
// The Service type answers rights questions:
//   - HasRight: check a single right
//   - ManageRoles: assign roles right or webmaster
//   - IsWebmaster: member of the webmaster role
//   - Rights: all rights for templates
//
// # Middleware
//
//   - RequireRight: protect routes, rendering the access denied page on failure
//   - AddRightsToLocals: add the user rights to the template context
//
// Example usage:
//
//	authService := auth.NewService(db)
//
//	app.Get("/roles",
//	    auth.RequireRight(authService, (*auth.Service).ManageRoles),
//	    handler,
//	)
package auth
