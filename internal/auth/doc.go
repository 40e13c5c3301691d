// Package auth provides authentication and authorization for the
// application.
//
// Authentication is local: username/password against the database with
// Argon2id password hashing. Authorization is role-based: a user has one
// role, a role carries a set of permission strings, and handlers protect
// their routes with the RequirePermission middleware.
//
// Example usage:
//
//	authService := auth.NewService(db)
//
//	app.Get("/admin/settings",
//	    auth.RequirePermission(authService, auth.PermAdminSettings),
//	    handler,
//	)
package auth
