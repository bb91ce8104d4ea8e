// Package main starts GoMembership, a web-based membership management for clubs and
// associations. Roles group the members of an organization and grant them rights;
// the role list and the role editor are served with Fiber, the data is kept with gorm
// in mysql, postgres or sqlite.
//
// Run "gomembership start --config ./etc/" to serve, "gomembership version" to print the version.
package main
