// Package services provides domain services of the automail system that work
// across robots and mail items.
//
// The package includes:
//   - Allocator: the mailroom scheduler that admits mail, keeps it ordered and
//     fills waiting robots within their capability limits
//   - MailGenerator: a seeded source of mail for simulation runs
package services
