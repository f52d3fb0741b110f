// Package storefront implements the catalog and admin backend for a small
// e-commerce storefront: products, categories, users, and cookie-based
// sessions behind a REST API.
//
// Sessions:
//   - Login exchanges an external session identifier for a verified identity
//     via provider/emergent, provisions the user on first sight, and stores
//     the provider-issued token with a fixed seven day expiry. The first user
//     ever provisioned becomes owner and admin.
//   - SessionManager.Resolve maps tokens to users and deletes expired rows
//     lazily; there is no background sweep.
//
// Authorization:
//   - Catalog reads are public. Catalog writes, user management, and image
//     uploads require a session whose user is admin or owner. Only the owner
//     may change admin flags, and the owner's own flags are immutable.
//
// Storage:
//   - Repositories are built on bun and run against Postgres in production
//     and SQLite in tests. Check-then-act writes (category name uniqueness,
//     first-user provisioning, session rotation) run inside transactions.
package storefront
