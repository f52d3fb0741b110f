// Package emergent verifies external login sessions against the Emergent
// managed auth service for go-storefront.
//
// The storefront never sees credentials: the browser completes the provider
// flow and hands the backend an opaque session identifier, which this package
// exchanges for the verified identity and the session token the provider
// minted for it.
package emergent
