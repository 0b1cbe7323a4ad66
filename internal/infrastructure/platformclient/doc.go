// Package platformclient contains the per-platform adapters implementing
// the platform.Client port, the account client registry that caches one
// adapter instance per (account, kind) key, and the credential resolution
// plumbing adapters use at construction time.
//
// Adapters normalize vendor error shapes into the taxonomy defined in
// internal/domain/platform and translate vendor pagination into opaque
// cursors. Swapping an adapter for a different vendor client must not
// require changes above this package.
package platformclient
