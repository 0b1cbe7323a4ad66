// Package platform defines the uniform contract over external creator
// platforms: the closed set of platform kinds, the capability metadata
// each kind declares, the Client port every adapter implements, the
// normalized error taxonomy, and the connected Account entity.
//
// The interfaces here follow the Ports & Adapters pattern: ports are
// declared in this package, concrete per-platform adapters live in
// internal/infrastructure/platformclient.
package platform
