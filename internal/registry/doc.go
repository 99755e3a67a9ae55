// Package registry discovers integration descriptors in a directory and keeps
// them in an in-memory, id-indexed cache. A Registry is constructed once at
// startup and shared by handle; List rescans the directory and Get serves
// lookups from an index that is rebuilt only after a rescan. The package also
// validates the setup scopes and credentials a user supplies for an
// integration.
package registry
