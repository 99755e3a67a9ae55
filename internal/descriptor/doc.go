// Package descriptor defines the OAuth integration descriptor model and turns
// as-authored (raw) descriptors into canonical ones. It parses JSON and YAML
// descriptor files, checks their shape against an embedded JSON schema, and
// derives the defaults every consumer relies on (id, logo image and setup
// labels).
package descriptor
