// Package providers holds the typed descriptor builders that back code-kind
// files in the integrations directory. A provider whose descriptors cannot be
// expressed as a single JSON or YAML file (for example one that exports both
// an OAuth2 and a legacy OAuth1 flavour) is written here and enumerated in
// Builders.
package providers
