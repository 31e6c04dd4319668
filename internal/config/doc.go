// Package config provides configuration loading, merging, and validation
// facilities for the vault-guard client.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// Fields left empty by every source receive the values of
// [DefaultClientConfig]. The main entry point is [GetClientConfig].
package config
