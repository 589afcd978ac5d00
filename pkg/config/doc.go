// Package config resolves the mail account configuration used by exmailer.
//
// A configuration is merged from several source layers in a fixed priority
// order: programmatic values, an explicit file, a discovered file, the
// environment (optionally backed by a .env file), the OS keyring and safe
// defaults. Every layer is normalized through a fixed alias table before it
// is merged, and a layer only fills keys that are still absent. The merged
// result is validated before it is handed to the mail composer.
package config
