// Package cmd implements the exmailer command line interface.
//
// The root command sends one email; subcommands manage the configuration
// file, the keyring password and list the built-in templates.
package cmd
