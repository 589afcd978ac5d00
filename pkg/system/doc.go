// Package system holds the logging setup shared by the exmailer packages.
package system
