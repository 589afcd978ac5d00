// Package templates holds the HTML layouts messages are wrapped in.
//
// Four built-in layouts ship with the binary (Persian, Default, Minimal and
// Plain). Callers add their own to a Registry; every layout must contain
// the {body} placeholder. Substitution is a single literal pass over
// {key} tokens, so CSS braces and unknown placeholders survive unchanged.
package templates
