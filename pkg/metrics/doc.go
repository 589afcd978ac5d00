// Package metrics defines Prometheus metrics for exmailer, covering
// configuration resolution, mail delivery and attachment handling.
package metrics
