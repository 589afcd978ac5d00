package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Config metrics
	ConfigResolutions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "exmailer_config_resolutions_total",
		Help: "Total number of configuration resolutions by result",
	}, []string{"result"})

	// Mail metrics
	MailSendSuccess = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "exmailer_mail_send_success_total",
		Help: "Total number of successful mail sends",
	}, []string{"server"})
	// reason is one of authentication, connection, send
	MailSendFailure = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "exmailer_mail_send_failure_total",
		Help: "Total number of failed mail sends",
	}, []string{"server", "reason"})
	MailAttachmentsSkipped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "exmailer_mail_attachments_skipped_total",
		Help: "Total number of attachments skipped before sending",
	}, []string{"reason"})
	MailAttachmentBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "exmailer_mail_attachment_bytes_total",
		Help: "Total number of attachment bytes handed to the transport",
	})
)

func init() {
	prometheus.MustRegister(ConfigResolutions)
	prometheus.MustRegister(MailSendSuccess)
	prometheus.MustRegister(MailSendFailure)
	prometheus.MustRegister(MailAttachmentsSkipped)
	prometheus.MustRegister(MailAttachmentBytes)
}

// WriteTextfile dumps the default registry to path in the text exposition
// format, for pickup by a node_exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
