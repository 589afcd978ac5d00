// Package mail composes templated HTML messages and hands them to a mail
// server. An Emailer resolves its configuration once, opens a single
// connection through a Connector and then sends any number of messages over
// it. The default Connector speaks SMTP with NTLM or LOGIN authentication.
package mail
