package mail

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/textproto"
)

// AuthenticationError is returned when the server rejects the credentials.
type AuthenticationError struct {
	Server string
	Err    error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed at %s: %v", e.Server, e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// ConnectionError is returned when the server cannot be reached or the
// connection breaks.
type ConnectionError struct {
	Server string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to %s failed: %v", e.Server, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// SendError is returned when the server refuses a message after the
// connection was established.
type SendError struct {
	Err error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("failed to send email: %v", e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }

// AttachmentError describes an attachment that was left out of a message.
type AttachmentError struct {
	Path   string
	Reason string
	Err    error
}

func (e *AttachmentError) Error() string {
	msg := fmt.Sprintf("skipping %s attachment %s", e.Reason, e.Path)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AttachmentError) Unwrap() error { return e.Err }

// authMechanismError marks failures raised by our own SASL mechanisms.
type authMechanismError struct {
	mechanism string
	err       error
}

func (e *authMechanismError) Error() string {
	return fmt.Sprintf("%s authentication: %v", e.mechanism, e.err)
}

func (e *authMechanismError) Unwrap() error { return e.err }

// SMTP reply codes that mean the credentials were not accepted.
var authReplyCodes = map[int]bool{530: true, 534: true, 535: true, 538: true}

// classify maps a transport error onto the error taxonomy. Errors that fit
// no category become fallback(err).
func classify(server string, err error, fallback func(error) error) error {
	if err == nil {
		return nil
	}
	var (
		authErr  *AuthenticationError
		connErr  *ConnectionError
		sendErr  *SendError
		mechErr  *authMechanismError
		protoErr *textproto.Error
		netErr   net.Error
		opErr    *net.OpError
		certErr  *tls.CertificateVerificationError
		recErr   tls.RecordHeaderError
		alertErr tls.AlertError
	)
	switch {
	case errors.As(err, &authErr), errors.As(err, &connErr), errors.As(err, &sendErr):
		return err
	case errors.As(err, &mechErr):
		return &AuthenticationError{Server: server, Err: err}
	case errors.As(err, &protoErr) && authReplyCodes[protoErr.Code]:
		return &AuthenticationError{Server: server, Err: err}
	case errors.As(err, &protoErr):
		return fallback(err)
	case errors.As(err, &opErr), errors.As(err, &netErr),
		errors.As(err, &certErr), errors.As(err, &recErr), errors.As(err, &alertErr),
		errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, net.ErrClosed):
		return &ConnectionError{Server: server, Err: err}
	}
	return fallback(err)
}

// Failure reasons recorded in metrics.
func failureReason(err error) string {
	var (
		authErr *AuthenticationError
		connErr *ConnectionError
	)
	switch {
	case errors.As(err, &authErr):
		return "authentication"
	case errors.As(err, &connErr):
		return "connection"
	}
	return "send"
}
