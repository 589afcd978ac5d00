package mail

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"
)

type receivedMail struct {
	From string
	To   []string
	Data string
}

// testSMTPServer is a minimal SMTP server that understands just enough of
// the protocol for the transport tests: EHLO, AUTH LOGIN, AUTH NTLM, MAIL,
// RCPT, DATA and QUIT. Connections are served one after another.
type testSMTPServer struct {
	ln   net.Listener
	host string
	port int

	// username and password accepted by AUTH LOGIN; empty accepts anything.
	username string
	password string
	// rejectAuth makes every AUTH attempt fail with 535.
	rejectAuth bool
	// rejectData makes every DATA command fail with 554.
	rejectData bool

	mu        sync.Mutex
	received  []receivedMail
	mechanism string
	authUser  string

	wg sync.WaitGroup
}

func startTestSMTPServer(t *testing.T, configure ...func(*testSMTPServer)) *testSMTPServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	s := &testSMTPServer{ln: ln, host: "127.0.0.1", port: ln.Addr().(*net.TCPAddr).Port}
	for _, c := range configure {
		c(s)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			s.handle(conn)
		}
	}()

	t.Cleanup(func() {
		ln.Close()
		s.wg.Wait()
	})
	return s
}

func (s *testSMTPServer) messages() []receivedMail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]receivedMail(nil), s.received...)
}

func (s *testSMTPServer) auth() (mechanism, user string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mechanism, s.authUser
}

func (s *testSMTPServer) handle(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	fmt.Fprintf(conn, "220 localhost Test SMTP Service Ready\r\n")

	var cur receivedMail
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimRight(line, "\r\n")
		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "EHLO"), strings.HasPrefix(upper, "HELO"):
			fmt.Fprintf(conn, "250-localhost Hello\r\n250-AUTH LOGIN NTLM\r\n250 OK\r\n")
		case strings.HasPrefix(upper, "AUTH LOGIN"):
			s.authLogin(conn, r)
		case strings.HasPrefix(upper, "AUTH NTLM"):
			s.authNTLM(conn, r, line)
		case strings.HasPrefix(upper, "MAIL FROM:"):
			cur = receivedMail{From: extractAddress(line)}
			fmt.Fprintf(conn, "250 OK\r\n")
		case strings.HasPrefix(upper, "RCPT TO:"):
			cur.To = append(cur.To, extractAddress(line))
			fmt.Fprintf(conn, "250 OK\r\n")
		case strings.HasPrefix(upper, "DATA"):
			fmt.Fprintf(conn, "354 End data with <CR><LF>.<CR><LF>\r\n")
			var data strings.Builder
			for {
				dline, derr := r.ReadString('\n')
				if derr != nil {
					return
				}
				if strings.TrimRight(dline, "\r\n") == "." {
					break
				}
				data.WriteString(dline)
			}
			if s.rejectData {
				fmt.Fprintf(conn, "554 5.6.0 Message rejected\r\n")
				continue
			}
			cur.Data = data.String()
			s.mu.Lock()
			s.received = append(s.received, cur)
			s.mu.Unlock()
			fmt.Fprintf(conn, "250 OK: queued as 12345\r\n")
		case strings.HasPrefix(upper, "RSET"), strings.HasPrefix(upper, "NOOP"):
			fmt.Fprintf(conn, "250 OK\r\n")
		case strings.HasPrefix(upper, "QUIT"):
			fmt.Fprintf(conn, "221 Bye\r\n")
			return
		default:
			fmt.Fprintf(conn, "502 Command not implemented\r\n")
		}
	}
}

func (s *testSMTPServer) authLogin(conn net.Conn, r *bufio.Reader) {
	fmt.Fprintf(conn, "334 %s\r\n", base64.StdEncoding.EncodeToString([]byte("Username:")))
	user, ok := readBase64Line(r)
	if !ok {
		return
	}
	fmt.Fprintf(conn, "334 %s\r\n", base64.StdEncoding.EncodeToString([]byte("Password:")))
	pass, ok := readBase64Line(r)
	if !ok {
		return
	}

	s.mu.Lock()
	s.mechanism, s.authUser = "LOGIN", string(user)
	s.mu.Unlock()

	if s.rejectAuth || (s.username != "" && string(user) != s.username) || (s.password != "" && string(pass) != s.password) {
		fmt.Fprintf(conn, "535 5.7.3 Authentication unsuccessful\r\n")
		return
	}
	fmt.Fprintf(conn, "235 2.7.0 Authentication successful\r\n")
}

func (s *testSMTPServer) authNTLM(conn net.Conn, r *bufio.Reader, line string) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		fmt.Fprintf(conn, "501 5.5.4 Missing negotiate message\r\n")
		return
	}
	negotiate, err := base64.StdEncoding.DecodeString(fields[2])
	if err != nil || ntlmMessageType(negotiate) != 1 {
		fmt.Fprintf(conn, "501 5.5.4 Invalid negotiate message\r\n")
		return
	}
	fmt.Fprintf(conn, "334 %s\r\n", base64.StdEncoding.EncodeToString(ntlmChallenge()))

	authenticate, ok := readBase64Line(r)
	if !ok {
		return
	}
	s.mu.Lock()
	s.mechanism = "NTLM"
	s.mu.Unlock()

	if s.rejectAuth || ntlmMessageType(authenticate) != 3 {
		fmt.Fprintf(conn, "535 5.7.3 Authentication unsuccessful\r\n")
		return
	}
	fmt.Fprintf(conn, "235 2.7.0 Authentication successful\r\n")
}

func readBase64Line(r *bufio.Reader) ([]byte, bool) {
	line, err := r.ReadString('\n')
	if err != nil {
		return nil, false
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimRight(line, "\r\n"))
	if err != nil {
		return nil, false
	}
	return decoded, true
}

var ntlmSignature = []byte("NTLMSSP\x00")

func ntlmMessageType(msg []byte) uint32 {
	if len(msg) < 12 || !bytes.HasPrefix(msg, ntlmSignature) {
		return 0
	}
	return binary.LittleEndian.Uint32(msg[8:12])
}

// ntlmChallenge returns a CHALLENGE message with no target name and no
// target info, negotiating unicode, NTLM and extended session security.
func ntlmChallenge() []byte {
	msg := make([]byte, 48)
	copy(msg, ntlmSignature)
	binary.LittleEndian.PutUint32(msg[8:], 2)
	binary.LittleEndian.PutUint32(msg[16:], 48)
	binary.LittleEndian.PutUint32(msg[20:], 0x00080201)
	copy(msg[24:32], []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef})
	binary.LittleEndian.PutUint32(msg[44:], 48)
	return msg
}

func extractAddress(line string) string {
	start := strings.Index(line, "<")
	end := strings.Index(line, ">")
	if start < 0 || end < start {
		return ""
	}
	return line[start+1 : end]
}
