package gopher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"syscall"
	"time"

	"github.com/miekg/dns"
)

const (
	// CRLF terminates every Gopher request line.
	CRLF = "\r\n"

	chunkSize      = 4096
	connectTimeout = 5 * time.Second
	readTimeout    = 5 * time.Second
	overallTimeout = 5 * time.Second
)

// menuTerminator is the loose end-of-menu sentinel this codec strips: a
// trailing ".CRLF" on the response body. The original source also has a
// stricter "CRLFdotCRLF" variant; the loose form is what spec.md mandates,
// named here as its own constant so the stricter form is a one-line swap.
const menuTerminator = "." + CRLF

// hasMenuTerminator reports whether payload ends with menuTerminator.
func hasMenuTerminator(payload []byte) bool {
	return bytes.HasSuffix(payload, []byte(menuTerminator))
}

// resolveAddrs resolves host to an ordered list of IP addresses, using the
// system's configured stub resolver (read from /etc/resolv.conf) when
// available and falling back to the Go runtime resolver otherwise. An IP
// literal host resolves to itself without a lookup.
func resolveAddrs(host string) ([]net.IP, error) {
	if ip := net.ParseIP(host); ip != nil {
		return []net.IP{ip}, nil
	}

	if cfg, err := dns.ClientConfigFromFile("/etc/resolv.conf"); err == nil && len(cfg.Servers) > 0 {
		client := new(dns.Client)
		server := net.JoinHostPort(cfg.Servers[0], cfg.Port)
		fqdn := dns.Fqdn(host)

		var ips []net.IP
		for _, qtype := range [...]uint16{dns.TypeA, dns.TypeAAAA} {
			msg := new(dns.Msg)
			msg.SetQuestion(fqdn, qtype)
			in, _, exchangeErr := client.Exchange(msg, server)
			if exchangeErr != nil || in == nil {
				continue
			}
			for _, ans := range in.Answer {
				switch rr := ans.(type) {
				case *dns.A:
					ips = append(ips, rr.A)
				case *dns.AAAA:
					ips = append(ips, rr.AAAA)
				}
			}
		}
		if len(ips) > 0 {
			return ips, nil
		}
	}

	addrs, err := net.DefaultResolver.LookupIPAddr(context.Background(), host)
	if err != nil {
		return nil, err
	}
	ips := make([]net.IP, len(addrs))
	for i, a := range addrs {
		ips[i] = a.IP
	}
	return ips, nil
}

// connect resolves host:port and attempts each resolved address in order,
// returning the first successful TCP connection.
func connect(host string, port uint16) (net.Conn, error) {
	ips, err := resolveAddrs(host)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", host, err)
	}

	var lastErr error
	for _, ip := range ips {
		addr := net.JoinHostPort(ip.String(), strconv.Itoa(int(port)))
		conn, dialErr := net.DialTimeout("tcp", addr, connectTimeout)
		if dialErr == nil {
			return conn, nil
		}
		lastErr = dialErr
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no addresses for %s", host)
	}
	return nil, lastErr
}

// Probe attempts a single bare TCP connection to host:port, for external
// directory reachability checks. It performs no Gopher exchange.
func Probe(host string, port uint16) bool {
	conn, err := connect(host, port)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// Fetch performs one Gopher request/response cycle over a fresh connection.
// The returned error is non-nil only for unexpected OS-level failures (a
// hard failure per spec.md §7); all protocol-level outcomes are carried in
// the returned Response's Outcome field.
func Fetch(req Request) (Response, error) {
	conn, err := connect(req.Host, req.Port)
	if err != nil {
		return Response{Outcome: ConnectionFailed}, nil
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(req.Selector + CRLF)); err != nil {
		return Response{}, err
	}

	payload, outcome, err := readResponse(conn)
	if err != nil {
		return Response{}, err
	}
	if outcome != Complete {
		return Response{Payload: payload, Outcome: outcome}, nil
	}

	if req.Type == Text || req.Type == Directory {
		if !hasMenuTerminator(payload) {
			return Response{Payload: payload, Outcome: MissingTerminator}, nil
		}
		return Response{Payload: payload[:len(payload)-len(menuTerminator)], Outcome: Complete}, nil
	}
	return Response{Payload: payload, Outcome: Complete}, nil
}

// readResponse reads conn into a growing buffer under a per-read and an
// overall deadline, retrying interrupted reads transparently.
func readResponse(conn net.Conn) ([]byte, Outcome, error) {
	start := time.Now()
	buf := make([]byte, chunkSize)
	var payload []byte

	for {
		if time.Since(start) >= overallTimeout {
			return payload, TooLarge, nil
		}

		if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
			return nil, 0, err
		}

		n, err := conn.Read(buf)
		if n > 0 {
			payload = append(payload, buf[:n]...)
		}
		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) {
			return payload, Complete, nil
		}
		if errors.Is(err, syscall.EINTR) {
			continue
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return payload, Timeout, nil
		}
		return nil, 0, err
	}
}
