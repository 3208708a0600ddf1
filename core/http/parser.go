package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/http/httpguts"

	"github.com/searchktools/saaba/core/pools"
)

// DefaultMaxHeaderBytes bounds the request line plus header block
const DefaultMaxHeaderBytes = 1 << 20

const initialReadSize = 2048

var (
	ErrEmptyRequest         = errors.New("empty request")
	ErrMalformedRequestLine = errors.New("malformed request line")
	ErrMalformedHeader      = errors.New("malformed header")
	ErrHeaderTooLarge       = errors.New("request header too large")
)

// Reader reads request heads into pooled buffers. The buffer starts at 2 KiB
// and doubles up to the header limit; every size it passes through is a pool
// tier, so no read buffer is left to the GC.
type Reader struct {
	maxHeaderBytes int
	buffers        *pools.BytePool
}

// NewReader creates a Reader bounded by maxHeaderBytes. Non-positive values
// select DefaultMaxHeaderBytes.
func NewReader(maxHeaderBytes int) *Reader {
	if maxHeaderBytes <= 0 {
		maxHeaderBytes = DefaultMaxHeaderBytes
	}
	return &Reader{
		maxHeaderBytes: maxHeaderBytes,
		buffers:        pools.NewBytePoolWithSizes(pools.GrowthTiers(initialReadSize, maxHeaderBytes)),
	}
}

// MaxHeaderBytes returns the head size limit
func (rd *Reader) MaxHeaderBytes() int {
	return rd.maxHeaderBytes
}

var defaultReader = NewReader(DefaultMaxHeaderBytes)

// ReadRequest reads a request head from r and parses it, using a shared
// Reader when maxHeaderBytes is the default
func ReadRequest(r io.Reader, maxHeaderBytes int) (*Request, error) {
	if maxHeaderBytes <= 0 || maxHeaderBytes == DefaultMaxHeaderBytes {
		return defaultReader.Read(r)
	}
	return NewReader(maxHeaderBytes).Read(r)
}

// Read reads a request head from r and parses it. Reading stops at the blank
// line ending the header block, or at EOF. Bodies are not consumed.
func (rd *Reader) Read(r io.Reader) (*Request, error) {
	size := initialReadSize
	if size > rd.maxHeaderBytes {
		size = rd.maxHeaderBytes
	}
	buf := rd.buffers.Get(size)
	defer func() { rd.buffers.Put(buf) }()

	n := 0
	for {
		if end := headerEnd(buf[:n]); end >= 0 {
			return ParseRequest(buf[:end])
		}

		if n == len(buf) {
			if len(buf) >= rd.maxHeaderBytes {
				return nil, ErrHeaderTooLarge
			}
			grown := len(buf) * 2
			if grown > rd.maxHeaderBytes {
				grown = rd.maxHeaderBytes
			}
			larger := rd.buffers.Get(grown)
			copy(larger, buf[:n])
			rd.buffers.Put(buf)
			buf = larger
		}

		m, err := r.Read(buf[n:])
		n += m
		if err != nil {
			if errors.Is(err, io.EOF) {
				if n == 0 {
					return nil, ErrEmptyRequest
				}
				return ParseRequest(buf[:n])
			}
			return nil, fmt.Errorf("read request: %w", err)
		}
	}
}

// headerEnd returns the offset just past the blank line ending the head, or -1
func headerEnd(data []byte) int {
	crlf := bytes.Index(data, []byte("\r\n\r\n"))
	lf := bytes.Index(data, []byte("\n\n"))
	switch {
	case crlf == -1 && lf == -1:
		return -1
	case lf == -1 || (crlf != -1 && crlf < lf):
		return crlf + 4
	default:
		return lf + 2
	}
}

// ParseRequest parses a request head: the request line and header lines up to
// the first blank line. Both CRLF and bare LF line endings are accepted.
func ParseRequest(data []byte) (*Request, error) {
	line, rest := nextLine(data)
	if len(bytes.TrimSpace(line)) == 0 {
		return nil, ErrEmptyRequest
	}

	req, err := parseRequestLine(string(line))
	if err != nil {
		return nil, err
	}

	for len(rest) > 0 {
		line, rest = nextLine(rest)
		if len(line) == 0 {
			break
		}
		if err := parseHeaderLine(req.Headers, line); err != nil {
			return nil, err
		}
	}

	return req, nil
}

func nextLine(data []byte) (line, rest []byte) {
	idx := bytes.IndexByte(data, '\n')
	if idx == -1 {
		line, rest = data, nil
	} else {
		line, rest = data[:idx], data[idx+1:]
	}
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	return line, rest
}

func parseRequestLine(line string) (*Request, error) {
	parts := strings.Split(line, " ")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("%w: %q", ErrMalformedRequestLine, line)
	}

	method, err := ParseMethod(parts[0])
	if err != nil {
		return nil, err
	}

	if !strings.HasPrefix(parts[2], "HTTP/") {
		return nil, fmt.Errorf("%w: unrecognized protocol %q", ErrMalformedRequestLine, parts[2])
	}

	url, ok := requestPath(parts[1])
	if !ok {
		return nil, fmt.Errorf("%w: bad request target %q", ErrMalformedRequestLine, parts[1])
	}

	return &Request{
		Method:  method,
		URL:     url,
		Proto:   parts[2],
		Headers: NewHeader(),
	}, nil
}

// requestPath reduces a request target to its path
func requestPath(target string) (string, bool) {
	if target == "*" {
		return target, true
	}

	if i := strings.Index(target, "://"); i > 0 && !strings.HasPrefix(target, "/") {
		authority := target[i+3:]
		slash := strings.IndexByte(authority, '/')
		if slash == -1 {
			target = "/"
		} else {
			target = authority[slash:]
		}
	}

	if i := strings.IndexAny(target, "?#"); i != -1 {
		target = target[:i]
	}

	if !strings.HasPrefix(target, "/") {
		return "", false
	}
	return target, true
}

func parseHeaderLine(h Header, line []byte) error {
	colon := bytes.IndexByte(line, ':')
	if colon <= 0 {
		return fmt.Errorf("%w: %q", ErrMalformedHeader, line)
	}

	name := string(line[:colon])
	if !httpguts.ValidHeaderFieldName(name) {
		return fmt.Errorf("%w: invalid field name %q", ErrMalformedHeader, name)
	}

	value := string(bytes.TrimSpace(line[colon+1:]))
	if !httpguts.ValidHeaderFieldValue(value) {
		return fmt.Errorf("%w: invalid value for %s", ErrMalformedHeader, name)
	}

	h.Add(name, value)
	return nil
}
