/*Package comm provides the byte transport to a board side agent, over TCP or
RS-232.

Connecting is retried with an exponential backoff, since agents that are still
booting refuse connections for a while.  Transactions are never retried: a
failed exchange is returned to the caller, who decides what it means.

Usage:

	rd := comm.NewRemoteDevice("192.168.1.40:5000", false, comm.Options{})
	if err := rd.Open(); err != nil {
		return err
	}
	defer rd.Close()
	resp, err := rd.Exchange(req, readFrame)
*/
package comm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/tarm/serial"
	"golang.org/x/time/rate"
)

var (
	// ErrNotConnected is generated when .Conn is nil and Exchange is called.
	ErrNotConnected = errors.New("conn is nil, not connected to remote")
)

// Options tune a RemoteDevice.  The zero value is usable.
type Options struct {
	// Baud is the serial line rate, 115200 if zero
	Baud int

	// Timeout bounds one exchange, 3 s if zero
	Timeout time.Duration

	// ConnectTimeout bounds the connect backoff, 3 s if zero
	ConnectTimeout time.Duration

	// Rate limits exchanges per second, unlimited if zero
	Rate  float64
	Burst int
}

// ReadFunc reads one response from r
type ReadFunc func(r *bufio.Reader) ([]byte, error)

/*RemoteDevice has an address and exchanges requests and responses with it.

It is safe for concurrent use; exchanges are serialized in the order they
acquire the device.
*/
type RemoteDevice struct {
	Addr     string
	IsSerial bool
	Conn     io.ReadWriteCloser

	opts    Options
	limiter *rate.Limiter
	reader  *bufio.Reader
	mu      sync.Mutex

	// dial is replaced in tests
	dial func() (io.ReadWriteCloser, error)
}

// NewRemoteDevice creates a new RemoteDevice instance
func NewRemoteDevice(addr string, serial bool, opts Options) *RemoteDevice {
	if opts.Baud == 0 {
		opts.Baud = 115200
	}
	if opts.Timeout == 0 {
		opts.Timeout = 3 * time.Second
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 3 * time.Second
	}
	lim := rate.NewLimiter(rate.Inf, 1)
	if opts.Rate > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		lim = rate.NewLimiter(rate.Limit(opts.Rate), burst)
	}
	rd := &RemoteDevice{Addr: addr, IsSerial: serial, opts: opts, limiter: lim}
	rd.dial = rd.open
	return rd
}

// SerialConf yields a pointer to a serial config object for use with serial.OpenPort
func (rd *RemoteDevice) SerialConf() *serial.Config {
	return &serial.Config{Name: rd.Addr, Baud: rd.opts.Baud, ReadTimeout: rd.opts.Timeout}
}

// Open the connection, setting the Conn variable
func (rd *RemoteDevice) Open() error {
	rd.mu.Lock()
	defer rd.mu.Unlock()
	if rd.Conn != nil {
		return nil
	}
	var conn io.ReadWriteCloser
	op := func() error {
		c, err := rd.dial()
		if err != nil {
			return err
		}
		conn = c
		return nil
	}
	// the agent refuses connections while it boots
	err := backoff.Retry(op, &backoff.ExponentialBackOff{
		InitialInterval:     25 * time.Millisecond,
		RandomizationFactor: 0.,
		Multiplier:          2.,
		MaxInterval:         1 * time.Second,
		MaxElapsedTime:      rd.opts.ConnectTimeout,
		Clock:               backoff.SystemClock})
	if err != nil {
		return fmt.Errorf("connection to %s: %w", rd.Addr, err)
	}
	rd.Conn = conn
	rd.reader = bufio.NewReader(conn)
	return nil
}

func (rd *RemoteDevice) open() (io.ReadWriteCloser, error) {
	if rd.IsSerial {
		return serial.OpenPort(rd.SerialConf())
	}
	return TCPSetup(rd.Addr, rd.opts.Timeout)
}

// Close the connection, nil-ing the Conn variable
func (rd *RemoteDevice) Close() error {
	rd.mu.Lock()
	defer rd.mu.Unlock()
	if rd.Conn == nil {
		return nil
	}
	err := rd.Conn.Close()
	if err == nil {
		rd.Conn = nil
		rd.reader = nil
	}
	return err
}

// Exchange writes b and reads one response with read.  The exchange waits
// for the rate limiter first and is bounded by the timeout.
func (rd *RemoteDevice) Exchange(b []byte, read ReadFunc) ([]byte, error) {
	rd.mu.Lock()
	defer rd.mu.Unlock()
	if rd.Conn == nil {
		return nil, ErrNotConnected
	}
	ctx, cancel := context.WithTimeout(context.Background(), rd.opts.Timeout)
	defer cancel()
	if err := rd.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	if nc, ok := rd.Conn.(net.Conn); ok {
		nc.SetDeadline(time.Now().Add(rd.opts.Timeout))
	}
	if _, err := rd.Conn.Write(b); err != nil {
		return nil, err
	}
	return read(rd.reader)
}

// TCPSetup opens a new TCP connection and sets a timeout on connect, read, and write
func TCPSetup(addr string, timeout time.Duration) (net.Conn, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, err
	}
	deadline := time.Now().Add(timeout)
	conn.SetReadDeadline(deadline)
	conn.SetWriteDeadline(deadline)
	return conn, nil
}
