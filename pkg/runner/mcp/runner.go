package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/logging"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
)

// ParseTransport accepts "http" (the default when empty) or "stdio".
func ParseTransport(s string) (Transport, error) {
	switch t := Transport(strings.ToLower(strings.TrimSpace(s))); t {
	case "", TransportHTTP:
		return TransportHTTP, nil
	case TransportStdio:
		return TransportStdio, nil
	default:
		return "", fmt.Errorf("unsupported transport %q (expected http or stdio)", s)
	}
}

// HTTPOptions configure the streamable HTTP transport.
type HTTPOptions struct {
	Host string
	Port int
	Path string
	// CertFile and KeyFile enable TLS; both or neither must be set.
	CertFile string
	KeyFile  string
}

func (o HTTPOptions) path() string {
	p := strings.TrimSpace(o.Path)
	if p == "" {
		return "/mcp"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func (o HTTPOptions) addr() (string, error) {
	host := strings.TrimSpace(o.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	if o.Port < 0 || o.Port > 65535 {
		return "", fmt.Errorf("invalid http port %d", o.Port)
	}
	return net.JoinHostPort(host, strconv.Itoa(o.Port)), nil
}

func (o HTTPOptions) tls() (bool, error) {
	cert, key := strings.TrimSpace(o.CertFile), strings.TrimSpace(o.KeyFile)
	if (cert == "") != (key == "") {
		return false, errors.New("both http tls cert and key must be provided")
	}
	return cert != "", nil
}

// EndpointURL is the address clients connect to once the listener is bound
// to addr. Wildcard hosts are shown as the bound IP or loopback.
func (o HTTPOptions) EndpointURL(addr net.Addr) string {
	scheme := "http"
	if secure, _ := o.tls(); secure {
		scheme = "https"
	}
	tcp, ok := addr.(*net.TCPAddr)
	if !ok {
		return fmt.Sprintf("%s://%s%s", scheme, addr.String(), o.path())
	}
	host := strings.TrimSpace(o.Host)
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
		if tcp.IP != nil && !tcp.IP.IsUnspecified() {
			host = tcp.IP.String()
		}
	}
	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(host, strconv.Itoa(tcp.Port)), o.path())
}

// Runner coordinates MCP server startup.
type Runner struct {
	Service *app.Service
	Name    string
	Version string

	Transport Transport
	HTTP      HTTPOptions
	// OnListening is told the endpoint URL once the HTTP listener is bound.
	OnListening func(url string)
}

// Do executes the runner until ctx is done or the transport fails.
func (r Runner) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("mcp runner requires a calendar service")
	}
	name := r.Name
	if name == "" {
		name = "daybook"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}

	srv := NewServer(NewService(r.Service), name, version)

	switch t := r.Transport; t {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv)
	case TransportStdio:
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("unknown MCP transport %q", t)
	}
}

// NewServer builds the MCP server with every calendar tool and resource
// registered.
func NewServer(svc *Service, name, version string) *server.MCPServer {
	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Read and change calendars and events. Dates are YYYY-MM-DD and times HH:MM in local time."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	secure, err := r.HTTP.tls()
	if err != nil {
		return err
	}
	addr, err := r.HTTP.addr()
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle(r.HTTP.path(), server.NewStreamableHTTPServer(srv))
	httpSrv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("mcp: listen %s: %w", addr, err)
	}
	url := r.HTTP.EndpointURL(ln.Addr())
	logging.Info("mcp: serving", "url", url)
	if r.OnListening != nil {
		r.OnListening(url)
	}

	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
		case <-stopped:
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logging.Error("mcp: shutdown", err)
		}
	}()

	if secure {
		err = httpSrv.ServeTLS(ln, r.HTTP.CertFile, r.HTTP.KeyFile)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
