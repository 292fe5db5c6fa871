// Package tarsnap wraps the tarsnap command-line binary. The binary's
// argv/stdout contract is the only interface tarsnap exposes; stderr is
// passed through to the user untouched.
package tarsnap

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/c4rlo/tarsnap-prune/internal/core/logger"
	"github.com/c4rlo/tarsnap-prune/pkg/errs"
)

// DefaultBinary is the tarsnap executable name resolved via PATH.
const DefaultBinary = "tarsnap"

// Client invokes the tarsnap binary with a fixed base configuration.
type Client struct {
	binary  string
	keyfile string
	stderr  io.Writer
	log     *logger.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithStderr redirects sub-process stderr (default: the process's own stderr).
func WithStderr(w io.Writer) Option {
	return func(c *Client) { c.stderr = w }
}

// New creates a Client for the given binary path. keyfile may be empty, in
// which case tarsnap uses its own configured default key.
func New(binary, keyfile string, log *logger.Logger, opts ...Option) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	c := &Client{
		binary:  binary,
		keyfile: keyfile,
		stderr:  os.Stderr,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// baseArgs returns the argument prefix shared by every invocation.
func (c *Client) baseArgs() []string {
	if c.keyfile != "" {
		return []string{"--keyfile", c.keyfile}
	}
	return nil
}

// ListArchives returns the raw verbose archive listing, one
// "name<TAB>timestamp" line per archive. TZ=UTC is forced so listing
// timestamps are stable regardless of the local zone.
func (c *Client) ListArchives(ctx context.Context) (string, error) {
	args := append(c.baseArgs(), "--list-archives", "-v")
	cmd := exec.CommandContext(ctx, c.binary, args...)
	cmd.Env = append(os.Environ(), "TZ=UTC")

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = c.stderr

	c.log.Debug("running tarsnap", "args", strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		return "", errs.Wrap(err, errs.ErrTarsnapList, "tarsnap.listarchives").
			WithResource(c.commandString(args)).
			WithAdvice("check that tarsnap is installed and the key file is readable")
	}
	return out.String(), nil
}

// Delete removes the named archives in a single tarsnap invocation.
func (c *Client) Delete(ctx context.Context, names []string) error {
	args := append(c.baseArgs(), "-d")
	for _, name := range names {
		args = append(args, "-f", name)
	}
	cmd := exec.CommandContext(ctx, c.binary, args...)
	cmd.Stdout = c.stderr
	cmd.Stderr = c.stderr

	c.log.Info("deleting archives", "count", len(names))
	if err := cmd.Run(); err != nil {
		return errs.Wrap(err, errs.ErrTarsnapDelete, "tarsnap.delete").
			WithResource(c.commandString(args))
	}
	return nil
}

func (c *Client) commandString(args []string) string {
	return c.binary + " " + strings.Join(args, " ")
}
