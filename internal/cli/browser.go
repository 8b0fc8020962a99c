package cli

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

var openers = map[string][]string{
	"darwin":  {"open"},
	"linux":   {"xdg-open"},
	"freebsd": {"xdg-open"},
	"windows": {"rundll32", "url.dll,FileProtocolHandler"},
}

// browserCommand returns the command that opens rawURL on goos.
func browserCommand(goos, rawURL string) (*exec.Cmd, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" && u.Scheme != "file" {
		return nil, fmt.Errorf("refusing to open %q URL", u.Scheme)
	}
	argv, ok := openers[goos]
	if !ok {
		return nil, fmt.Errorf("no browser opener for %s", goos)
	}
	return exec.Command(argv[0], append(argv[1:], rawURL)...), nil
}

// openBrowser opens rawURL with the desktop's default handler and does not
// wait for it.
func openBrowser(rawURL string) error {
	cmd, err := browserCommand(runtime.GOOS, rawURL)
	if err != nil {
		return err
	}
	return cmd.Start()
}
