// Package browser opens links with the desktop's default handler.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// Command returns the program and arguments that open target on goos.
func Command(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}

// Open starts the default handler for target without waiting for it.
func Open(target string) error {
	if err := Validate(target); err != nil {
		return err
	}
	name, args := Command(runtime.GOOS, target)
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", target, err)
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

// Validate accepts http, https and mailto links only.
func Validate(target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("invalid link %q: %w", target, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "mailto":
		return nil
	default:
		return fmt.Errorf("unsupported link scheme %q", u.Scheme)
	}
}

// Mailto builds a mailto link for address.
func Mailto(address string) string {
	return (&url.URL{Scheme: "mailto", Opaque: address}).String()
}
