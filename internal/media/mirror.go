package media

import (
	"context"
	"strings"
)

// Mirror copies a remote asset into storage we control.
// Upload never fails loudly: ok=false tells the caller to use its fallback.
type Mirror interface {
	Upload(ctx context.Context, remoteURL, label string) (ref string, ok bool)
}

// NormalizeURL turns protocol-relative URLs ("//host/x.png") into https URLs.
func NormalizeURL(u string) string {
	u = strings.TrimSpace(u)
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	return u
}

// NopMirror is used when no bucket is configured; every upload falls back.
type NopMirror struct{}

func (NopMirror) Upload(context.Context, string, string) (string, bool) {
	return "", false
}
