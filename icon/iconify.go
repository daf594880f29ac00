package icon

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"

	"github.com/glyphgen/glyphgen/retry"
	"github.com/glyphgen/glyphgen/web"
)

// DefaultIconifyEndpoint is the public Iconify API host.
const DefaultIconifyEndpoint = "https://api.iconify.design"

// iconRefPattern matches "collection:name" and "collection/name"
// references, e.g. "mdi:home" or "fa6-solid/rocket".
var iconRefPattern = regexp.MustCompile(`^([a-z0-9-]+)[:/]([a-z0-9-]+)$`)

// parseIconRef splits an Iconify reference into collection and name.
func parseIconRef(ref string) (collection, name string, err error) {
	m := iconRefPattern.FindStringSubmatch(ref)
	if m == nil {
		return "", "", &NotFoundError{
			Ref: ref,
			Err: fmt.Errorf("invalid icon reference (expected collection:name)"),
		}
	}
	return m[1], m[2], nil
}

// iconifyURL builds the SVG endpoint for a reference. The color parameter
// pre-tints currentColor fills server-side; gradient requests fetch black
// so the pixel data keeps full coverage for later recoloring.
func (g *Generator) iconifyURL(collection, name, fetchColor string) string {
	u := fmt.Sprintf("%s/%s/%s.svg", g.iconifyEndpoint, collection, name)
	if fetchColor != "" {
		u += "?color=" + url.QueryEscape(fetchColor)
	}
	return u
}

// fetch retrieves a URL through the shared fetcher, retrying recoverable
// HTTP failures (429 and transient 5xx) with backoff.
func (g *Generator) fetch(ctx context.Context, rawURL string) (*web.FetchResult, error) {
	var result *web.FetchResult
	err := retry.Do(ctx, func() error {
		res, err := g.fetcher.Fetch(ctx, rawURL)
		if err != nil {
			var fe *web.FetchError
			if errors.As(err, &fe) && !fe.IsRecoverable() {
				return retry.MarkPermanent(err)
			}
			g.logger.Warn("fetch failed, may retry", "url", rawURL, "error", err)
			return err
		}
		result = res
		return nil
	}, retry.WithMaxRetries(g.maxRetries), retry.WithBaseWait(g.retryBaseWait))
	if err != nil {
		return nil, err
	}
	return result, nil
}
