package scrape

import (
	"net/http"
	"strings"
)

// Interstitial names the kind of page served in place of the requested
// reference page.
type Interstitial string

const (
	NoInterstitial      Interstitial = ""
	CloudflareChallenge Interstitial = "cloudflare"
	CaptchaWall         Interstitial = "captcha"
	ScriptShell         Interstitial = "script_shell"
)

const (
	// Specialty pages on the reference site carry a reCAPTCHA in their
	// contact form, so only small pages count as captcha walls.
	captchaWallMaxBytes = 16 * 1024
	scriptShellMaxBytes = 2000
)

var challengeMarkers = []string{"checking your browser", "cf-browser-verification"}

// DetectInterstitial inspects a fetched page and reports whether it is an
// anti-bot page rather than billing content.
func DetectInterstitial(resp *http.Response, body []byte) Interstitial {
	if resp == nil {
		return NoInterstitial
	}
	if cloudflareRejected(resp) {
		return CloudflareChallenge
	}

	lower := strings.ToLower(string(body))
	switch {
	case containsAny(lower, challengeMarkers),
		strings.Contains(lower, "cloudflare") && strings.Contains(lower, "challenge"):
		return CloudflareChallenge
	case len(body) < captchaWallMaxBytes && strings.Contains(lower, "captcha"):
		return CaptchaWall
	case len(body) < scriptShellMaxBytes && scriptOnly(lower):
		return ScriptShell
	}
	return NoInterstitial
}

// cloudflareRejected matches a 403 or 503 answered by the Cloudflare edge.
func cloudflareRejected(resp *http.Response) bool {
	if resp.StatusCode != http.StatusForbidden && resp.StatusCode != http.StatusServiceUnavailable {
		return false
	}
	return resp.Header.Get("cf-ray") != "" ||
		resp.Header.Get("cf-cache-status") != "" ||
		strings.EqualFold(resp.Header.Get("server"), "cloudflare")
}

func scriptOnly(lower string) bool {
	if strings.Contains(lower, `meta http-equiv="refresh"`) {
		return true
	}
	return strings.Contains(lower, "<noscript") && strings.Contains(lower, "javascript")
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
