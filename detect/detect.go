// Package detect recognizes bot-protection block pages in HTTP responses.
// The fetch layer uses it to turn a "successful" blocked response into an
// error, so the engine dispatcher escalates to a browser engine instead of
// handing a challenge page to the parsers.
package detect

import (
	"bytes"
	"net/http"
	"strings"
)

// Detector examines a response to determine whether a bot protection
// mechanism blocked or challenged the request. It returns the vendor name
// when it triggers.
type Detector func(statusCode int, headers http.Header, body []byte) (detected bool, source string)

// DefaultDetectors returns the standard list of bot protection detectors.
// Retail sites in the registry are known to sit behind each of these.
func DefaultDetectors() []Detector {
	return []Detector{
		detectCloudflare,
		detectAkamai,
		detectDataDome,
		detectPerimeterX,
		detectGenericCaptcha,
	}
}

// Analyze runs the response through all provided detectors and returns the
// first vendor that triggers.
func Analyze(statusCode int, headers http.Header, body []byte, detectors []Detector) (bool, string) {
	for _, d := range detectors {
		if detected, source := d(statusCode, headers, body); detected {
			return true, source
		}
	}
	return false, ""
}

// detectCloudflare looks for common Cloudflare challenge/block signatures.
func detectCloudflare(statusCode int, headers http.Header, body []byte) (bool, string) {
	// Status codes 403 or 503 are common for CF challenges.
	if statusCode == http.StatusForbidden || statusCode == http.StatusServiceUnavailable {
		if strings.Contains(strings.ToLower(headers.Get("Server")), "cloudflare") {
			return true, "Cloudflare"
		}
		if bytes.Contains(body, []byte("cf-browser-verification")) ||
			bytes.Contains(body, []byte("cf-turnstile")) ||
			bytes.Contains(body, []byte("Attention Required! | Cloudflare")) {
			return true, "Cloudflare"
		}
	}
	return false, ""
}

// detectAkamai looks for Akamai Bot Manager signatures.
func detectAkamai(statusCode int, headers http.Header, body []byte) (bool, string) {
	if statusCode == http.StatusForbidden {
		if strings.Contains(strings.ToLower(headers.Get("Server")), "akamai") {
			return true, "Akamai"
		}
		// Akamai often returns a generic "Reference #" block page.
		if bytes.Contains(body, []byte("Reference #")) && bytes.Contains(body, []byte("Access Denied")) {
			return true, "Akamai"
		}
	}
	return false, ""
}

// detectDataDome looks for DataDome challenge/block signatures.
func detectDataDome(statusCode int, headers http.Header, body []byte) (bool, string) {
	if statusCode == http.StatusForbidden {
		if strings.Contains(strings.ToLower(headers.Get("Server")), "datadome") {
			return true, "DataDome"
		}
		if headers.Get("X-DataDome") != "" || headers.Get("X-DataDome-Response") != "" {
			return true, "DataDome"
		}
		if bytes.Contains(body, []byte("geo.captcha-delivery.com")) || bytes.Contains(body, []byte("datadome")) {
			return true, "DataDome"
		}
	}
	return false, ""
}

// detectPerimeterX looks for PerimeterX (HUMAN) signatures.
func detectPerimeterX(statusCode int, headers http.Header, body []byte) (bool, string) {
	if statusCode == http.StatusForbidden {
		if headers.Get("X-Px-Captcha") != "" {
			return true, "PerimeterX"
		}
		if bytes.Contains(body, []byte("client.perimeterx.net")) ||
			bytes.Contains(body, []byte("px-captcha")) ||
			bytes.Contains(body, []byte("_pxBlock")) {
			return true, "PerimeterX"
		}
	}
	return false, ""
}

// detectGenericCaptcha catches in-house interstitials served with a 200,
// most notably Amazon's "Type the characters you see" page, which would
// otherwise parse as an empty result set instead of escalating.
func detectGenericCaptcha(statusCode int, _ http.Header, body []byte) (bool, string) {
	if statusCode != http.StatusOK && statusCode != http.StatusServiceUnavailable {
		return false, ""
	}
	if bytes.Contains(body, []byte("Type the characters you see in this image")) ||
		bytes.Contains(body, []byte("/errors/validateCaptcha")) {
		return true, "Captcha"
	}
	return false, ""
}
