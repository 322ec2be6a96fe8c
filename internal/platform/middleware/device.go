package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"wordsrecord/pkg/requestcontext"
)

// DeviceFingerprint derives a coarse browser/OS fingerprint from the
// User-Agent and stores it in the request context. Audit events attach it so
// admin actions from an unfamiliar device stand out in review.
// The IP address is deliberately excluded: too volatile to be useful here.
func DeviceFingerprint(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fp := ComputeFingerprint(r.UserAgent())
		ctx := requestcontext.WithDeviceFingerprint(r.Context(), fp)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ComputeFingerprint hashes browser family, major version, OS and platform
// class into a stable hex digest. Empty input yields an empty fingerprint.
func ComputeFingerprint(userAgentString string) string {
	if userAgentString == "" {
		return ""
	}

	ua := useragent.New(userAgentString)
	browser, version := ua.Browser()

	majorVersion := "unknown"
	if version != "" {
		parts := strings.Split(version, ".")
		if len(parts) > 0 && parts[0] != "" {
			majorVersion = parts[0]
		}
	}

	platform := "desktop"
	if ua.Mobile() {
		platform = "mobile"
	}

	browser = strings.ToLower(strings.TrimSpace(browser))
	if browser == "" {
		browser = "unknown"
	}
	os := strings.ToLower(strings.TrimSpace(ua.OS()))
	if os == "" {
		os = "unknown"
	}

	raw := fmt.Sprintf("%s|%s|%s|%s", browser, majorVersion, os, platform)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
