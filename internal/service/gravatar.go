package service

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strings"
)

// GravatarURL derives the default avatar for an email address.
// Size 200, rating pg, mystery-man fallback.
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))

	query := url.Values{}
	query.Set("s", "200")
	query.Set("r", "pg")
	query.Set("d", "mm")

	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?" + query.Encode()
}
