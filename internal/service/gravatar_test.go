package service

import (
	"strings"
	"testing"
)

func TestGravatarURL(t *testing.T) {
	// md5("alice@example.com") = c160f8cc69a4f0bf2b0362752353d060
	url := GravatarURL("alice@example.com")
	if !strings.Contains(url, "c160f8cc69a4f0bf2b0362752353d060") {
		t.Fatalf("unexpected hash in %s", url)
	}
	if !strings.Contains(url, "s=200") || !strings.Contains(url, "d=mm") {
		t.Fatalf("expected default query params in %s", url)
	}
}

func TestGravatarURLNormalizes(t *testing.T) {
	if GravatarURL(" Alice@Example.COM ") != GravatarURL("alice@example.com") {
		t.Fatalf("expected email normalization before hashing")
	}
}
