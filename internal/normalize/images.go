package normalize

import (
	"encoding/json"
	"strings"
)

// PlaceholderImage is shown for listings without a usable photo
const PlaceholderImage = "/assets/hero.jpg"

// IsValidImageURL rejects the empty and sentinel values that upstream data
// carries in image columns and accepts only rooted paths and http(s) URLs.
func IsValidImageURL(s string) bool {
	s = strings.TrimSpace(s)
	switch {
	case s == "", s == "[]", s == "[object Object]":
		return false
	case strings.EqualFold(s, "null"), strings.EqualFold(s, "undefined"):
		return false
	}
	return strings.HasPrefix(s, "/") ||
		strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://")
}

// images collects main, primary and gallery images in that order, keeping
// the first occurrence of each valid URL.
func images(raw RawRecord) []string {
	var out []string
	seen := map[string]bool{}
	add := func(s string) {
		s = strings.TrimSpace(s)
		if !IsValidImageURL(s) || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}

	if s, ok := firstFilled(raw, "main_image", "mainImage"); ok {
		add(s)
	}
	if s, ok := firstFilled(raw, "primary_image", "primaryImage"); ok {
		add(s)
	}
	for _, key := range []string{"other_images", "otherImages", "images"} {
		v, ok := lookup(raw, key)
		if !ok || isBlank(v) {
			continue
		}
		for _, s := range imageList(v) {
			add(s)
		}
		break
	}

	if len(out) == 0 {
		return []string{PlaceholderImage}
	}
	return out
}

// firstFilled returns the first non-blank string among keys, without
// validating it
func firstFilled(raw RawRecord, names ...string) (string, bool) {
	for _, n := range names {
		v, ok := lookup(raw, n)
		if !ok {
			continue
		}
		if s, ok := asText(v); ok {
			return s, true
		}
	}
	return "", false
}

func isBlank(v any) bool {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x) == ""
	case []byte:
		return strings.TrimSpace(string(x)) == ""
	case []any:
		return len(x) == 0
	case []string:
		return len(x) == 0
	}
	return false
}

// imageList reads a gallery value: a native sequence, a JSON array string
// or a comma-joined string.
func imageList(v any) []string {
	switch x := v.(type) {
	case []string:
		return x
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []byte:
		return imageList(string(x))
	case string:
		s := strings.TrimSpace(x)
		var parsed []any
		if err := json.Unmarshal([]byte(s), &parsed); err == nil {
			return imageList(parsed)
		}
		return strings.Split(s, ",")
	}
	return nil
}
