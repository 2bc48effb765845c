// Copyright (c) 2026 Ripple. All rights reserved.
// Author: vu.tranle.dev@gmail.com

package post

import "regexp"

// # Content Markup Extraction

var (
	// hashtagRegex matches "#tag" tokens; the capture group drops the marker.
	hashtagRegex = regexp.MustCompile(`#(\w+)`)
	// mentionRegex matches "@username" tokens; the capture group drops the marker.
	mentionRegex = regexp.MustCompile(`@(\w+)`)
)

// ExtractHashtags returns the hashtags in content, in source order, with the
// leading '#' stripped and the author's casing preserved.
//
// Case-insensitive matching happens at lookup time via pkg/tag, never here:
// display text is the author's text.
func ExtractHashtags(content string) []string {
	return extract(hashtagRegex, content)
}

// ExtractMentions returns the mentions in content, in source order, with the
// leading '@' stripped and casing preserved.
func ExtractMentions(content string) []string {
	return extract(mentionRegex, content)
}

// extract collects the first capture group of every match.
func extract(pattern *regexp.Regexp, content string) []string {
	matches := pattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	result := make([]string, 0, len(matches))
	for _, match := range matches {
		result = append(result, match[1])
	}

	return result
}
