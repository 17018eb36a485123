package model

import (
	"strings"
	"unicode"
)

const (
	maxTitleWords     = 7
	longWordThreshold = 10
)

// DisplayTitle is the text shown for a node: its title, else its label, else its ID.
func (n *Node) DisplayTitle() string {
	switch {
	case strings.TrimSpace(n.Title) != "":
		return n.Title
	case strings.TrimSpace(n.Label) != "":
		return n.Label
	default:
		return n.ID
	}
}

// TruncatedTitle limits the display title to seven words, marking the cut with "...".
func (n *Node) TruncatedTitle() string {
	words := strings.Fields(n.DisplayTitle())
	if len(words) <= maxTitleWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:maxTitleWords], " ") + "..."
}

// SmallText reports whether the truncated title has a word long enough to
// need the reduced font. Hyphenated parts count as separate words.
func (n *Node) SmallText() bool {
	words := strings.FieldsFunc(n.TruncatedTitle(), func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
	for _, w := range words {
		if len([]rune(w)) > longWordThreshold {
			return true
		}
	}
	return false
}

// EdgeStyle is the CSS class of a drawn edge.
type EdgeStyle string

const (
	EdgeStyleDefault     EdgeStyle = ""
	EdgeStyleMentioning  EdgeStyle = "mentioning"
	EdgeStyleMentionedBy EdgeStyle = "mentioned-by"
)

// StyleFor picks the class of a link. Mention and person graphs distinguish
// the two mention directions.
func StyleFor(graphType GraphType, l *Link) EdgeStyle {
	if graphType != GraphMentions && graphType != GraphPersonAuthorshipOwnership {
		return EdgeStyleDefault
	}
	for _, t := range l.Types {
		switch {
		case strings.HasSuffix(t, "_is_mentioned_by"):
			return EdgeStyleMentionedBy
		case strings.HasSuffix(t, "_is_mentioning"):
			return EdgeStyleMentioning
		}
	}
	return EdgeStyleDefault
}
