package model

import "testing"

func TestDisplayTitle(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{Node{ID: "n1", Title: "The Tempest", Label: "tempest"}, "The Tempest"},
		{Node{ID: "n1", Title: "  ", Label: "tempest"}, "tempest"},
		{Node{ID: "n1"}, "n1"},
	}

	for _, tt := range tests {
		if got := tt.node.DisplayTitle(); got != tt.want {
			t.Errorf("DisplayTitle() = %q, want %q", got, tt.want)
		}
	}
}

func TestTruncatedTitle(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Short title", "Short title"},
		{"one two three four five six seven", "one two three four five six seven"},
		{"one two three four five six seven eight nine", "one two three four five six seven..."},
	}

	for _, tt := range tests {
		n := Node{ID: "x", Title: tt.title}
		if got := n.TruncatedTitle(); got != tt.want {
			t.Errorf("TruncatedTitle(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestSmallText(t *testing.T) {
	if (&Node{Title: "Short words only"}).SmallText() {
		t.Errorf("expected normal text for short words")
	}
	if !(&Node{Title: "Reisebeschreibungen"}).SmallText() {
		t.Errorf("expected small text for a long word")
	}
	if (&Node{Title: "Commedia-dell-arte"}).SmallText() {
		t.Errorf("expected hyphenated parts to count as separate words")
	}
	if !(&Node{Title: "Anti-Reisebeschreibungen"}).SmallText() {
		t.Errorf("expected small text for a long hyphenated part")
	}
}

func TestStyleFor(t *testing.T) {
	mentioning := &Link{Types: []string{"person_is_mentioning"}}
	mentioned := &Link{Types: []string{"work_is_mentioned_by"}}
	plain := &Link{Types: []string{"owns"}}

	tests := []struct {
		graphType GraphType
		link      *Link
		want      EdgeStyle
	}{
		{GraphMentions, mentioning, EdgeStyleMentioning},
		{GraphMentions, mentioned, EdgeStyleMentionedBy},
		{GraphMentions, plain, EdgeStyleDefault},
		{GraphPersonAuthorshipOwnership, mentioning, EdgeStyleMentioning},
		{GraphPersonAuthorshipOwnership, mentioned, EdgeStyleMentionedBy},
		{GraphGeneral, mentioning, EdgeStyleDefault},
	}

	for _, tt := range tests {
		if got := StyleFor(tt.graphType, tt.link); got != tt.want {
			t.Errorf("StyleFor(%s, %v) = %q, want %q", tt.graphType, tt.link.Types, got, tt.want)
		}
	}
}
