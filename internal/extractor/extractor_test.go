package extractor

import (
	"reflect"
	"testing"
)

const article = `**Title Tag:** Career Tips | Site
**Meta Description:** How to grow
**Meta Keywords:** career, growth
**Page Title:** Ten Career Tips

**Date:** July 4th, 2023
**Read Time:** 7 minutes

**Article Content:**

## First
Text one.

**Search Tags:** tips, women&#039;s careers,  growth
`

func TestExtractor_Extract(t *testing.T) {
	e := NewExtractor()

	meta, body := e.Extract(article)

	if meta.Title != "Ten Career Tips" {
		t.Errorf("Title = %q", meta.Title)
	}

	if meta.MetaTitle != "Career Tips | Site" {
		t.Errorf("MetaTitle = %q", meta.MetaTitle)
	}

	if meta.MetaDescription != "How to grow" || meta.MetaKeywords != "career, growth" {
		t.Errorf("description/keywords = %q / %q", meta.MetaDescription, meta.MetaKeywords)
	}

	if meta.DateText != "July 4th, 2023" {
		t.Errorf("DateText = %q", meta.DateText)
	}

	if meta.ReadTime != "7" {
		t.Errorf("ReadTime = %q, want 7", meta.ReadTime)
	}

	wantTags := []string{"tips", "women's careers", "growth"}
	if !reflect.DeepEqual(meta.Tags, wantTags) {
		t.Errorf("Tags = %q, want %q", meta.Tags, wantTags)
	}

	if body != "## First\nText one." {
		t.Errorf("body = %q", body)
	}
}

func TestExtractor_Extract_Absent(t *testing.T) {
	meta, body := NewExtractor().Extract("nothing labeled here")

	if meta.Title != "" || meta.MetaTitle != "" || meta.DateText != "" || meta.Quote != "" {
		t.Errorf("expected empty fields, got %+v", meta)
	}

	if meta.Tags == nil || len(meta.Tags) != 0 {
		t.Errorf("Tags = %#v, want empty non-nil slice", meta.Tags)
	}

	if body != "" {
		t.Errorf("body = %q, want empty", body)
	}
}

func TestExtractor_PageTitleNeedsBlankLine(t *testing.T) {
	meta, _ := NewExtractor().Extract("**Page Title:** No blank line\n**Date:** x")
	if meta.Title != "" {
		t.Errorf("Title = %q, want empty", meta.Title)
	}
}

func TestSplitDesignation(t *testing.T) {
	tests := []struct {
		input        string
		wantFirst    string
		wantLocation string
	}{
		{"MBA, Mumbai", "MBA", "Mumbai"},
		{"MBA, Mumbai, India", "MBA", "Mumbai, India"},
		{"Self taught", "Self taught", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			first, location := SplitDesignation(tt.input)
			if first != tt.wantFirst || location != tt.wantLocation {
				t.Errorf("SplitDesignation(%q) = %q, %q", tt.input, first, location)
			}
		})
	}
}

func TestSplitTags(t *testing.T) {
	if got := SplitTags(""); len(got) != 0 {
		t.Errorf("SplitTags(\"\") = %q, want empty", got)
	}

	if got := SplitTags("a"); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("SplitTags(a) = %q", got)
	}
}
