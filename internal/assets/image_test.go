package assets

import (
	"testing"

	"cfmigrate/internal/models"
)

func TestExtractImage(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   models.ImageReference
		wantOK bool
	}{
		{
			name:   "With title",
			text:   `![alt](old.jpg "t")`,
			want:   models.ImageReference{Alt: "alt", Src: "old.jpg", Title: "t", FileType: "jpg"},
			wantOK: true,
		},
		{
			name:   "Only first image",
			text:   "intro\n![one](/a/1.PNG)\n![two](/a/2.gif)",
			want:   models.ImageReference{Alt: "one", Src: "/a/1.PNG", FileType: "png"},
			wantOK: true,
		},
		{
			name:   "Query string",
			text:   "![q](https://cdn.example.com/p.webp?w=300)",
			want:   models.ImageReference{Alt: "q", Src: "https://cdn.example.com/p.webp?w=300", FileType: "webp"},
			wantOK: true,
		},
		{
			name:   "No extension",
			text:   "![](/assets/image)",
			want:   models.ImageReference{Src: "/assets/image"},
			wantOK: true,
		},
		{
			name:   "No image",
			text:   "just text [link](x.html)",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractImage(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ExtractImage() ok = %v, want %v", ok, tt.wantOK)
			}

			if got != tt.want {
				t.Errorf("ExtractImage() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStripImages(t *testing.T) {
	text := "Before.\n![a](a.png) trailing caption\nMiddle.\n![b](b.png \"B\")\nAfter."

	want := "Before.\nMiddle.\nAfter."
	if got := StripImages(text); got != want {
		t.Errorf("StripImages() = %q, want %q", got, want)
	}

	if got := StripImages("![only](x.jpg)"); got != "" {
		t.Errorf("StripImages() = %q, want empty", got)
	}
}

func TestFileType(t *testing.T) {
	tests := map[string]string{
		"photo.JPEG":           "jpeg",
		"/a/b.c/photo.png?x=1": "png",
		"noext":                "",
		"/dir.v2/file":         "",
	}

	for src, want := range tests {
		if got := FileType(src); got != want {
			t.Errorf("FileType(%q) = %q, want %q", src, got, want)
		}
	}
}
