package downloader

import (
	"reflect"
	"testing"
)

func TestBuildMediaArgs(t *testing.T) {
	tests := []struct {
		name string
		req  MediaRequest
		want []string
	}{
		{
			name: "mp3 extracts audio",
			req:  MediaRequest{URL: "https://youtu.be/abc", OutputPath: "out.mp3", Format: "mp3", Quality: "best"},
			want: []string{"--no-mtime", "-x", "--audio-format", "mp3", "--audio-quality", "192K", "-o", "out.mp3", "--", "https://youtu.be/abc"},
		},
		{
			name: "format id wins over mp3",
			req:  MediaRequest{URL: "https://youtu.be/abc", OutputPath: "out.mp3", Format: "mp3", FormatID: "140"},
			want: []string{"--no-mtime", "-f", "140", "-o", "out.mp3", "--", "https://youtu.be/abc"},
		},
		{
			name: "format id",
			req:  MediaRequest{URL: "https://youtu.be/abc", OutputPath: "out.mp4", Format: "mp4", FormatID: "22"},
			want: []string{"--no-mtime", "-f", "22", "-o", "out.mp4", "--", "https://youtu.be/abc"},
		},
		{
			name: "best",
			req:  MediaRequest{URL: "https://youtu.be/abc", OutputPath: "out.mp4", Format: "mp4", Quality: "best"},
			want: []string{"--no-mtime", "-f", "best", "-o", "out.mp4", "--", "https://youtu.be/abc"},
		},
		{
			name: "1080p",
			req:  MediaRequest{URL: "https://youtu.be/abc", OutputPath: "out.mp4", Quality: "1080p"},
			want: []string{"--no-mtime", "-f", "best[height<=1080]", "-o", "out.mp4", "--", "https://youtu.be/abc"},
		},
		{
			name: "720p",
			req:  MediaRequest{URL: "https://youtu.be/abc", OutputPath: "out.mp4", Quality: "720p"},
			want: []string{"--no-mtime", "-f", "best[height<=720]", "-o", "out.mp4", "--", "https://youtu.be/abc"},
		},
		{
			name: "480p",
			req:  MediaRequest{URL: "https://youtu.be/abc", OutputPath: "out.mp4", Quality: "480p"},
			want: []string{"--no-mtime", "-f", "best[height<=480]", "-o", "out.mp4", "--", "https://youtu.be/abc"},
		},
		{
			name: "unknown quality falls back to best",
			req:  MediaRequest{URL: "https://youtu.be/abc", OutputPath: "out.webm", Format: "webm", Quality: "4k"},
			want: []string{"--no-mtime", "-f", "best", "-o", "out.webm", "--", "https://youtu.be/abc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildMediaArgs(tt.req)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("buildMediaArgs() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildMetadataArgs(t *testing.T) {
	got := buildMetadataArgs("https://vimeo.com/1")
	want := []string{"--dump-json", "--", "https://vimeo.com/1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("buildMetadataArgs() = %q, want %q", got, want)
	}
}
