package downloader

var qualitySelectors = map[string]string{
	"best":  "best",
	"1080p": "best[height<=1080]",
	"720p":  "best[height<=720]",
	"480p":  "best[height<=480]",
}

func buildMetadataArgs(url string) []string {
	return []string{"--dump-json", "--", url}
}

// buildMediaArgs translates a request into tool flags. An explicit format id
// wins, then mp3 extracts audio, otherwise the quality picks a height cap.
// The URL always follows "--" so it is never read as an option, and
// --no-mtime keeps the file's mtime at download time for the janitor.
func buildMediaArgs(req MediaRequest) []string {
	switch {
	case req.FormatID != "":
		return []string{"--no-mtime", "-f", req.FormatID, "-o", req.OutputPath, "--", req.URL}
	case req.Format == "mp3":
		return []string{
			"--no-mtime",
			"-x",
			"--audio-format", "mp3",
			"--audio-quality", "192K",
			"-o", req.OutputPath,
			"--", req.URL,
		}
	default:
		return []string{"--no-mtime", "-f", qualitySelector(req.Quality), "-o", req.OutputPath, "--", req.URL}
	}
}

func qualitySelector(quality string) string {
	if sel, ok := qualitySelectors[quality]; ok {
		return sel
	}
	return "best"
}
