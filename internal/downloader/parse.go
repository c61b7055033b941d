package downloader

import (
	"errors"
	"math"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/iconidentify/vidgrab/internal/domain"
)

// parseVideoInfo maps the tool's --dump-json document onto VideoInfo.
func parseVideoInfo(data []byte) (*domain.VideoInfo, error) {
	if !gjson.ValidBytes(data) {
		return nil, &domain.ParseError{Err: errors.New("invalid JSON")}
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, &domain.ParseError{Err: errors.New("expected a JSON object")}
	}

	info := &domain.VideoInfo{
		Title:     doc.Get("title").String(),
		Thumbnail: doc.Get("thumbnail").String(),
		Formats:   []domain.Format{},
	}
	if d := doc.Get("duration"); d.Type == gjson.Number {
		info.Duration = domain.Seconds(int(math.Round(d.Float())))
	}

	doc.Get("formats").ForEach(func(_, f gjson.Result) bool {
		info.Formats = append(info.Formats, parseFormat(f))
		return true
	})

	return info, nil
}

func parseFormat(f gjson.Result) domain.Format {
	note := f.Get("format_note").String()

	format := domain.Format{
		FormatID:   f.Get("format_id").String(),
		Ext:        f.Get("ext").String(),
		Resolution: f.Get("resolution").String(),
		Quality:    note,
	}
	if format.Resolution == "" {
		format.Resolution = note
	}
	if size := f.Get("filesize"); size.Type == gjson.Number && size.Int() != 0 {
		format.Filesize = domain.Bytes(size.Int())
	}

	height := f.Get("height")
	abr := f.Get("abr")
	switch {
	case height.Type == gjson.Number && height.Int() != 0:
		format.Quality = strconv.FormatInt(height.Int(), 10) + "p"
	case abr.Type == gjson.Number && abr.Float() != 0:
		format.Quality = strconv.FormatFloat(abr.Float(), 'f', -1, 64) + "kbps"
	}

	return format
}
