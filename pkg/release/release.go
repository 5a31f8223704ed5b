// Package release parses tracker and catalog release names into quality
// information and matches them against known movie titles.
package release

import "strings"

// Resolution represents the video resolution of a release.
// Higher values are better.
type Resolution int

const (
	ResolutionUnknown Resolution = iota
	ResolutionSD
	Resolution720p
	Resolution1080p
	Resolution2160p
)

func (r Resolution) String() string {
	switch r {
	case ResolutionSD:
		return "SD"
	case Resolution720p:
		return "720p"
	case Resolution1080p:
		return "1080p"
	case Resolution2160p:
		return "2160p"
	default:
		return ""
	}
}

// Source represents where a release was ripped from.
type Source int

const (
	SourceUnknown Source = iota
	SourceCAM
	SourceTelesync
	SourceDVD
	SourceHDTV
	SourceHDRip
	SourceWEBRip
	SourceWEBDL
	SourceBluRay
)

func (s Source) String() string {
	switch s {
	case SourceCAM:
		return "CAM"
	case SourceTelesync:
		return "TS"
	case SourceDVD:
		return "DVD"
	case SourceHDTV:
		return "HDTV"
	case SourceHDRip:
		return "HDRip"
	case SourceWEBRip:
		return "WEBRip"
	case SourceWEBDL:
		return "WEB-DL"
	case SourceBluRay:
		return "BluRay"
	default:
		return ""
	}
}

// Codec represents the video codec used in a release.
type Codec int

const (
	CodecUnknown Codec = iota
	CodecXviD
	CodecX264
	CodecX265
)

func (c Codec) String() string {
	switch c {
	case CodecXviD:
		return "XviD"
	case CodecX264:
		return "x264"
	case CodecX265:
		return "x265"
	default:
		return ""
	}
}

// Info contains parsed release information.
type Info struct {
	// Title is the name part before the year or first quality tag.
	Title string
	// Titles holds the alternative names when Title lists several,
	// e.g. "Матрица / The Matrix".
	Titles     []string
	Year       int
	Resolution Resolution
	Source     Source
	Codec      Codec
	Remux      bool
}

// Quality returns a short display label such as "1080p BluRay".
// It is empty when nothing was recognized.
func (i Info) Quality() string {
	var parts []string
	if s := i.Resolution.String(); s != "" {
		parts = append(parts, s)
	}
	if s := i.Source.String(); s != "" {
		parts = append(parts, s)
	}
	if i.Remux {
		parts = append(parts, "Remux")
	}
	return strings.Join(parts, " ")
}
