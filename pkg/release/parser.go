package release

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	yearRegex = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)

	// tagRegex finds the first quality tag; the title ends before it when no year is present.
	tagRegex = regexp.MustCompile(`(?i)\b(2160p|1080[pi]|720p|480p|576p|4k|uhd|remux|bd-?rip|blu-?ray|br-?rip|web-?dl(rip)?|web-?rip|hd-?rip|hdtv(rip)?|dvd(rip|5|9)?|cam(rip)?|ts|telesync|x264|x265|h\.?26[45]|hevc|xvid)\b`)

	res2160Regex = regexp.MustCompile(`(?i)\b(2160p|4k|uhd)\b`)
	res1080Regex = regexp.MustCompile(`(?i)\b1080[pi]\b`)
	res720Regex  = regexp.MustCompile(`(?i)\b720p\b`)
	resSDRegex   = regexp.MustCompile(`(?i)\b(480p|576p|360p|sd)\b`)

	// Loose variants accept bare numbers, as catalogs report "1080" or "720".
	looseRes2160Regex = regexp.MustCompile(`(?i)\b(2160p?|4k|uhd)\b`)
	looseRes1080Regex = regexp.MustCompile(`(?i)\b(1080[pi]?|fhd|full ?hd)\b`)
	looseRes720Regex  = regexp.MustCompile(`(?i)\b(720p?|hd)\b`)
	looseResSDRegex   = regexp.MustCompile(`(?i)\b(480p?|576p?|360p?|sd)\b`)

	remuxRegex    = regexp.MustCompile(`(?i)\b(bd-?)?remux\b`)
	blurayRegex   = regexp.MustCompile(`(?i)\b(blu-?ray|bd-?rip|br-?rip|bdremux)\b`)
	webdlRegex    = regexp.MustCompile(`(?i)\bweb-?dl(rip)?\b`)
	webripRegex   = regexp.MustCompile(`(?i)\bweb-?rip\b`)
	hdripRegex    = regexp.MustCompile(`(?i)\bhd-?rip\b`)
	hdtvRegex     = regexp.MustCompile(`(?i)\bhdtv(rip)?\b`)
	dvdRegex      = regexp.MustCompile(`(?i)\bdvd(rip|5|9|scr)?\b`)
	telesyncRegex = regexp.MustCompile(`(?i)\b(telesync|ts)\b`)
	camRegex      = regexp.MustCompile(`(?i)\bcam(rip)?\b`)

	x265Regex = regexp.MustCompile(`(?i)\b(x265|h\.?265|hevc)\b`)
	x264Regex = regexp.MustCompile(`(?i)\b(x264|h\.?264|avc)\b`)
	xvidRegex = regexp.MustCompile(`(?i)\b(xvid|divx)\b`)
)

// Parse extracts title, year and quality information from a release name.
func Parse(name string) Info {
	name = normalizeSeparators(name)

	info := Info{
		Resolution: detectResolution(name, false),
		Source:     detectSource(name),
		Codec:      detectCodec(name),
		Remux:      remuxRegex.MatchString(name),
	}

	titleEnd := len(name)
	if idx, year := findYear(name); idx > 0 {
		info.Year = year
		titleEnd = idx
	} else if loc := tagRegex.FindStringIndex(name); loc != nil && loc[0] > 0 {
		titleEnd = loc[0]
	}

	info.Title = strings.TrimRight(strings.TrimSpace(name[:titleEnd]), " ([{-")
	for _, part := range strings.Split(info.Title, "/") {
		if part = strings.TrimSpace(part); part != "" {
			info.Titles = append(info.Titles, part)
		}
	}
	return info
}

// ParseResolution reads a resolution from a short quality label such as
// "1080p", "720" or "HDRip 720p".
func ParseResolution(quality string) Resolution {
	return detectResolution(quality, true)
}

// normalizeSeparators turns scene-style dotted names into spaced ones.
// Names that already use spaces are left alone so "5.1" or "H.264" survive.
func normalizeSeparators(name string) string {
	if strings.Count(name, " ") >= 2 {
		return name
	}
	name = strings.ReplaceAll(name, "_", " ")
	return strings.ReplaceAll(name, ".", " ")
}

// findYear returns the byte offset and value of the first year that is not
// at the start of the name, so titles like "1917 (2019)" parse correctly.
func findYear(name string) (int, int) {
	for _, loc := range yearRegex.FindAllStringSubmatchIndex(name, -1) {
		if loc[2] == 0 {
			continue
		}
		year, err := strconv.Atoi(name[loc[2]:loc[3]])
		if err != nil {
			continue
		}
		return loc[2], year
	}
	return -1, 0
}

func detectResolution(s string, loose bool) Resolution {
	if loose {
		switch {
		case looseRes2160Regex.MatchString(s):
			return Resolution2160p
		case looseRes1080Regex.MatchString(s):
			return Resolution1080p
		case looseRes720Regex.MatchString(s):
			return Resolution720p
		case looseResSDRegex.MatchString(s):
			return ResolutionSD
		}
		return ResolutionUnknown
	}
	switch {
	case res2160Regex.MatchString(s):
		return Resolution2160p
	case res1080Regex.MatchString(s):
		return Resolution1080p
	case res720Regex.MatchString(s):
		return Resolution720p
	case resSDRegex.MatchString(s):
		return ResolutionSD
	}
	return ResolutionUnknown
}

func detectSource(s string) Source {
	switch {
	case remuxRegex.MatchString(s), blurayRegex.MatchString(s):
		return SourceBluRay
	case webdlRegex.MatchString(s):
		return SourceWEBDL
	case webripRegex.MatchString(s):
		return SourceWEBRip
	case hdripRegex.MatchString(s):
		return SourceHDRip
	case hdtvRegex.MatchString(s):
		return SourceHDTV
	case dvdRegex.MatchString(s):
		return SourceDVD
	case telesyncRegex.MatchString(s):
		return SourceTelesync
	case camRegex.MatchString(s):
		return SourceCAM
	}
	return SourceUnknown
}

func detectCodec(s string) Codec {
	switch {
	case x265Regex.MatchString(s):
		return CodecX265
	case x264Regex.MatchString(s):
		return CodecX264
	case xvidRegex.MatchString(s):
		return CodecXviD
	}
	return CodecUnknown
}
