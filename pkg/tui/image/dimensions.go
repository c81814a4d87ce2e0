// ABOUTME: Header probing for PNG, JPEG, GIF, WebP and BMP without a full decode
// ABOUTME: Lets the pipeline reject empty or oversized images before allocating pixels

package image

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// errUnknownFormat is returned by Probe when no header sniffer matches.
var errUnknownFormat = errors.New("unrecognized image header")

// Header is what Probe learns from the first bytes of an image file.
type Header struct {
	Format string
	Width  int
	Height int
}

type sniffer struct {
	format string
	match  func([]byte) bool
	parse  func([]byte) (int, int, error)
}

var sniffers = []sniffer{
	{"png", hasPrefix("\x89PNG\r\n\x1a\n"), parsePNG},
	{"jpeg", hasPrefix("\xff\xd8"), parseJPEG},
	{"gif", hasPrefix("GIF8"), parseGIF},
	{"webp", isWebP, parseWebP},
	{"bmp", hasPrefix("BM"), parseBMP},
}

// Probe reads the format and pixel dimensions from an image header.
func Probe(data []byte) (Header, error) {
	for _, s := range sniffers {
		if !s.match(data) {
			continue
		}
		w, h, err := s.parse(data)
		if err != nil {
			return Header{}, fmt.Errorf("%s header: %w", s.format, err)
		}
		return Header{Format: s.format, Width: w, Height: h}, nil
	}
	return Header{}, errUnknownFormat
}

func hasPrefix(sig string) func([]byte) bool {
	return func(data []byte) bool { return bytes.HasPrefix(data, []byte(sig)) }
}

func isWebP(data []byte) bool {
	return len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP"
}

// parsePNG reads the IHDR chunk, which always follows the signature.
func parsePNG(data []byte) (int, int, error) {
	if len(data) < 24 || string(data[12:16]) != "IHDR" {
		return 0, 0, errors.New("IHDR chunk missing")
	}
	return int(binary.BigEndian.Uint32(data[16:20])), int(binary.BigEndian.Uint32(data[20:24])), nil
}

// parseJPEG walks marker segments until the first SOF0-SOF2.
func parseJPEG(data []byte) (int, int, error) {
	for i := 2; i+3 < len(data); {
		if data[i] != 0xFF {
			i++
			continue
		}
		marker := data[i+1]
		if marker >= 0xC0 && marker <= 0xC2 {
			if i+9 > len(data) {
				return 0, 0, errors.New("SOF segment truncated")
			}
			h := int(binary.BigEndian.Uint16(data[i+5 : i+7]))
			w := int(binary.BigEndian.Uint16(data[i+7 : i+9]))
			return w, h, nil
		}
		segLen := int(binary.BigEndian.Uint16(data[i+2 : i+4]))
		if segLen < 2 {
			break
		}
		i += 2 + segLen
	}
	return 0, 0, errors.New("SOF marker not found")
}

// parseGIF reads the logical screen descriptor.
func parseGIF(data []byte) (int, int, error) {
	if len(data) < 10 {
		return 0, 0, errors.New("screen descriptor truncated")
	}
	return int(binary.LittleEndian.Uint16(data[6:8])), int(binary.LittleEndian.Uint16(data[8:10])), nil
}

// parseWebP handles the lossy, lossless and extended chunk layouts.
func parseWebP(data []byte) (int, int, error) {
	if len(data) < 16 {
		return 0, 0, errors.New("chunk header truncated")
	}
	switch chunk := string(data[12:16]); chunk {
	case "VP8 ":
		if len(data) < 30 {
			return 0, 0, errors.New("VP8 frame header truncated")
		}
		w := int(binary.LittleEndian.Uint16(data[26:28])) & 0x3FFF
		h := int(binary.LittleEndian.Uint16(data[28:30])) & 0x3FFF
		return w, h, nil
	case "VP8L":
		if len(data) < 25 {
			return 0, 0, errors.New("VP8L header truncated")
		}
		bits := binary.LittleEndian.Uint32(data[21:25])
		return int(bits&0x3FFF) + 1, int((bits>>14)&0x3FFF) + 1, nil
	case "VP8X":
		if len(data) < 30 {
			return 0, 0, errors.New("VP8X header truncated")
		}
		w := (int(data[24]) | int(data[25])<<8 | int(data[26])<<16) + 1
		h := (int(data[27]) | int(data[28])<<8 | int(data[29])<<16) + 1
		return w, h, nil
	default:
		return 0, 0, fmt.Errorf("unknown chunk %q", chunk)
	}
}

// parseBMP reads the DIB header. A negative height marks a top-down bitmap.
func parseBMP(data []byte) (int, int, error) {
	if len(data) < 26 {
		return 0, 0, errors.New("DIB header truncated")
	}
	w := int(int32(binary.LittleEndian.Uint32(data[18:22])))
	h := int(int32(binary.LittleEndian.Uint32(data[22:26])))
	if h < 0 {
		h = -h
	}
	return w, h, nil
}
