package attachment

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"
	"image/png"

	_ "image/gif"

	"golang.org/x/image/draw"
)

// PreviewEdge is the longest edge, in pixels, of a downscaled preview.
const PreviewEdge = 320

// Preview renders data as a data URL suitable for an <img> source.
// Decodable images larger than PreviewEdge are downscaled first; anything
// else is embedded as-is under its declared type.
func Preview(data []byte, contentType string) string {
	if thumb, thumbType, ok := downscale(data); ok {
		return dataURL(thumb, thumbType)
	}
	return dataURL(data, contentType)
}

func dataURL(data []byte, contentType string) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func downscale(data []byte) ([]byte, string, bool) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", false
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= PreviewEdge && h <= PreviewEdge {
		return nil, "", false
	}

	nw, nh := PreviewEdge, PreviewEdge
	if w >= h {
		nh = max(1, h*PreviewEdge/w)
	} else {
		nw = max(1, w*PreviewEdge/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	if format == "jpeg" {
		if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 85}); err != nil {
			return nil, "", false
		}
		return buf.Bytes(), "image/jpeg", true
	}

	if err := png.Encode(&buf, dst); err != nil {
		return nil, "", false
	}
	return buf.Bytes(), "image/png", true
}
