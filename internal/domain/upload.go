package domain

import "encoding/base64"

// UploadedDocument is a raw PDF upload as received from the client. It lives
// only for the duration of one generate request.
type UploadedDocument struct {
	Data        []byte
	ContentType string
	Size        int64
	FileName    string
}

// PageImage is one rasterized PDF page, PNG-encoded, with its 0-based index.
type PageImage struct {
	Index int
	PNG   []byte
}

// DataURL returns the page as a data URL suitable for transports that inline
// images as text.
func (p PageImage) DataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(p.PNG)
}

// PageRasterizer turns PDF bytes into an ordered, capped sequence of page
// images. Implementations must stop rendering once maxPages is reached and
// must fail with a single processing error when no page can be produced.
type PageRasterizer interface {
	Rasterize(data []byte, scale float64, maxPages int) ([]PageImage, error)
}
