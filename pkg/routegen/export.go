package routegen

import (
	"encoding/json"
	"strconv"
	"strings"
)

const (
	gpxHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		`<gpx version="1.1" creator="OutAndBack" xmlns="http://www.topografix.com/GPX/1/1">` + "\n" +
		`<trk><name>Generated Route</name><trkseg>` + "\n"
	gpxFooter = `</trkseg></trk>` + "\n" + `</gpx>`
)

// ExportJSON renders the route as indented JSON.
func ExportJSON(r Route) (string, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ExportGPX renders the route as a single GPX track with one point per coordinate.
func ExportGPX(r Route) string {
	var b strings.Builder
	b.Grow(len(gpxHeader) + len(gpxFooter) + len(r.Coordinates)*48)

	b.WriteString(gpxHeader)
	for _, c := range r.Coordinates {
		b.WriteString(`<trkpt lat="`)
		b.WriteString(strconv.FormatFloat(c.Lat, 'f', 6, 64))
		b.WriteString(`" lon="`)
		b.WriteString(strconv.FormatFloat(c.Lon, 'f', 6, 64))
		b.WriteString(`"></trkpt>` + "\n")
	}
	b.WriteString(gpxFooter)

	return b.String()
}
