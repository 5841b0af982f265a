package product

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"strconv"
	"time"

	domprod "github.com/atelier-cloud/catalog/internal/domain/product"
)

// Hash field names for the product record.
const (
	fieldName             = "name"
	fieldDescription      = "description"
	fieldShortDescription = "short_description"
	fieldCategory         = "category"
	fieldPrice            = "price"
	fieldStock            = "stock"
	fieldStatus           = "status"
	fieldWidth            = "width"
	fieldHeight           = "height"
	fieldDepth            = "depth"
	fieldMainImage        = "main_image"
	fieldAdditionalImages = "additional_images"
	fieldCreatedAt        = "created_at"
	fieldUpdatedAt        = "updated_at"
	fieldVector           = "__vector"
)

// buildHashFields converts a domain Product into a flat map[string]string for HSET.
func buildHashFields(p *domprod.Product) map[string]string {
	m := map[string]string{
		fieldName:        p.Name(),
		fieldDescription: p.Description(),
		fieldCategory:    p.Category(),
		fieldPrice:       strconv.FormatFloat(p.Price(), 'f', -1, 64),
		fieldStock:       strconv.Itoa(p.Stock()),
		fieldStatus:      string(p.Status()),
		fieldCreatedAt:   strconv.FormatInt(p.CreatedAt().Unix(), 10),
		fieldUpdatedAt:   strconv.FormatInt(p.UpdatedAt().Unix(), 10),
	}

	if s := p.ShortDescription(); s != "" {
		m[fieldShortDescription] = s
	}
	if s := p.MainImage(); s != "" {
		m[fieldMainImage] = s
	}
	if imgs := p.AdditionalImages(); len(imgs) > 0 {
		if data, err := json.Marshal(imgs); err == nil {
			m[fieldAdditionalImages] = string(data)
		}
	}

	dims := p.Dimensions()
	if dims.Width != nil {
		m[fieldWidth] = strconv.FormatFloat(*dims.Width, 'f', -1, 64)
	}
	if dims.Height != nil {
		m[fieldHeight] = strconv.FormatFloat(*dims.Height, 'f', -1, 64)
	}
	if dims.Depth != nil {
		m[fieldDepth] = strconv.FormatFloat(*dims.Depth, 'f', -1, 64)
	}

	if v := p.Vector(); len(v) > 0 {
		m[fieldVector] = vectorToBytes(v)
	}

	return m
}

// FromHash converts a flat hash map back into a domain Product.
// Parsing is tolerant: malformed optional fields are dropped rather than
// failing the whole record.
func FromHash(id string, m map[string]string) domprod.Product {
	attrs := domprod.Attrs{
		Name:             m[fieldName],
		Description:      m[fieldDescription],
		ShortDescription: m[fieldShortDescription],
		Category:         m[fieldCategory],
		Status:           domprod.Status(m[fieldStatus]),
		MainImage:        m[fieldMainImage],
	}

	if v, err := strconv.ParseFloat(m[fieldPrice], 64); err == nil {
		attrs.Price = v
	}
	if v, err := strconv.Atoi(m[fieldStock]); err == nil {
		attrs.Stock = v
	}
	attrs.Dimensions = domprod.Dimensions{
		Width:  parseOptFloat(m[fieldWidth]),
		Height: parseOptFloat(m[fieldHeight]),
		Depth:  parseOptFloat(m[fieldDepth]),
	}
	if raw := m[fieldAdditionalImages]; raw != "" {
		var imgs []string
		if err := json.Unmarshal([]byte(raw), &imgs); err == nil {
			attrs.AdditionalImages = imgs
		}
	}

	var vector []float32
	if raw := m[fieldVector]; raw != "" {
		vector = bytesToVector(raw)
	}

	return domprod.Reconstruct(id, attrs, parseUnix(m[fieldCreatedAt]), parseUnix(m[fieldUpdatedAt]), vector)
}

func parseOptFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseUnix(s string) time.Time {
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// bytesToVector deserializes a binary string back to []float32.
func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
