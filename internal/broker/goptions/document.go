package goptions

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// The provider answers every call with the same envelope:
//
//	<response>
//	  <status>true</status>
//	  <errors><error><msg>...</msg></error></errors>
//	  <data>
//	    <Positions>
//	      <row><assetId>900</assetId>...</row>
//	    </Positions>
//	  </data>
//	</response>
//
// Record fields are flat key/value elements, all values strings.

const wireTime = "2006-01-02 15:04:05"

type xmlNode struct {
	XMLName xml.Name
	Content string    `xml:",chardata"`
	Nodes   []xmlNode `xml:",any"`
}

type row map[string]string

type document struct {
	status bool
	errs   []string
	rows   map[string][]row
}

func parseDocument(raw []byte) (*document, error) {
	var root xmlNode
	if err := xml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	doc := &document{rows: make(map[string][]row)}
	for _, n := range root.Nodes {
		switch n.XMLName.Local {
		case "status":
			doc.status = strings.TrimSpace(n.Content) == "true"
		case "errors":
			for _, e := range n.Nodes {
				for _, m := range e.Nodes {
					if m.XMLName.Local == "msg" {
						doc.errs = append(doc.errs, strings.TrimSpace(m.Content))
					}
				}
			}
		case "data":
			for _, mod := range n.Nodes {
				for _, rec := range mod.Nodes {
					r := make(row, len(rec.Nodes))
					for _, f := range rec.Nodes {
						r[f.XMLName.Local] = strings.TrimSpace(f.Content)
					}
					doc.rows[mod.XMLName.Local] = append(doc.rows[mod.XMLName.Local], r)
				}
			}
		}
	}
	return doc, nil
}

// noResults reports the provider's "zero matching records" signal, which it
// delivers as an error message rather than an empty data section.
func (d *document) noResults() bool {
	for _, e := range d.errs {
		if strings.Contains(e, "No results") {
			return true
		}
	}
	return false
}

func (d *document) firstError() string {
	if len(d.errs) == 0 {
		return ""
	}
	return d.errs[0]
}

func (r row) has(key string) bool {
	_, ok := r[key]
	return ok
}

func (r row) str(key string) (string, error) {
	v, ok := r[key]
	if !ok {
		return "", fmt.Errorf("missing field %q", key)
	}
	return v, nil
}

// float parses a numeric string through decimal so that provider quirks
// like "10.00" or exponent-free large values round-trip safely.
func (r row) float(key string) (float64, error) {
	v, err := r.str(key)
	if err != nil {
		return 0, err
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", key, err)
	}
	return d.InexactFloat64(), nil
}

func (r row) int64(key string) (int64, error) {
	v, err := r.str(key)
	if err != nil {
		return 0, err
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", key, err)
	}
	return d.IntPart(), nil
}
