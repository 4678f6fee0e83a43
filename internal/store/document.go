package store

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/nhle/sortbase/internal/model"
	"github.com/nhle/sortbase/internal/viewstate"
)

// Document is the persisted inventory: the list forest and its view state.
//
// SortOptions is only read; it carries the view state of files written by
// older versions and is never written back.
type Document struct {
	Lists       []*model.List         `json:"lists"`
	ViewState   *viewstate.Wire       `json:"viewState,omitempty"`
	SortOptions *viewstate.LegacyWire `json:"sortOptions,omitempty"`
}

// EmptyDocument is the document of a fresh install.
func EmptyDocument() *Document {
	return &Document{Lists: []*model.List{}}
}

// NewDocument assembles a document from a forest and its view state.
func NewDocument(lists []*model.List, views *viewstate.Store) (*Document, error) {
	doc := &Document{Lists: lists}
	if doc.Lists == nil {
		doc.Lists = []*model.List{}
	}
	if views != nil {
		w, err := views.Encode()
		if err != nil {
			return nil, fmt.Errorf("encoding view state: %w", err)
		}
		doc.ViewState = w
	}
	return doc, nil
}

// Views decodes the document's view state, current or legacy.
func (d *Document) Views() *viewstate.Store {
	return viewstate.Decode(d.ViewState, d.SortOptions)
}

// DecodeDocument parses a stored document. A bare JSON array is read as a
// list forest without view state. Empty input is an empty document.
func DecodeDocument(data []byte) (*Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return EmptyDocument(), nil
	}
	if data[0] == '[' {
		var lists []*model.List
		if err := json.Unmarshal(data, &lists); err != nil {
			return nil, fmt.Errorf("decoding lists: %w", err)
		}
		return &Document{Lists: lists}, nil
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	if doc.Lists == nil {
		doc.Lists = []*model.List{}
	}
	return &doc, nil
}

// EncodeDocument renders doc as indented JSON in the current format.
func EncodeDocument(doc *Document) ([]byte, error) {
	out := *doc
	out.SortOptions = nil
	if out.Lists == nil {
		out.Lists = []*model.List{}
	}
	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return data, nil
}
