package model

// SortField names the attribute a collection is ordered by.
type SortField string

const (
	SortByName          SortField = "name"
	SortByCategory      SortField = "category"
	SortByPurchasePrice SortField = "purchasePrice"
	SortByCurrentValue  SortField = "currentValue"
	SortByCreatedAt     SortField = "createdAt"
)

// ListSortFields are the fields offered on the top-level overview.
var ListSortFields = []SortField{SortByName, SortByCategory, SortByCreatedAt}

// CombinedSortFields are the fields offered inside a list.
var CombinedSortFields = []SortField{SortByName, SortByCategory, SortByPurchasePrice, SortByCurrentValue, SortByCreatedAt}

// Valid reports whether f is a known field.
func (f SortField) Valid() bool {
	for _, known := range CombinedSortFields {
		if f == known {
			return true
		}
	}
	return false
}

// Label is the human-readable field name.
func (f SortField) Label() string {
	switch f {
	case SortByCategory:
		return "Category"
	case SortByPurchasePrice:
		return "Purchase price"
	case SortByCurrentValue:
		return "Current value"
	case SortByCreatedAt:
		return "Created"
	default:
		return "Name"
	}
}

// Next returns the field after f in fields, wrapping around.
func (f SortField) Next(fields []SortField) SortField {
	for i, known := range fields {
		if known == f {
			return fields[(i+1)%len(fields)]
		}
	}
	return fields[0]
}

// ViewMode selects which sections of a list are shown.
type ViewMode string

const (
	ViewAll      ViewMode = "all"
	ViewSublists ViewMode = "sublists"
	ViewItems    ViewMode = "items"
)

// Valid reports whether m is a known mode.
func (m ViewMode) Valid() bool {
	return m == ViewAll || m == ViewSublists || m == ViewItems
}

// Next cycles all -> sublists -> items -> all.
func (m ViewMode) Next() ViewMode {
	switch m {
	case ViewAll:
		return ViewSublists
	case ViewSublists:
		return ViewItems
	default:
		return ViewAll
	}
}

// ShowsSublists reports whether sublists are visible in mode m.
func (m ViewMode) ShowsSublists() bool { return m != ViewItems }

// ShowsItems reports whether items are visible in mode m.
func (m ViewMode) ShowsItems() bool { return m != ViewSublists }

// Label is the human-readable mode name.
func (m ViewMode) Label() string {
	switch m {
	case ViewSublists:
		return "Sublists"
	case ViewItems:
		return "Items"
	default:
		return "All"
	}
}
