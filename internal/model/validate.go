package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

func (in ListInput) normalize() ListInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	return in
}

// Validate checks the input against the edit limits.
func (in ListInput) Validate() error {
	in = in.normalize()
	if err := checkText("name", in.Name, MaxNameLength, true); err != nil {
		return err
	}
	return checkText("category", in.Category, MaxCategoryLength, false)
}

func (in ItemInput) normalize() ItemInput {
	in.Name = strings.TrimSpace(in.Name)
	urls := make([]string, 0, len(in.ImageURLs))
	for _, u := range in.ImageURLs {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	in.ImageURLs = urls
	props := make(Properties, 0, len(in.Properties))
	for _, p := range in.Properties {
		p.Key = strings.TrimSpace(p.Key)
		if !p.Value.IsNumber() {
			p.Value = StringValue(strings.TrimSpace(p.Value.String()))
		}
		props = append(props, p)
	}
	in.Properties = props
	return in
}

// Validate checks the input against the edit limits. Capacity violations
// are reported as *CapacityError, field violations as *ValidationError.
func (in ItemInput) Validate() error {
	in = in.normalize()
	if err := checkText("name", in.Name, MaxNameLength, true); err != nil {
		return err
	}
	if n := len(in.ImageURLs); n > MaxImagesPerItem {
		return &CapacityError{Err: ErrTooManyImages, Limit: MaxImagesPerItem, Got: n}
	}
	if n := len(in.Properties); n > MaxPropertiesPerItem {
		return &CapacityError{Err: ErrTooManyProperties, Limit: MaxPropertiesPerItem, Got: n}
	}
	seen := make(map[string]struct{}, len(in.Properties))
	for _, p := range in.Properties {
		if err := checkText("property key", p.Key, MaxPropertyKeyLength, true); err != nil {
			return err
		}
		if _, dup := seen[p.Key]; dup {
			return &ValidationError{Field: "property key", Reason: fmt.Sprintf("duplicate key %q", p.Key)}
		}
		seen[p.Key] = struct{}{}
		if !p.Value.IsNumber() {
			field := fmt.Sprintf("property %q", p.Key)
			if err := checkText(field, p.Value.String(), MaxPropertyValueLength, false); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkText(field, s string, max int, required bool) error {
	if required && s == "" {
		return &ValidationError{Field: field, Reason: "required"}
	}
	if n := utf8.RuneCountInString(s); n > max {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("%d characters exceeds maximum of %d", n, max)}
	}
	return nil
}
