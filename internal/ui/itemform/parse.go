package itemform

import (
	"fmt"
	"strings"

	"github.com/nhle/sortbase/internal/model"
)

// ParseImages splits one URL per line, skipping blank lines.
func ParseImages(text string) []string {
	var urls []string
	for _, line := range strings.Split(text, "\n") {
		if u := strings.TrimSpace(line); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// ParseProperties reads one "key: value" pair per line. Only the first
// colon separates the key, so values may contain colons.
func ParseProperties(text string) (model.Properties, error) {
	var props model.Properties
	for n, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: expected \"key: value\"", n+1)
		}
		k = strings.TrimSpace(k)
		if _, dup := props.Get(k); dup {
			return nil, fmt.Errorf("line %d: duplicate property %q", n+1, k)
		}
		props = append(props, model.Property{Key: k, Value: model.ParsePropertyValue(v)})
	}
	return props, nil
}

// FormatProperties is the inverse of ParseProperties.
func FormatProperties(props model.Properties) string {
	lines := make([]string, len(props))
	for i, p := range props {
		lines[i] = p.Key + ": " + p.Value.String()
	}
	return strings.Join(lines, "\n")
}

// The validators run the item rules on a partial input so the form and the
// session agree on limits.

func validateName(s string) error {
	return model.ItemInput{Name: s}.Validate()
}

func validateAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if !model.ParseAmount(s).Valid() {
		return fmt.Errorf("not a number")
	}
	return nil
}

func validateImages(s string) error {
	return model.ItemInput{Name: "-", ImageURLs: ParseImages(s)}.Validate()
}

func validateProperties(s string) error {
	props, err := ParseProperties(s)
	if err != nil {
		return err
	}
	return model.ItemInput{Name: "-", Properties: props}.Validate()
}
