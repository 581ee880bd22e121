package cli

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Size is a named output width preset.
type Size int

const (
	SizeDefault Size = iota
	SizeExtraSmall
	SizeSmall
	SizeLarge
	SizeExtraLarge
)

var sizeWidths = map[Size]int{
	SizeExtraSmall: 30,
	SizeSmall:      60,
	SizeDefault:    120,
	SizeLarge:      240,
	SizeExtraLarge: 360,
}

var sizeNames = map[Size]string{
	SizeExtraSmall: "extra-small",
	SizeSmall:      "small",
	SizeDefault:    "default",
	SizeLarge:      "large",
	SizeExtraLarge: "extra-large",
}

var sizeAliases = map[string]Size{
	"xs":          SizeExtraSmall,
	"extra-small": SizeExtraSmall,
	"s":           SizeSmall,
	"small":       SizeSmall,
	"n":           SizeDefault,
	"normal":      SizeDefault,
	"m":           SizeDefault,
	"medium":      SizeDefault,
	"default":     SizeDefault,
	"l":           SizeLarge,
	"large":       SizeLarge,
	"xl":          SizeExtraLarge,
	"extra-large": SizeExtraLarge,
}

// ParseSize accepts a preset name or alias in any case. Underscores and
// spaces count as dashes so "Extra_Large" works.
func ParseSize(s string) (Size, error) {
	key := cases.Fold().String(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)

	size, ok := sizeAliases[key]
	if !ok {
		return SizeDefault, fmt.Errorf("unknown size %q (want one of %s)", s, sizeList())
	}
	return size, nil
}

func (s Size) Width() int {
	return sizeWidths[s]
}

func (s Size) String() string {
	return sizeNames[s]
}

// Set and Type make *Size usable as a pflag.Value.
func (s *Size) Set(v string) error {
	size, err := ParseSize(v)
	if err != nil {
		return err
	}
	*s = size
	return nil
}

func (s *Size) Type() string {
	return "size"
}

func sizeList() string {
	names := make([]string, 0, len(sizeNames))
	for _, size := range []Size{SizeExtraSmall, SizeSmall, SizeDefault, SizeLarge, SizeExtraLarge} {
		names = append(names, fmt.Sprintf("%s=%d", size, size.Width()))
	}
	return strings.Join(names, ", ")
}
