package styles

import (
	"fmt"
	"regexp"
)

// Props is the fully resolved visual style of a slide. A Props value never
// has unset fields; partial state only exists in an override layer.
type Props struct {
	FontFamily      string `json:"font_family" yaml:"font_family"`
	FontSizeTitle   int    `json:"font_size_title" yaml:"font_size_title"`
	FontSizeBody    int    `json:"font_size_body" yaml:"font_size_body"`
	FontColor       string `json:"font_color" yaml:"font_color"`
	BackgroundColor string `json:"background_color" yaml:"background_color"`
	TextAlignment   string `json:"text_alignment" yaml:"text_alignment"`
	Padding         int    `json:"padding" yaml:"padding"`
}

// Defaults is the built-in base layer of the cascade.
func Defaults() Props {
	return Props{
		FontFamily:      "Bfont",
		FontSizeTitle:   72,
		FontSizeBody:    36,
		FontColor:       "#FFFFFF",
		BackgroundColor: "#1A1A2E",
		TextAlignment:   "center",
		Padding:         40,
	}
}

// Overrides is one cascade layer: each field is either unset (nil) or an
// explicit value. Unknown property names are rejected at the decode
// boundary, not here.
type Overrides struct {
	FontFamily      *string `json:"font_family,omitempty" yaml:"font_family"`
	FontSizeTitle   *int    `json:"font_size_title,omitempty" yaml:"font_size_title"`
	FontSizeBody    *int    `json:"font_size_body,omitempty" yaml:"font_size_body"`
	FontColor       *string `json:"font_color,omitempty" yaml:"font_color"`
	BackgroundColor *string `json:"background_color,omitempty" yaml:"background_color"`
	TextAlignment   *string `json:"text_alignment,omitempty" yaml:"text_alignment"`
	Padding         *int    `json:"padding,omitempty" yaml:"padding"`
}

// IsZero reports whether no property is set.
func (o Overrides) IsZero() bool {
	return o.FontFamily == nil && o.FontSizeTitle == nil && o.FontSizeBody == nil &&
		o.FontColor == nil && o.BackgroundColor == nil && o.TextAlignment == nil && o.Padding == nil
}

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Validate rejects malformed values. Callers must validate before an
// Overrides value is allowed into a layer; resolution assumes valid input.
func (o Overrides) Validate() error {
	if o.FontFamily != nil && *o.FontFamily == "" {
		return fmt.Errorf("font_family must not be empty")
	}
	if o.FontSizeTitle != nil && *o.FontSizeTitle <= 0 {
		return fmt.Errorf("font_size_title must be a positive integer, got %d", *o.FontSizeTitle)
	}
	if o.FontSizeBody != nil && *o.FontSizeBody <= 0 {
		return fmt.Errorf("font_size_body must be a positive integer, got %d", *o.FontSizeBody)
	}
	if o.FontColor != nil && !hexColorPattern.MatchString(*o.FontColor) {
		return fmt.Errorf("font_color must match #RRGGBB, got %q", *o.FontColor)
	}
	if o.BackgroundColor != nil && !hexColorPattern.MatchString(*o.BackgroundColor) {
		return fmt.Errorf("background_color must match #RRGGBB, got %q", *o.BackgroundColor)
	}
	if o.TextAlignment != nil {
		switch *o.TextAlignment {
		case "left", "center", "right":
		default:
			return fmt.Errorf("text_alignment must be left, center or right, got %q", *o.TextAlignment)
		}
	}
	if o.Padding != nil && *o.Padding <= 0 {
		return fmt.Errorf("padding must be a positive integer, got %d", *o.Padding)
	}
	return nil
}

// Merge returns a copy of o with every property set in other replacing the
// corresponding property of o.
func Merge(o, other Overrides) Overrides {
	if other.FontFamily != nil {
		o.FontFamily = other.FontFamily
	}
	if other.FontSizeTitle != nil {
		o.FontSizeTitle = other.FontSizeTitle
	}
	if other.FontSizeBody != nil {
		o.FontSizeBody = other.FontSizeBody
	}
	if other.FontColor != nil {
		o.FontColor = other.FontColor
	}
	if other.BackgroundColor != nil {
		o.BackgroundColor = other.BackgroundColor
	}
	if other.TextAlignment != nil {
		o.TextAlignment = other.TextAlignment
	}
	if other.Padding != nil {
		o.Padding = other.Padding
	}
	return o
}

// Resolve folds the layers over the built-in defaults, later layers
// overriding earlier ones per property. Pure; never mutates its inputs.
func Resolve(layers ...Overrides) Props {
	p := Defaults()
	for _, o := range layers {
		if o.FontFamily != nil {
			p.FontFamily = *o.FontFamily
		}
		if o.FontSizeTitle != nil {
			p.FontSizeTitle = *o.FontSizeTitle
		}
		if o.FontSizeBody != nil {
			p.FontSizeBody = *o.FontSizeBody
		}
		if o.FontColor != nil {
			p.FontColor = *o.FontColor
		}
		if o.BackgroundColor != nil {
			p.BackgroundColor = *o.BackgroundColor
		}
		if o.TextAlignment != nil {
			p.TextAlignment = *o.TextAlignment
		}
		if o.Padding != nil {
			p.Padding = *o.Padding
		}
	}
	return p
}

// AsOverrides expresses a full Props value as a layer with every property set.
func (p Props) AsOverrides() Overrides {
	return Overrides{
		FontFamily:      &p.FontFamily,
		FontSizeTitle:   &p.FontSizeTitle,
		FontSizeBody:    &p.FontSizeBody,
		FontColor:       &p.FontColor,
		BackgroundColor: &p.BackgroundColor,
		TextAlignment:   &p.TextAlignment,
		Padding:         &p.Padding,
	}
}
