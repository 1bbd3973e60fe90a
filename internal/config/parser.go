package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/uitheme/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var current *Override

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		// Handle Sections
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			current = nil

			if rest, ok := strings.CutPrefix(currentSection, "widget."); ok {
				widgetName, stateName, found := strings.Cut(rest, ".")
				if !found {
					stateName = theme.DefaultState.String()
				}
				widget, err := theme.ParseWidget(widgetName)
				if err != nil {
					return nil, fmt.Errorf("section [%s]: %w", currentSection, err)
				}
				state, err := theme.ParseState(stateName)
				if err != nil {
					return nil, fmt.Errorf("section [%s]: %w", currentSection, err)
				}
				current = cfg.Override(widget, state)
			}
			continue
		}

		// Parse Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		// Remove quotes if present
		if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		switch {
		case current != nil:
			if err := setOverrideField(current, key, value); err != nil {
				return nil, fmt.Errorf("error in section [%s]: %w", currentSection, err)
			}
		case currentSection == "notify":
			if err := setNotifyField(&cfg.Notify, key, value); err != nil {
				return nil, fmt.Errorf("error in section [notify]: %w", err)
			}
		case currentSection == "":
			if err := setRootField(cfg, key, value); err != nil {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "shade":
		return setShade(cfg, value)
	case "theme_dir":
		cfg.ThemeDir = value
	case "log_level":
		cfg.LogLevel = strings.ToLower(value)
	}
	return nil
}

func setShade(cfg *Config, value string) error {
	value = strings.ToLower(value)
	switch value {
	case "", "system":
		cfg.Shade = ""
		return nil
	}
	if _, err := theme.ParseShade(value); err != nil {
		return err
	}
	cfg.Shade = value
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "shade_change":
		n.ShadeChange = b
	case "copy":
		n.Copy = b
	case "export":
		n.Export = b
	}
	return nil
}

func setOverrideField(o *Override, key, value string) error {
	switch strings.ToLower(key) {
	case "background":
		return setColor(&o.Background, key, value)
	case "text_color":
		return setColor(&o.TextColor, key, value)
	case "border_color":
		return setColor(&o.BorderColor, key, value)
	case "text_size":
		return setFloat(&o.TextSize, key, value)
	case "border_thickness":
		return setFloat(&o.BorderThickness, key, value)
	case "border_radius":
		return setFloat(&o.BorderRadius, key, value)
	case "margin":
		return setFloat(&o.Margin, key, value)
	case "padding":
		return setFloat(&o.Padding, key, value)
	case "font":
		family := theme.ParseFontFamily(value)
		o.Font = &family
	case "default_size":
		size, err := parseSize(value)
		if err != nil {
			return fmt.Errorf("invalid size for key %s: %w", key, err)
		}
		o.DefaultSize = &size
	}
	return nil // Ignore unknown fields
}

func setColor(dst **theme.Color, key, value string) error {
	col, err := parseColor(value)
	if err != nil {
		return fmt.Errorf("invalid color for key %s: %w", key, err)
	}
	*dst = &col
	return nil
}

func setFloat(dst **float32, key, value string) error {
	f, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	v := float32(f)
	*dst = &v
	return nil
}

// parseSize parses "WIDTHxHEIGHT".
func parseSize(s string) (theme.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return theme.Size{}, fmt.Errorf("expected WIDTHxHEIGHT")
	}
	width, err := strconv.ParseUint(strings.TrimSpace(w), 10, 32)
	if err != nil {
		return theme.Size{}, err
	}
	height, err := strconv.ParseUint(strings.TrimSpace(h), 10, 32)
	if err != nil {
		return theme.Size{}, err
	}
	return theme.Size{Width: uint32(width), Height: uint32(height)}, nil
}

// parseColor parses a #RRGGBB or #RRGGBBAA color. Unlike the theme
// package's literals, it reports malformed input instead of panicking.
func parseColor(s string) (theme.Color, error) {
	if !strings.HasPrefix(s, "#") {
		return theme.Color{}, fmt.Errorf("color must start with #")
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 6 {
		// #RRGGBB
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return theme.Color{}, err
		}
		return theme.RGBA(uint8(val>>16), uint8(val>>8), uint8(val), 255), nil
	} else if len(hex) == 8 {
		// #RRGGBBAA
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return theme.Color{}, err
		}
		return theme.RGBA(uint8(val>>24), uint8(val>>16), uint8(val>>8), uint8(val)), nil
	}
	return theme.Color{}, fmt.Errorf("invalid hex length")
}
