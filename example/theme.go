package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// appTheme tightens spacing and swaps the primary palette to teal.
// Everything else falls through to the default theme.
type appTheme struct{}

var _ fyne.Theme = (*appTheme)(nil)

func (appTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if variant == theme.VariantLight {
		switch name {
		case theme.ColorNameBackground:
			return color.NRGBA{R: 0xfa, G: 0xfa, B: 0xf8, A: 0xff}
		case theme.ColorNamePrimary, theme.ColorNameButton:
			return color.NRGBA{R: 0x00, G: 0x89, B: 0x7b, A: 0xff}
		case theme.ColorNameHover:
			return color.NRGBA{R: 0x4d, G: 0xb6, B: 0xac, A: 0xff}
		case theme.ColorNameFocus:
			return color.NRGBA{R: 0x00, G: 0x69, B: 0x5c, A: 0xff}
		case theme.ColorNameSelection:
			return color.NRGBA{R: 0xb2, G: 0xdf, B: 0xdb, A: 0xff}
		case theme.ColorNameInputBackground:
			return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
		}
		return theme.DefaultTheme().Color(name, variant)
	}

	switch name {
	case theme.ColorNameBackground:
		return color.NRGBA{R: 0x1b, G: 0x1e, B: 0x1e, A: 0xff}
	case theme.ColorNamePrimary, theme.ColorNameButton:
		return color.NRGBA{R: 0x26, G: 0xa6, B: 0x9a, A: 0xff}
	case theme.ColorNameHover:
		return color.NRGBA{R: 0x4d, G: 0xb6, B: 0xac, A: 0xff}
	case theme.ColorNameFocus:
		return color.NRGBA{R: 0x80, G: 0xcb, B: 0xc4, A: 0xff}
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0x00, G: 0x69, B: 0x5c, A: 0xff}
	case theme.ColorNameInputBackground:
		return color.NRGBA{R: 0x26, G: 0x2a, B: 0x2a, A: 0xff}
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (appTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (appTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (appTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 6
	case theme.SizeNameScrollBar:
		return 10
	case theme.SizeNameSeparatorThickness:
		return 1
	}
	return theme.DefaultTheme().Size(name)
}
