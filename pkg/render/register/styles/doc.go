// Package styles defines the colour palettes used by the register sinks.
//
// A [Palette] is a plain value: sinks receive it through their options and
// never consult package state. [Classic] reproduces the traditional
// black-on-white textbook look; [Blueprint] is an alternative for slides.
// User configuration is applied with [Palette.Merge] and checked with
// [Palette.Validate], which reports INVALID_STYLE errors.
package styles
