// Package file keeps narrator settings in ~/.narrator/config.toml.
//
// Keys are flat and dotted in memory ("segment.length") and nested
// tables on disk ([segment] length = 300).
package file
