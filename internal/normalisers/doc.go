// Package normalisers provides implementations of the Normaliser interface
// for the file formats narrator imports. Each normaliser knows how to extract
// narratable text from specific file extensions.
//
// Normalisers are registered with the Registry at startup. The cleanup
// subpackage holds the artefact-removal tools applied after extraction.
package normalisers
