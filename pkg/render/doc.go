// Package render serializes dependency graphs to Graphviz DOT and turns the
// DOT description into a PNG image, either by invoking an external Graphviz
// executable or with the embedded WASM build of Graphviz.
package render
