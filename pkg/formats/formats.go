// Package formats provides parsers for the Wavefront OBJ geometry format and
// its companion MTL material format.
package formats

// Note: OBJ (geometry) scanning lives in obj.go
// Note: MTL (materials) and the texture cache live in mtl.go / texcache.go
// Note: line tokenizing and field conversion are shared via tokenize.go / number.go
