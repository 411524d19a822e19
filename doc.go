/*
 * doc.go, part of xtalgraph.
 *
 * xtalgraph performs chemical find-and-replace on periodic crystal graphs:
 * locate every occurrence of a query moiety as a subgraph of a parent
 * crystal, respecting species and bond topology across periodic cell
 * boundaries, and substitute a geometrically aligned copy of a replacement
 * moiety at chosen occurrences.
 *
 * The root package holds the data model (species, atoms, crystals) and the
 * bits of bookkeeping (errors, R-group tagging) every other package in this
 * module builds on. The graph kernel lives in graphkit, periodic geometry
 * and alignment in geom, the Ullmann search in iso, and the replacement
 * engine and scheme driver in replace.
 */
package xtal
