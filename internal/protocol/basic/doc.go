// Package basic implements the basic-class property list and the
// generic field-table encoding it embeds. The property encoding is
// flags-driven: a leading flag word declares which optional fields
// follow, in fixed wire order. The table encoding is generic even
// though field meaning is class-specific, so no class schema is
// needed to decode it.
package basic
