// Package entity describes the typed view the formatter has over a host
// entity: ordered field definitions, tagged field values and the loaders used
// to reach files and media items by id.
package entity
