// Package report maps provider schema rows and file attributes into the flat
// records this tool emits. Everything here is a pure function; the provider
// boundary already produced typed values.
package report

import (
	"strconv"
	"time"

	"sascols/internal/provider"
	"sascols/internal/scan"
)

// Provider data-type codes for the two column kinds the dataset format has.
const (
	TypeNumeric   = 5
	TypeCharacter = 129
)

// Record is one output row: one dataset column merged with the attributes of
// the file it came from. Field order is the emission order, and the tags are
// the labels downstream grid viewers display.
type Record struct {
	FileName string    `json:"File name" msgpack:"File name"`
	Column   string    `json:"Column" msgpack:"Column"`
	Label    string    `json:"Label" msgpack:"Label"`
	Pos      int       `json:"Pos" msgpack:"Pos"`
	Type     string    `json:"Type" msgpack:"Type"`
	Length   int       `json:"Length" msgpack:"Length"`
	Format   string    `json:"Format" msgpack:"Format"`
	Informat string    `json:"Informat" msgpack:"Informat"`
	Indexed  bool      `json:"Indexed" msgpack:"Indexed"`
	Path     string    `json:"Path" msgpack:"Path"`
	FileTime time.Time `json:"File time" msgpack:"File time"`
	FileSize int64     `json:"File size" msgpack:"File size"`
}

// TranslateType maps the provider's numeric type codes to the names analysts
// expect. Unknown codes pass through as their decimal text.
func TranslateType(code int) string {
	switch code {
	case TypeNumeric:
		return "NUM"
	case TypeCharacter:
		return "CHAR"
	default:
		return strconv.Itoa(code)
	}
}

// AssembleFormat builds the display string for a format or informat: the
// name, the length, the "." separator, and (for numeric columns with a
// positive decimal count) the decimals. An unset format stays empty.
//
// DOLLAR/8/2 on a numeric column assembles to "DOLLAR8.2"; with decimals 0 it
// is "DOLLAR8.".
func AssembleFormat(name string, length, decimals, typeCode int) string {
	if name == "" {
		return ""
	}
	s := name + strconv.Itoa(length) + "."
	if typeCode == TypeNumeric && decimals > 0 {
		s += strconv.Itoa(decimals)
	}
	return s
}

// Build produces the record for one column of one dataset file.
func Build(col provider.Column, e scan.Entry) Record {
	return Record{
		FileName: e.Name,
		Column:   col.Name,
		Label:    col.Description,
		Pos:      col.Ordinal,
		Type:     TranslateType(col.DataType),
		Length:   col.MaxLength,
		Format:   AssembleFormat(col.FormatName, col.FormatLength, col.FormatDecimal, col.DataType),
		Informat: AssembleFormat(col.InformatName, col.InformatLength, col.InformatDecimal, col.DataType),
		Indexed:  col.Indexed,
		Path:     e.Dir,
		FileTime: e.ModTime,
		FileSize: e.Size,
	}
}
