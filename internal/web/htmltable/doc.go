// Package htmltable builds a complete HTML table incrementally.
//
// A Table moves through the sections head, foot and body. Callers that only
// add rows and columns get an empty placeholder head and foot and all rows in
// the body, so the markup always holds thead, tfoot and tbody. Column widths
// and alternating row classes are optional decorations checked for every row
// and cell.
//
//	t := htmltable.New("roles", "table", false)
//	t.SetColumnsWidth([]string{"20%", "80%"})
//	t.SetClassChange("odd", "even", 2)
//	t.AddTableHeader(htmltable.Attr{}, []string{"Name", "Description"}, htmltable.Header)
//	t.AddTableBody(htmltable.Attr{}, nil, htmltable.Data)
//	t.AddRow([]string{"Board", "Board members"}, htmltable.Attr{}, htmltable.Data)
//	out := t.HTML()
//
// Cell content is inserted as markup without escaping, attribute values are escaped.
package htmltable
