package htmltable

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Kind selects the cell element.
type Kind int

const (
	// Data cells are rendered as td.
	Data Kind = iota
	// Header cells are rendered as th.
	Header
)

// Attr is a single attribute. It applies only when name and value are both set.
type Attr struct {
	Name  string
	Value string
}

func (a Attr) set() bool {
	return a.Name != "" && a.Value != ""
}

type state int

const (
	stateEmpty state = iota
	stateHead
	stateFoot
	stateBody
	stateFinalized
)

// Table is a stateful table builder. The zero value is not usable, see New.
// A Table is not safe for concurrent use.
type Table struct {
	state   state
	table   *html.Node
	head    *html.Node
	foot    *html.Node
	body    *html.Node
	section *html.Node // open section
	row     *html.Node // open row
	pending *html.Node // cell waiting for AddData

	column     int // index of the next cell in the open row
	rowCounter int // body rows with alternation, 1-based

	widths   []string
	classA   string
	classB   string
	modulus  int
	rendered string
}

// New creates a table with the optional id and class, border adds border="1".
func New(id, class string, border bool) *Table {
	t := &Table{table: element(atom.Table)}

	setAttr(t.table, Attr{Name: "id", Value: id})
	setAttr(t.table, Attr{Name: "class", Value: class})

	if border {
		setAttr(t.table, Attr{Name: "border", Value: "1"})
	}

	return t
}

// SetClassChange alternates the classes a and b on body rows: row n gets a when n mod m is 0, b otherwise.
// It returns false and keeps the previous rule for m < 1.
func (t *Table) SetClassChange(a, b string, m int) bool {
	if t.state == stateFinalized || m < 1 {
		return false
	}

	t.classA, t.classB, t.modulus = a, b, m

	return true
}

// ParseClassChange is SetClassChange with a textual modulus, e.g. from a query string.
// Any numeric notation of a whole number is accepted, "2", "2.0" and "2e0" alike.
func (t *Table) ParseClassChange(a, b, m string) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(m), 64)
	if err != nil || f != math.Trunc(f) || f < 1 || f > math.MaxInt32 {
		return false
	}

	return t.SetClassChange(a, b, int(f))
}

// SetColumnsWidth sets the css width of the cells by position. An empty list removes the widths.
func (t *Table) SetColumnsWidth(widths []string) {
	if t.state == stateFinalized {
		return
	}

	t.widths = append([]string(nil), widths...)
}

// AddAttribute sets an attribute on the innermost open element: the pending cell,
// the open row, the open section or the table.
func (t *Table) AddAttribute(name, value string) {
	if t.state == stateFinalized {
		return
	}

	a := Attr{Name: name, Value: value}

	switch {
	case t.pending != nil:
		setAttr(t.pending, a)
	case t.row != nil:
		setAttr(t.row, a)
	case t.section != nil:
		setAttr(t.section, a)
	default:
		setAttr(t.table, a)
	}
}

// AddTableHeader opens the thead section, optionally seeded with a row of content.
// It returns false if the section already exists.
func (t *Table) AddTableHeader(attr Attr, content any, kind Kind) bool {
	if t.state == stateFinalized || t.head != nil {
		return false
	}

	t.head = t.openSection(atom.Thead, stateHead, attr)
	t.seed(content, kind)

	return true
}

// AddTableFooter opens the tfoot section, closing an open head.
// It returns false if the section already exists.
func (t *Table) AddTableFooter(attr Attr, content any, kind Kind) bool {
	if t.state == stateFinalized || t.foot != nil {
		return false
	}

	t.foot = t.openSection(atom.Tfoot, stateFoot, attr)
	t.seed(content, kind)

	return true
}

// AddTableBody opens the tbody section, closing an open head or foot.
// It returns false if the section already exists.
func (t *Table) AddTableBody(attr Attr, content any, kind Kind) bool {
	if t.state == stateFinalized || t.body != nil {
		return false
	}

	t.body = t.openSection(atom.Tbody, stateBody, attr)
	t.seed(content, kind)

	return true
}

// AddRow closes the open row and starts a new one in the open section.
// Content may be a scalar (one cell), a slice or array of any type (one cell per
// element) or a map[string]string or map[string]any (one cell per value, ordered by key).
// While the class change is set a class given in attr is dropped in every section,
// body rows get the alternating class instead.
func (t *Table) AddRow(content any, attr Attr, kind Kind) {
	if t.state == stateFinalized {
		return
	}

	if t.state == stateEmpty {
		t.autoComplete()
	}

	t.closeRow()

	t.row = element(atom.Tr)
	t.section.AppendChild(t.row)

	if !(t.modulus > 0 && attr.Name == "class") {
		setAttr(t.row, attr)
	}

	if t.modulus > 0 && t.section == t.body {
		t.rowCounter++

		class := t.classB
		if t.rowCounter%t.modulus == 0 {
			class = t.classA
		}

		setAttr(t.row, Attr{Name: "class", Value: class})
	}

	for _, cell := range cells(content) {
		t.AddColumn(cell, Attr{}, kind)
	}
}

// AddColumn adds a cell to the open row, starting a row if none is open.
// Empty content leaves the cell pending: it takes further attributes and gets
// its content from AddData, without advancing the column position.
func (t *Table) AddColumn(content string, attr Attr, kind Kind) {
	if t.state == stateFinalized {
		return
	}

	if t.row == nil {
		t.AddRow(nil, Attr{}, kind)
	}

	t.pending = nil

	cell := element(atom.Td)
	if kind == Header {
		cell = element(atom.Th)
	}

	if t.column < len(t.widths) && t.widths[t.column] != "" {
		setAttr(cell, Attr{Name: "style", Value: "width:" + t.widths[t.column]})
	}

	setAttr(cell, attr)

	if content == "" {
		t.pending = cell
		return
	}

	cell.AppendChild(&html.Node{Type: html.RawNode, Data: content})
	t.row.AppendChild(cell)
	t.column++
}

// AddData fills the pending cell left by AddColumn with empty content.
// It returns false if no cell is pending.
func (t *Table) AddData(content string) bool {
	if t.state == stateFinalized || t.pending == nil || t.row == nil {
		return false
	}

	if content != "" {
		t.pending.AppendChild(&html.Node{Type: html.RawNode, Data: content})
	}

	t.row.AppendChild(t.pending)
	t.pending = nil

	return true
}

// HTML finalizes the table and returns its markup with the sections in the order
// thead, tfoot, tbody. Later calls return the same markup.
func (t *Table) HTML() string {
	if t.state == stateFinalized {
		return t.rendered
	}

	t.closeRow()
	t.section = nil
	t.state = stateFinalized

	for _, s := range []*html.Node{t.head, t.foot, t.body} {
		if s != nil {
			t.table.AppendChild(s)
		}
	}

	var b strings.Builder

	// the tree holds no void elements with children, writes to a strings.Builder do not fail
	_ = html.Render(&b, t.table)

	t.rendered = b.String()

	return t.rendered
}

// String implements fmt.Stringer.
func (t *Table) String() string {
	return t.HTML()
}

// autoComplete creates the placeholder head and foot and opens the body.
func (t *Table) autoComplete() {
	t.head = element(atom.Thead)
	t.head.AppendChild(placeholderRow())

	t.foot = element(atom.Tfoot)
	t.foot.AppendChild(placeholderRow())

	t.body = t.openSection(atom.Tbody, stateBody, Attr{})
}

func (t *Table) openSection(a atom.Atom, s state, attr Attr) *html.Node {
	t.closeRow()

	n := element(a)
	setAttr(n, attr)

	t.section = n
	t.state = s

	return n
}

func (t *Table) seed(content any, kind Kind) {
	if len(cells(content)) > 0 {
		t.AddRow(content, Attr{}, kind)
	}
}

func (t *Table) closeRow() {
	t.row = nil
	t.pending = nil
	t.column = 0
}

func placeholderRow() *html.Node {
	tr := element(atom.Tr)
	tr.AppendChild(element(atom.Td))

	return tr
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
}

// setAttr adds the attribute, class values are joined with a space and
// style values with a semicolon, any other attribute is replaced.
func setAttr(n *html.Node, a Attr) {
	if !a.set() {
		return
	}

	key := strings.ToLower(a.Name)

	for i := range n.Attr {
		if n.Attr[i].Key != key {
			continue
		}

		switch key {
		case "class":
			n.Attr[i].Val += " " + a.Value
		case "style":
			n.Attr[i].Val = strings.TrimSuffix(n.Attr[i].Val, ";") + ";" + a.Value
		default:
			n.Attr[i].Val = a.Value
		}

		return
	}

	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: a.Value})
}

// cells flattens row content into cell contents. Slices and arrays of any element
// type give one cell per element, nested ones are flattened in order.
func cells(content any) []string {
	switch v := content.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}

		return []string{v}
	case []string:
		return v
	case map[string]string:
		out := make([]string, 0, len(v))
		for _, k := range sortedKeys(v) {
			out = append(out, v[k])
		}

		return out
	case map[string]any:
		out := make([]string, 0, len(v))
		for _, k := range sortedKeys(v) {
			out = append(out, text(v[k]))
		}

		return out
	}

	if rv := reflect.ValueOf(content); isSequence(rv) {
		return flatten(rv, make([]string, 0, rv.Len()))
	}

	return []string{text(content)}
}

// isSequence reports slices and arrays, byte slices are text.
func isSequence(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Slice:
		return rv.Type().Elem().Kind() != reflect.Uint8
	case reflect.Array:
		return true
	default:
		return false
	}
}

func flatten(rv reflect.Value, out []string) []string {
	for i := range rv.Len() {
		elem := rv.Index(i)
		if elem.Kind() == reflect.Interface {
			elem = elem.Elem()
		}

		if !elem.IsValid() {
			out = append(out, "")
			continue
		}

		if isSequence(elem) {
			out = flatten(elem, out)
			continue
		}

		out = append(out, text(elem.Interface()))
	}

	return out
}

func text(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
