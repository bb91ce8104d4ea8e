package role

import (
	"fmt"
	"html/template"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"github.com/GoMembership/GoMembership/internal/auth"
	controller "github.com/GoMembership/GoMembership/internal/db/controller/role"
	"github.com/GoMembership/GoMembership/internal/db/models"
	"github.com/GoMembership/GoMembership/internal/web/handler"
	"github.com/GoMembership/GoMembership/internal/web/htmltable"
	"github.com/GoMembership/GoMembership/internal/web/navigation"
)

const (
	// TableID is the id of the role table.
	TableID = "roles_table"

	classOdd  = "odd"
	classEven = "even"
)

var columnWidths = []string{"20%", "30%", "15%", "15%", "20%"}

// List renders the roles of the organization, ?inactive=1 shows the deactivated ones.
// ?rows=N changes the row class every N rows.
func (s *Service) List(c *fiber.Ctx) error {
	sess, ok := auth.SessionFromCtx(c)
	if !ok {
		return handler.Forbidden(c)
	}

	inactive := c.QueryBool("inactive", false)

	roles, err := controller.List(s.db, sess.OrgID, !inactive)
	if err != nil {
		log.Error().Err(err).Uint("org_id", sess.OrgID).Msg("failed to list roles")
		return handler.InternalError(c)
	}

	ids := make([]uint, 0, len(roles))
	for _, r := range roles {
		ids = append(ids, r.ID)
	}

	counts, err := controller.MemberCounts(s.db, ids)
	if err != nil {
		log.Error().Err(err).Msg("failed to count role members")
		return handler.InternalError(c)
	}

	t := RolesTable(roles, counts, inactive, c.Query("rows", "2"))

	nav := navigation.NewContext(TitleList, NavSection, "list").
		AddBreadcrumb("Home", handler.RootPath, false).
		AddBreadcrumb(TitleList, Path, true)

	return c.Render(TemplateList, fiber.Map{
		"Navigation": nav,
		"Inactive":   inactive,
		"Count":      len(roles),
		"NewRoleURL": PathEdit + "?rol_id=0",
		//nolint:gosec // cell content is escaped by RolesTable
		"Table": template.HTML(t.HTML()),
	}, handler.BaseLayout)
}

// RolesTable builds the role table with one row per role.
// rowsPerClass is the textual alternation modulus, invalid values disable alternation.
func RolesTable(roles []models.Role, counts map[uint]int64, inactive bool, rowsPerClass string) *htmltable.Table {
	t := htmltable.New(TableID, "table table-condensed", false)
	t.SetColumnsWidth(columnWidths)

	if !t.ParseClassChange(classOdd, classEven, rowsPerClass) {
		log.Debug().Str("rows", rowsPerClass).Msg("role table without alternating rows")
	}

	t.AddTableHeader(htmltable.Attr{}, []string{"Category", "Role", "Members", "Max members", ""}, htmltable.Header)
	t.AddTableFooter(htmltable.Attr{Name: "class", Value: "roles-footer"}, nil, htmltable.Data)
	t.AddColumn("", htmltable.Attr{}, htmltable.Data)
	t.AddAttribute("colspan", strconv.Itoa(len(columnWidths)))
	t.AddData(fmt.Sprintf("%d roles", len(roles)))
	t.AddTableBody(htmltable.Attr{}, nil, htmltable.Data)

	for _, r := range roles {
		t.AddRow(nil, htmltable.Attr{Name: "id", Value: fmt.Sprintf("role_%d", r.ID)}, htmltable.Data)
		t.AddColumn(html.EscapeString(r.Category.Name), htmltable.Attr{}, htmltable.Data)
		t.AddColumn(fmt.Sprintf(`<a href="%s?rol_id=%d">%s</a>`, PathEdit, r.ID, html.EscapeString(r.Name)),
			htmltable.Attr{}, htmltable.Data)
		t.AddColumn(strconv.FormatInt(counts[r.ID], 10), htmltable.Attr{Name: "class", Value: "num"}, htmltable.Data)

		maxMembers := "&nbsp;"
		if r.MaxMembers > 0 {
			maxMembers = strconv.Itoa(r.MaxMembers)
		}

		t.AddColumn(maxMembers, htmltable.Attr{Name: "class", Value: "num"}, htmltable.Data)

		t.AddColumn(actions(r, inactive), htmltable.Attr{Name: "class", Value: "actions"}, htmltable.Data)
	}

	return t
}

// actions are the buttons of a role row, the webmaster role can only be edited.
func actions(r models.Role, inactive bool) string {
	out := fmt.Sprintf(`<a class="btn" href="%s?rol_id=%d">Edit</a>`, PathEdit, r.ID)
	if r.Webmaster {
		return out
	}

	button := func(mode int, label string) string {
		return fmt.Sprintf(`<form method="post" action="%s?rol_id=%d&amp;mode=%d"><button type="submit" class="btn">%s</button></form>`,
			PathSave, r.ID, mode, label)
	}

	if inactive {
		out += button(ModeReactivate, "Reactivate")
	} else {
		out += button(ModeDeactivate, "Deactivate")
	}

	return out + button(ModeDelete, "Delete")
}
