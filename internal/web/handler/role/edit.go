package role

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoMembership/GoMembership/internal/auth"
	"github.com/GoMembership/GoMembership/internal/db/controller/preference"
	controller "github.com/GoMembership/GoMembership/internal/db/controller/role"
	"github.com/GoMembership/GoMembership/internal/db/models"
	"github.com/GoMembership/GoMembership/internal/web/handler"
	"github.com/GoMembership/GoMembership/internal/web/navigation"
)

// Option is an entry of a select box.
type Option struct {
	Value    string
	Label    string
	Group    string
	Selected bool
}

// Checkbox is a right of the authorization group.
type Checkbox struct {
	ID          string
	Label       string
	Description string
	Icon        string // css icon class suffix
	Checked     bool
}

// EditView is the data of the editor template.
type EditView struct {
	Headline string
	Action   string
	Form     Form
	// Webmaster marks the protected role, its name input is disabled.
	Webmaster bool
	// RoleLabel names the role in the dependencies text.
	RoleLabel string
	// Currency is shown next to the contribution.
	Currency string
	Modules  preference.Modules

	Categories      []Option
	MailOptions     []Option
	ListViewOptions []Option
	LeaderOptions   []Option
	Lists           []Option
	CostPeriods     []Option
	Weekdays        []Option
	DependentRoles  []Option
	Rights          []Checkbox

	// CreateInfo tells who created and last changed the role.
	CreateInfo string
}

var (
	mailLabels = []string{"Nobody", "Only role members", "All members", "All guests"}
	viewLabels = []string{"Nobody", "Only role members", "All members"}

	leaderLabels = []string{
		"No additional rights", "Assign members", "Edit members", "Assign and edit members",
	}

	costPeriods = []struct {
		period models.CostPeriod
		label  string
	}{
		{models.CostPeriodUnique, "Unique"},
		{models.CostPeriodNone, "None"},
		{models.CostPeriodYearly, "Yearly"},
		{models.CostPeriodHalfYearly, "Half-yearly"},
		{models.CostPeriodQuarterly, "Quarterly"},
		{models.CostPeriodMonthly, "Monthly"},
	}

	weekdays = []string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
)

// Edit renders the role editor.
func (s *Service) Edit(c *fiber.Ctx) error {
	sess, ok := auth.SessionFromCtx(c)
	if !ok {
		return handler.Forbidden(c)
	}

	id, ok := roleID(c)
	if !ok {
		return handler.Message(c, fiber.StatusBadRequest, TitleEdit, MsgInvalidParameter)
	}

	var (
		r          = models.NewRole()
		headline   = TitleCreate
		showSystem bool
		dependents []uint
	)

	if id > 0 {
		loaded, err := s.loadRole(sess, id)
		if err != nil {
			return renderLoadError(c, id, err)
		}

		r = *loaded
		headline = TitleEdit
		// roles of a system category may keep it
		showSystem = r.Category.System

		if dependents, err = controller.DependentRoleIDs(s.db, id); err != nil {
			log.Error().Err(err).Uint("role_id", id).Msg("failed to load dependent roles")
			return handler.InternalError(c)
		}
	}

	form := FormFromRole(r, dependents)

	var replayed Form

	found, err := s.replay.Take(sessionID(c), ReplayKey, &replayed)
	if err != nil {
		log.Warn().Err(err).Msg("dropping unreadable role form replay")
	}

	if found {
		form = replayed
		if r.Webmaster {
			form.Name = r.Name
		}
	}

	view, err := s.editView(sess.OrgID, r, form, showSystem)
	if err != nil {
		log.Error().Err(err).Uint("role_id", id).Msg("failed to prepare role editor")
		return handler.InternalError(c)
	}

	view.Headline = headline
	view.Action = fmt.Sprintf("%s?rol_id=%d&mode=%d", PathSave, id, ModeSave)

	nav := navigation.NewContext(headline, NavSection, "edit").
		AddBreadcrumb("Home", handler.RootPath, false).
		AddBreadcrumb(TitleList, Path, false).
		AddBreadcrumb(headline, "", true).
		SetBack(navigation.Back(c.Get(fiber.HeaderReferer), c.Hostname(), PathEdit, Path))

	return c.Render(TemplateEdit, fiber.Map{
		"Navigation": nav,
		"Edit":       view,
	}, handler.BaseLayout)
}

// editView collects the select boxes and the checkboxes of the form.
func (s *Service) editView(orgID uint, r models.Role, form Form, showSystem bool) (*EditView, error) {
	mods, err := preference.LoadModules(s.db, orgID)
	if err != nil {
		return nil, err
	}

	categories, err := controller.Categories(s.db, orgID, showSystem)
	if err != nil {
		return nil, err
	}

	lists, err := controller.GlobalLists(s.db, orgID)
	if err != nil {
		return nil, err
	}

	selectable, err := controller.Selectable(s.db, orgID)
	if err != nil {
		return nil, err
	}

	view := &EditView{
		Form:      form,
		Webmaster: r.Webmaster,
		RoleLabel: "the new role",
		Currency:  mods.Currency,
		Modules:   mods,
	}

	if form.Name != "" {
		view.RoleLabel = "role " + form.Name
	}

	view.Categories = categoryOptions(categories, form.CategoryID)
	view.MailOptions = labelOptions(mailLabels, form.MailThisRole)
	view.ListViewOptions = labelOptions(viewLabels, form.ThisListView)
	view.LeaderOptions = labelOptions(leaderLabels, form.LeaderRights)
	view.Lists = listOptions(lists, form.ListID)
	view.CostPeriods = costPeriodOptions(form.CostPeriod)
	view.Weekdays = labelOptions(weekdays, form.Weekday)
	view.DependentRoles = dependentOptions(selectable, r.ID, form.DependentRoles)
	view.Rights = rightCheckboxes(form, mods)

	if r.ID > 0 {
		view.CreateInfo = s.createInfo(r)
	}

	return view, nil
}

// categoryOptions preselects the default category for new roles.
func categoryOptions(categories []models.Category, selected string) []Option {
	out := make([]Option, 0, len(categories))

	if selected == "" {
		for _, cat := range categories {
			if cat.Default {
				selected = strconv.FormatUint(uint64(cat.ID), 10)
				break
			}
		}
	}

	for _, cat := range categories {
		v := strconv.FormatUint(uint64(cat.ID), 10)
		out = append(out, Option{Value: v, Label: cat.Name, Selected: v == selected})
	}

	return out
}

// labelOptions uses the index of each label as its value, an empty label shows as "-".
func labelOptions(labels []string, selected string) []Option {
	out := make([]Option, 0, len(labels))

	for i, l := range labels {
		if l == "" {
			l = "-"
		}

		v := strconv.Itoa(i)
		out = append(out, Option{Value: v, Label: l, Selected: v == selected})
	}

	return out
}

func listOptions(lists []models.List, selected string) []Option {
	out := []Option{{Value: "0", Label: "System default list", Selected: selected == "" || selected == "0"}}

	for _, l := range lists {
		v := strconv.FormatUint(uint64(l.ID), 10)
		out = append(out, Option{Value: v, Label: *l.Name, Selected: v == selected})
	}

	return out
}

func costPeriodOptions(selected string) []Option {
	if selected == "" {
		selected = "0"
	}

	out := make([]Option, 0, len(costPeriods))

	for _, p := range costPeriods {
		v := strconv.Itoa(int(p.period))
		out = append(out, Option{Value: v, Label: p.label, Selected: v == selected})
	}

	return out
}

// dependentOptions offers every selectable role but the edited one, grouped by category.
func dependentOptions(roles []models.Role, self uint, selected []uint) []Option {
	out := make([]Option, 0, len(roles))

	for _, r := range roles {
		if r.ID == self {
			continue
		}

		out = append(out, Option{
			Value:    strconv.FormatUint(uint64(r.ID), 10),
			Label:    r.Name,
			Group:    r.Category.Name,
			Selected: slices.Contains(selected, r.ID),
		})
	}

	return out
}

// rightCheckboxes lists the rights, the module rights only with their module enabled.
func rightCheckboxes(f Form, mods preference.Modules) []Checkbox {
	out := []Checkbox{
		{ID: "rol_assign_roles", Label: "Assign roles", Icon: "roles", Checked: f.AssignRoles,
			Description: "Members may create and edit roles and assign members. Implies viewing all lists."},
		{ID: "rol_all_lists_view", Label: "View all member lists", Icon: "lists", Checked: f.AllListsView},
		{ID: "rol_approve_users", Label: "Approve registrations", Icon: "new_registrations", Checked: f.ApproveUsers},
		{ID: "rol_edit_user", Label: "Edit profiles of all users", Icon: "group", Checked: f.EditUser,
			Description: "Members may edit the data of all users."},
	}

	if mods.Mail {
		out = append(out, Checkbox{ID: "rol_mail_to_all", Label: "Mail to all roles", Icon: "email", Checked: f.MailToAll})
	}

	out = append(out, Checkbox{ID: "rol_profile", Label: "Edit own profile", Icon: "profile", Checked: f.Profile})

	if mods.Announcements {
		out = append(out, Checkbox{ID: "rol_announcements", Label: "Manage announcements", Icon: "announcements", Checked: f.Announcements})
	}

	if mods.Dates {
		out = append(out, Checkbox{ID: "rol_dates", Label: "Manage dates", Icon: "dates", Checked: f.Dates})
	}

	if mods.Photo {
		out = append(out, Checkbox{ID: "rol_photo", Label: "Manage photos", Icon: "photo", Checked: f.Photo})
	}

	if mods.Download {
		out = append(out, Checkbox{ID: "rol_download", Label: "Manage downloads", Icon: "download", Checked: f.Download})
	}

	if mods.Guestbook {
		out = append(out, Checkbox{ID: "rol_guestbook", Label: "Manage guestbook", Icon: "guestbook", Checked: f.Guestbook})

		// comments need no right when everybody may comment
		if !mods.GuestbookComments4All {
			out = append(out, Checkbox{ID: "rol_guestbook_comments", Label: "Comment guestbook entries", Icon: "comment",
				Checked: f.GuestbookComments})
		}
	}

	if mods.Weblinks {
		out = append(out, Checkbox{ID: "rol_weblinks", Label: "Manage web links", Icon: "weblinks", Checked: f.Weblinks})
	}

	return out
}

// createInfo renders "Created by A on date, last edited by B on date".
func (s *Service) createInfo(r models.Role) string {
	var ids []uint64
	if r.CreatedBy != nil {
		ids = append(ids, *r.CreatedBy)
	}

	if r.ChangedBy != nil {
		ids = append(ids, *r.ChangedBy)
	}

	names, err := s.users.DisplayNames(ids...)
	if err != nil {
		log.Warn().Err(err).Uint("role_id", r.ID).Msg("failed to load creator names")
	}

	name := func(id *uint64) string {
		if id == nil {
			return "unknown"
		}

		if n, ok := names[*id]; ok {
			return n
		}

		return "deleted user"
	}

	info := fmt.Sprintf("Created by %s on %s", name(r.CreatedBy), r.CreatedAt.Format(time.DateTime))
	if r.ChangedAt != nil {
		info += fmt.Sprintf(", last edited by %s on %s", name(r.ChangedBy), r.ChangedAt.Format(time.DateTime))
	}

	return info
}
