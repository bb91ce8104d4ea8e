package role

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/GoMembership/GoMembership/internal/db/controller/preference"
	"github.com/GoMembership/GoMembership/internal/db/models"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	maxMembersLimit = 99999
)

var (
	// ErrNameRequired is returned when a role without name is saved.
	ErrNameRequired = errors.New("the role needs a name")
	// ErrNameTaken is returned when the category already has a role with the name.
	ErrNameTaken = errors.New("a role with this name already exists in the category")
	// ErrInvalidCategory is returned when the category is unknown or not usable by the organization.
	ErrInvalidCategory = errors.New("please choose a valid category")
	// ErrInvalidList is returned when the default list is no global list of the organization.
	ErrInvalidList = errors.New("please choose a valid default list")
	// ErrInvalidMaxMembers is returned for a member cap outside 0 to 99999.
	ErrInvalidMaxMembers = errors.New("max members must be a number between 0 and 99999")
	// ErrInvalidCost is returned for a cost that is no positive decimal.
	ErrInvalidCost = errors.New("the contribution must be a positive amount")
	// ErrInvalidDate is returned for a date not in the form YYYY-MM-DD.
	ErrInvalidDate = errors.New("dates must be given as YYYY-MM-DD")
	// ErrInvalidTime is returned for a time not in the form HH:MM.
	ErrInvalidTime = errors.New("times must be given as HH:MM")
	// ErrEndBeforeStart is returned when the end date lies before the start date.
	ErrEndBeforeStart = errors.New("the end date must not be before the start date")
	// ErrInvalidFormData is returned when the submission can not be parsed.
	ErrInvalidFormData = errors.New("invalid form data")
)

// Form is the submitted role editor form. All values stay text so a rejected
// submission can be shown again exactly as it was entered.
type Form struct {
	Name         string `form:"rol_name" json:"name" validate:"max=100"`
	Description  string `form:"rol_description" json:"description" validate:"max=4000"`
	CategoryID   string `form:"rol_cat_id" json:"category_id" validate:"required,number"`
	MailThisRole string `form:"rol_mail_this_role" json:"mail_this_role" validate:"omitempty,oneof=0 1 2 3"`
	ThisListView string `form:"rol_this_list_view" json:"this_list_view" validate:"omitempty,oneof=0 1 2"`
	LeaderRights string `form:"rol_leader_rights" json:"leader_rights" validate:"omitempty,oneof=0 1 2 3"`
	ListID       string `form:"rol_lst_id" json:"list_id" validate:"omitempty,number"`
	MaxMembers   string `form:"rol_max_members" json:"max_members" validate:"omitempty,number"`
	Cost         string `form:"rol_cost" json:"cost" validate:"max=20"`
	CostPeriod   string `form:"rol_cost_period" json:"cost_period" validate:"omitempty,oneof=-1 0 1 2 4 12"`
	StartDate    string `form:"rol_start_date" json:"start_date"`
	EndDate      string `form:"rol_end_date" json:"end_date"`
	StartTime    string `form:"rol_start_time" json:"start_time"`
	EndTime      string `form:"rol_end_time" json:"end_time"`
	Weekday      string `form:"rol_weekday" json:"weekday" validate:"omitempty,oneof=0 1 2 3 4 5 6 7"`
	Location     string `form:"rol_location" json:"location" validate:"max=100"`

	DefaultRegistration bool `form:"rol_default_registration" json:"default_registration"`
	AssignRoles         bool `form:"rol_assign_roles" json:"assign_roles"`
	AllListsView        bool `form:"rol_all_lists_view" json:"all_lists_view"`
	ApproveUsers        bool `form:"rol_approve_users" json:"approve_users"`
	EditUser            bool `form:"rol_edit_user" json:"edit_user"`
	MailToAll           bool `form:"rol_mail_to_all" json:"mail_to_all"`
	Profile             bool `form:"rol_profile" json:"profile"`
	Announcements       bool `form:"rol_announcements" json:"announcements"`
	Dates               bool `form:"rol_dates" json:"dates"`
	Photo               bool `form:"rol_photo" json:"photo"`
	Download            bool `form:"rol_download" json:"download"`
	Guestbook           bool `form:"rol_guestbook" json:"guestbook"`
	GuestbookComments   bool `form:"rol_guestbook_comments" json:"guestbook_comments"`
	Weblinks            bool `form:"rol_weblinks" json:"weblinks"`

	DependentRoles []uint `form:"dependent_roles" json:"dependent_roles"`

	// Error is the message shown above a replayed form.
	Error string `form:"-" json:"error,omitempty"`
}

// FormFromRole fills the form with the stored values of the role.
func FormFromRole(r models.Role, dependents []uint) Form {
	f := Form{
		Name:         r.Name,
		Description:  r.Description,
		MailThisRole: strconv.Itoa(int(r.MailThisRole)),
		ThisListView: strconv.Itoa(int(r.ThisListView)),
		LeaderRights: strconv.Itoa(int(r.LeaderRights)),
		MaxMembers:   strconv.Itoa(r.MaxMembers),
		CostPeriod:   strconv.Itoa(int(r.CostPeriod)),
		Weekday:      strconv.Itoa(r.Weekday),
		Location:     r.Location,

		DefaultRegistration: r.DefaultRegistration,
		AssignRoles:         r.AssignRoles,
		AllListsView:        r.AllListsView,
		ApproveUsers:        r.ApproveUsers,
		EditUser:            r.EditUser,
		MailToAll:           r.MailToAll,
		Profile:             r.Profile,
		Announcements:       r.Announcements,
		Dates:               r.Dates,
		Photo:               r.Photo,
		Download:            r.Download,
		Guestbook:           r.Guestbook,
		GuestbookComments:   r.GuestbookComments,
		Weblinks:            r.Weblinks,

		DependentRoles: dependents,
	}

	if r.CategoryID > 0 {
		f.CategoryID = strconv.FormatUint(uint64(r.CategoryID), 10)
	}

	if r.ListID != nil {
		f.ListID = strconv.FormatUint(uint64(*r.ListID), 10)
	}

	if r.MaxMembers == 0 {
		f.MaxMembers = ""
	}

	if r.Cost.Valid {
		f.Cost = r.Cost.Decimal.StringFixed(2)
	}

	if r.StartDate != nil {
		f.StartDate = time.Time(*r.StartDate).Format(dateLayout)
	}

	if r.EndDate != nil {
		f.EndDate = time.Time(*r.EndDate).Format(dateLayout)
	}

	f.StartTime = formatTime(r.StartTime)
	f.EndTime = formatTime(r.EndTime)

	return f
}

// Validate checks the field constraints and returns the first violation as a message.
func (f *Form) Validate(v *validator.Validate) error {
	err := v.Struct(f)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return ErrInvalidFormData
	}

	ve := validationErrors[0]

	return fmt.Errorf("%w: field '%s' failed validation tag '%s'", ErrInvalidFormData, ve.Field(), ve.Tag())
}

// Apply writes the form values into r. Rights of disabled modules keep their stored value
// because the editor does not show them. The webmaster flag is never set from a form.
func (f *Form) Apply(r *models.Role, mods preference.Modules) error {
	categoryID, err := parseUint(f.CategoryID)
	if err != nil || categoryID == 0 {
		return ErrInvalidCategory
	}

	maxMembers, err := parseInt(f.MaxMembers)
	if err != nil || maxMembers < 0 || maxMembers > maxMembersLimit {
		return ErrInvalidMaxMembers
	}

	cost, err := parseCost(f.Cost)
	if err != nil {
		return err
	}

	startDate, err := parseDate(f.StartDate)
	if err != nil {
		return err
	}

	endDate, err := parseDate(f.EndDate)
	if err != nil {
		return err
	}

	if startDate != nil && endDate != nil && time.Time(*endDate).Before(time.Time(*startDate)) {
		return ErrEndBeforeStart
	}

	startTime, err := parseTime(f.StartTime)
	if err != nil {
		return err
	}

	endTime, err := parseTime(f.EndTime)
	if err != nil {
		return err
	}

	listID, _ := parseUint(f.ListID)

	// the validator restricted these to their option values
	thisListView, _ := parseInt(f.ThisListView)
	leaderRights, _ := parseInt(f.LeaderRights)
	costPeriod, _ := parseInt(f.CostPeriod)
	weekday, _ := parseInt(f.Weekday)

	if !r.Webmaster {
		r.Name = strings.TrimSpace(f.Name)
	}

	r.Description = strings.TrimSpace(f.Description)
	r.CategoryID = uint(categoryID)
	r.ThisListView = models.ListView(thisListView)
	r.LeaderRights = models.LeaderRights(leaderRights)
	r.MaxMembers = maxMembers
	r.Cost = cost
	r.CostPeriod = models.CostPeriod(costPeriod)
	r.StartDate, r.EndDate = startDate, endDate
	r.StartTime, r.EndTime = startTime, endTime
	r.Weekday = weekday
	r.Location = strings.TrimSpace(f.Location)

	r.ListID = nil
	if listID > 0 {
		id := uint(listID)
		r.ListID = &id
	}

	r.DefaultRegistration = f.DefaultRegistration
	r.AssignRoles = f.AssignRoles
	r.AllListsView = f.AllListsView || f.AssignRoles
	r.ApproveUsers = f.ApproveUsers
	r.EditUser = f.EditUser
	r.Profile = f.Profile

	if mods.Mail {
		mail, _ := parseInt(f.MailThisRole)
		r.MailThisRole = models.MailLevel(mail)
		r.MailToAll = f.MailToAll
	}

	if mods.Announcements {
		r.Announcements = f.Announcements
	}

	if mods.Dates {
		r.Dates = f.Dates
	}

	if mods.Photo {
		r.Photo = f.Photo
	}

	if mods.Download {
		r.Download = f.Download
	}

	if mods.Guestbook {
		r.Guestbook = f.Guestbook

		if !mods.GuestbookComments4All {
			r.GuestbookComments = f.GuestbookComments
		}
	}

	if mods.Weblinks {
		r.Weblinks = f.Weblinks
	}

	if r.MaxMembers > 0 {
		f.DependentRoles = nil
	}

	return nil
}

func parseUint(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	return strconv.ParseUint(s, 10, 32)
}

func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	return strconv.Atoi(s)
}

// parseCost accepts a decimal comma as well as a point.
func parseCost(s string) (decimal.NullDecimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.NullDecimal{}, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.NullDecimal{}, ErrInvalidCost
	}

	return decimal.NewNullDecimal(d.Round(2)), nil
}

func parseDate(s string) (*datatypes.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, ErrInvalidDate
	}

	d := datatypes.Date(t)

	return &d, nil
}

// parseTime accepts HH:MM and HH:MM:SS as sent by time inputs with a step.
func parseTime(s string) (*datatypes.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(timeLayout, s)
	if err != nil {
		if t, err = time.Parse(time.TimeOnly, s); err != nil {
			return nil, ErrInvalidTime
		}
	}

	v := datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0)

	return &v, nil
}

func formatTime(t *datatypes.Time) string {
	if t == nil {
		return ""
	}

	// String gives HH:MM:SS
	s := t.String()
	if len(s) >= len(timeLayout) {
		return s[:len(timeLayout)]
	}

	return s
}
