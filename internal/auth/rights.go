package auth

// Right is a flag of a role granting its members access to a function.
type Right string

// Rights a role can grant.
const (
	RightAssignRoles       Right = "assign_roles"
	RightAllListsView      Right = "all_lists_view"
	RightApproveUsers      Right = "approve_users"
	RightEditUser          Right = "edit_user"
	RightMailToAll         Right = "mail_to_all"
	RightProfile           Right = "profile"
	RightAnnouncements     Right = "announcements"
	RightDates             Right = "dates"
	RightPhoto             Right = "photo"
	RightDownload          Right = "download"
	RightGuestbook         Right = "guestbook"
	RightGuestbookComments Right = "guestbook_comments"
	RightWeblinks          Right = "weblinks"
	RightWebmaster         Right = "webmaster"
)

// rightColumns maps rights to the roles table columns, only these are queried.
var rightColumns = map[Right]string{
	RightAssignRoles:       "roles.assign_roles",
	RightAllListsView:      "roles.all_lists_view",
	RightApproveUsers:      "roles.approve_users",
	RightEditUser:          "roles.edit_user",
	RightMailToAll:         "roles.mail_to_all",
	RightProfile:           "roles.profile",
	RightAnnouncements:     "roles.announcements",
	RightDates:             "roles.dates",
	RightPhoto:             "roles.photo",
	RightDownload:          "roles.download",
	RightGuestbook:         "roles.guestbook",
	RightGuestbookComments: "roles.guestbook_comments",
	RightWeblinks:          "roles.weblinks",
	RightWebmaster:         "roles.webmaster",
}

// Column returns the column of the right and whether the right is known.
func (r Right) Column() (string, bool) {
	c, ok := rightColumns[r]
	return c, ok
}
