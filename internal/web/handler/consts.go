package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// RouterRootPath is the root path inside a route group.
	RouterRootPath = "/"

	// TemplateMessage shows a single message to the user.
	TemplateMessage = "message"

	// LocalCurrentUser is the fiber.Locals key of the logged-in models.User.
	LocalCurrentUser = "CurrentUser"
	// LocalSession is the fiber.Locals key of the *session.Data of the request.
	LocalSession = "Session"
	// LocalSessionID is the fiber.Locals key of the session id of the request.
	LocalSessionID = "SessionID"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"

	// MsgNoRights is shown when the user lacks the rights for a page.
	MsgNoRights = "You do not have the rights to access this page."
	// MsgNotFound is shown when the requested record does not exist.
	MsgNotFound = "The requested record does not exist."
	// MsgInternalError is shown when an unexpected error occurred.
	MsgInternalError = "An internal error occurred, please try again later."
)
