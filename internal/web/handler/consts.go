package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path of a handler's route group.
	RootPath = "/"

	// ErrNilACDFatalLogMsg is logged when the app, cfg or db pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"
)
