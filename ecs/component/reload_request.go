package component

// ReloadRequest is a one-shot marker asking the reload system to re-read a
// spec file and apply it to live entities.
type ReloadRequest struct {
	Path string
}

var ReloadRequestComponent = NewComponent[ReloadRequest]()
