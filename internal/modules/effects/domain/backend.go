package domain

const (
	BackendPlugin  = "plugin"
	BackendSystem  = "system"
	BackendConsole = "console"
)

// BackendStatus reports whether a notification backend can deliver right now.
type BackendStatus struct {
	Name      string
	Available bool
	Detail    string
}
