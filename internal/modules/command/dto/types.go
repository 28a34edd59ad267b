package dto

type Result struct {
	Command string `json:"command"`
	Message string `json:"message"`
}

type IntegrationInput struct {
	Opener   []string
	Modifier string
}

type IntegrationOutput struct {
	Tasks       string
	Keybindings string
	StartURL    string
	PauseURL    string
	StopURL     string
	NoteURL     string
}
