package captcha

import (
	"fmt"

	"github.com/google/uuid"
)

// ViewModel is everything a template needs to draw the challenge widget: an
// image pointing at the challenge endpoint with a cache-busting parameter, a
// required text input, and an audio control when clips are configured.
type ViewModel struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Value        string `json:"value"`
	ImageURL     string `json:"imageUrl"`
	AudioURL     string `json:"audioUrl,omitempty"`
	WithAudio    bool   `json:"withAudio"`
	Required     bool   `json:"required"`
	Error        bool   `json:"error"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// Result is the outcome of validating the widget's submitted value.
type Result struct {
	Accepted bool   `json:"accepted"`
	Message  string `json:"message,omitempty"`
}

// Widget is the typed challenge form element. The surrounding form framework
// renders its view model and routes the submitted value through Validate.
type Widget struct {
	Name string

	manager *Manager
	session *ChallengeSession

	value string // retained only after a successful validation
	valid *bool  // nil: not yet validated
}

func NewWidget(name string, m *Manager, s *ChallengeSession) *Widget {
	if name == "" {
		name = "captcha_element"
	}
	return &Widget{Name: name, manager: m, session: s}
}

// Render builds the widget view model. Each call carries a fresh cache-busting
// parameter so the browser refetches the challenge image.
func (w *Widget) Render(endpoint string) ViewModel {
	bust := uuid.NewString()
	vm := ViewModel{
		ID:        "captcha-" + w.Name,
		Name:      w.Name,
		Value:     w.value,
		ImageURL:  fmt.Sprintf("%s?rand=%s", endpoint, bust),
		WithAudio: w.manager.HasAudio(),
		Required:  true,
		Error:     w.valid != nil && !*w.valid,
	}
	if vm.Error {
		vm.ErrorMessage = "incorrect"
	}
	if vm.WithAudio {
		vm.AudioURL = fmt.Sprintf("%s?audio=1&rand=%s", endpoint, bust)
	}
	return vm
}

// Validate runs the submitted value through the challenge state machine. On
// success the value is retained for redisplay; on failure the widget is marked
// invalid with the message "incorrect".
func (w *Widget) Validate(input string) Result {
	ok := w.manager.Verify(w.session, input)
	w.valid = &ok
	if !ok {
		w.value = ""
		return Result{Accepted: false, Message: "incorrect"}
	}
	w.value = input
	return Result{Accepted: true}
}
