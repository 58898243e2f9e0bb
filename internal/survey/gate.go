package survey

import (
	"errors"
	"fmt"
)

// State is the admin access state of a client.
type State string

const (
	LoggedOut       State = "logged_out"
	ShowingLogin    State = "showing_login"
	ShowingRegister State = "showing_register"
	LoggedIn        State = "logged_in"
)

// View is the tab the client shows.
type View string

const (
	ViewSurvey View = "encuesta"
	ViewAdmin  View = "admin"
)

// Action is a named transition of the Gate.
type Action string

const (
	OpenAdmin      Action = "open_admin"
	OpenSurvey     Action = "open_survey"
	ShowRegister   Action = "show_register"
	ShowLogin      Action = "show_login"
	LoginSucceeded Action = "login_succeeded"
	Logout         Action = "logout"
)

var ErrInvalidTransition = errors.New("invalid transition")

// Gate is the client's admin state machine. The zero value is logged out
// on the survey tab.
type Gate struct {
	State State `json:"estado"`
	View  View  `json:"vista"`
}

func NewGate() Gate {
	return Gate{State: LoggedOut, View: ViewSurvey}
}

// Apply returns the gate after a. The receiver is left unchanged; an
// action not allowed from the current state yields ErrInvalidTransition.
func (g Gate) Apply(a Action) (Gate, error) {
	if g.State == "" {
		g = NewGate()
	}
	next := g
	switch a {
	case OpenAdmin:
		next.View = ViewAdmin
		if g.State == LoggedOut {
			next.State = ShowingLogin
		}
	case OpenSurvey:
		next.View = ViewSurvey
		if g.State == ShowingLogin || g.State == ShowingRegister {
			next.State = LoggedOut
		}
	case ShowRegister:
		if g.State != LoggedOut && g.State != ShowingLogin {
			return g, invalid(g, a)
		}
		next.State, next.View = ShowingRegister, ViewAdmin
	case ShowLogin:
		if g.State != ShowingRegister {
			return g, invalid(g, a)
		}
		next.State = ShowingLogin
	case LoginSucceeded:
		if g.State != ShowingLogin && g.State != ShowingRegister {
			return g, invalid(g, a)
		}
		next.State, next.View = LoggedIn, ViewAdmin
	case Logout:
		if g.State != LoggedIn {
			return g, invalid(g, a)
		}
		next.State, next.View = LoggedOut, ViewSurvey
	default:
		return g, fmt.Errorf("unknown action %q: %w", a, ErrInvalidTransition)
	}
	return next, nil
}

func invalid(g Gate, a Action) error {
	return fmt.Errorf("%s from %s: %w", a, g.State, ErrInvalidTransition)
}
