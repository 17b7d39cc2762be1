package session

import "errors"

// Mode is the admin axis of the session.
type Mode int

const (
	// ModeViewer is the initial state: items can be toggled, the tree
	// cannot be edited.
	ModeViewer Mode = iota
	// ModeAdminPending means a credential prompt is open.
	ModeAdminPending
	// ModeAdmin permits structural edits until an explicit exit or
	// process end. There is no timeout and no re-prompt.
	ModeAdmin
)

// ErrBadCredential is returned on a failed admin login attempt. There is
// no lockout and no rate limit; the prompt simply stays open.
var ErrBadCredential = errors.New("incorrect password")

// Verifier checks a submitted credential. The contract is an exact
// match against a single shared secret; implementations decide where
// that secret lives so a deployment can swap in a real secret store
// without touching the controller.
type Verifier interface {
	Verify(password string) bool
}

// StaticVerifier compares against a configured credential. An empty
// credential never matches: an unset password must lock admin mode
// shut, not leave it open.
type StaticVerifier struct {
	Credential string
}

func (v StaticVerifier) Verify(password string) bool {
	return v.Credential != "" && password == v.Credential
}

// Controller tracks which service is active and whether the session
// holds admin capability. It gates which store operations the
// presentation layer may invoke; the store itself never checks.
type Controller struct {
	mode     Mode
	loginErr string
	selected string
	verifier Verifier
}

func NewController(v Verifier) *Controller {
	return &Controller{verifier: v}
}

func (c *Controller) Mode() Mode         { return c.mode }
func (c *Controller) LoginError() string { return c.loginErr }

// CanEdit reports whether structural mutations are currently allowed.
func (c *Controller) CanEdit() bool { return c.mode == ModeAdmin }

// RequestAdmin opens the credential prompt. Requesting while already
// admin does nothing.
func (c *Controller) RequestAdmin() {
	if c.mode == ModeAdmin {
		return
	}
	c.mode = ModeAdminPending
	c.loginErr = ""
}

// SubmitPassword resolves a pending prompt. On a mismatch the prompt
// stays open with an inline error; on a match the error clears and the
// session becomes admin.
func (c *Controller) SubmitPassword(password string) error {
	if c.mode != ModeAdminPending {
		return nil
	}
	if !c.verifier.Verify(password) {
		c.loginErr = "Incorrect password."
		return ErrBadCredential
	}
	c.mode = ModeAdmin
	c.loginErr = ""
	return nil
}

// ResumeAdmin restores a session that already authenticated, e.g. one
// recorded by a login marker from a previous process. It must only be
// called for sessions that passed SubmitPassword at some point.
func (c *Controller) ResumeAdmin() {
	c.mode = ModeAdmin
	c.loginErr = ""
}

// CancelLogin abandons a pending prompt.
func (c *Controller) CancelLogin() {
	if c.mode == ModeAdminPending {
		c.mode = ModeViewer
		c.loginErr = ""
	}
}

// ExitAdmin drops back to viewer. No credential required to leave.
func (c *Controller) ExitAdmin() {
	c.mode = ModeViewer
	c.loginErr = ""
}

// Selected returns the active service id, or "" for the home view.
func (c *Controller) Selected() string { return c.selected }

func (c *Controller) Select(id string) { c.selected = id }

// Deselect returns to the home view.
func (c *Controller) Deselect() { c.selected = "" }

// ServiceDeleted self-heals the selection: a deleted service can never
// stay selected, so deleting the active one lands on home.
func (c *Controller) ServiceDeleted(id string) {
	if c.selected == id {
		c.selected = ""
	}
}
