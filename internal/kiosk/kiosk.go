// Package kiosk is the three-phase child entry flow: pick a profile, verify
// its PIN, reach the task panel. The flow is linear; no phase can be
// skipped and leaving a phase discards everything entered in it.
package kiosk

import (
	"context"

	"ceria/internal/api"
	"ceria/internal/token"
)

// Phase is the flow's current screen.
type Phase int

const (
	PhaseProfiles Phase = iota
	PhasePIN
	PhasePanel
)

// pinLength is fixed: the fourth digit submits automatically.
const pinLength = 4

// Gate verifies a selected profile's PIN. The two implementations differ in
// security posture, not in flow.
type Gate interface {
	Verify(ctx context.Context, child api.ChildProfile, pin string) error
}

// PinVerifier is the backend call the soft gate needs.
type PinVerifier interface {
	VerifyPIN(ctx context.Context, childID, pin string) error
}

// SoftGate checks the PIN under the parent's session without minting a
// credential. The parent stays the authenticated identity; the PIN gates
// in-app navigation on a shared device, not the API, which still
// authorizes every call against the parent token. Use ChildLogin when the
// child is on their own device.
type SoftGate struct {
	API PinVerifier
}

func (g SoftGate) Verify(ctx context.Context, child api.ChildProfile, pin string) error {
	return g.API.VerifyPIN(ctx, child.ID, pin)
}

// ChildSession is the session call the standalone gate needs.
type ChildSession interface {
	LoginChild(ctx context.Context, childID, pin string) (token.Role, error)
}

// ChildLogin is the standalone gate: a correct PIN mints a real child-role
// credential and switches the browser session to it.
type ChildLogin struct {
	Session ChildSession
}

func (g ChildLogin) Verify(ctx context.Context, child api.ChildProfile, pin string) error {
	_, err := g.Session.LoginChild(ctx, child.ID, pin)
	return err
}

// ProfileSource lists the profiles offered in the first phase, plus the
// family display title. The standalone flow looks the family up by public
// slug; the in-dashboard kiosk lists the parent's own children.
type ProfileSource func(ctx context.Context) (string, []api.ChildProfile, error)

// BySlug lists profiles through the public family lookup.
func BySlug(client *api.Client, slug string) ProfileSource {
	return func(ctx context.Context) (string, []api.ChildProfile, error) {
		family, err := client.FamilyChildren(ctx, slug)
		if err != nil {
			return "", nil, err
		}
		return family.FamilyTitle, family.Children, nil
	}
}

// ByParent lists the authenticated parent's children.
func ByParent(client *api.Client) ProfileSource {
	return func(ctx context.Context) (string, []api.ChildProfile, error) {
		children, err := client.Children(ctx)
		if err != nil {
			return "", nil, err
		}
		profiles := make([]api.ChildProfile, len(children))
		for i, child := range children {
			profiles[i] = api.ChildProfile{ID: child.ID, Name: child.Name, Avatar: child.Avatar}
		}
		return "", profiles, nil
	}
}

// Flow is the kiosk state machine.
type Flow struct {
	source ProfileSource
	gate   Gate

	// OnVerified runs when a profile passes its PIN check, just before the
	// panel phase. Callers hang the panel activation here, pointing the
	// task ledger and the redemption view at the verified child.
	OnVerified func(child api.ChildProfile)

	phase       Phase
	familyTitle string
	profiles    []api.ChildProfile
	selected    *api.ChildProfile
	digits      []rune
	pinError    string
	verifying   bool
}

// NewFlow builds a flow over a profile source and a PIN gate.
func NewFlow(source ProfileSource, gate Gate) *Flow {
	return &Flow{source: source, gate: gate}
}

// Load fetches the profile list and enters the profile-selection phase.
func (f *Flow) Load(ctx context.Context) error {
	title, profiles, err := f.source(ctx)
	if err != nil {
		return err
	}
	f.familyTitle = title
	f.profiles = profiles
	f.reset()
	return nil
}

func (f *Flow) reset() {
	f.phase = PhaseProfiles
	f.selected = nil
	f.digits = nil
	f.pinError = ""
	f.verifying = false
}

// Phase returns the current phase.
func (f *Flow) Phase() Phase { return f.phase }

// FamilyTitle is the display title from the slug lookup, empty for the
// in-dashboard kiosk.
func (f *Flow) FamilyTitle() string { return f.familyTitle }

// Profiles returns the selectable child profiles.
func (f *Flow) Profiles() []api.ChildProfile { return f.profiles }

// Selected returns the profile being verified or verified, nil in the
// profile-selection phase.
func (f *Flow) Selected() *api.ChildProfile { return f.selected }

// EnteredDigits reports how many PIN digits are held, for the masked dots.
func (f *Flow) EnteredDigits() int { return len(f.digits) }

// PINError is the inline message after a failed verification.
func (f *Flow) PINError() string { return f.pinError }

// SelectProfile advances to PIN entry for the chosen profile. Ignored
// outside the profile-selection phase or for an unknown id.
func (f *Flow) SelectProfile(childID string) bool {
	if f.phase != PhaseProfiles {
		return false
	}
	for i := range f.profiles {
		if f.profiles[i].ID == childID {
			f.selected = &f.profiles[i]
			f.phase = PhasePIN
			f.digits = nil
			f.pinError = ""
			return true
		}
	}
	return false
}

// EnterDigit appends one PIN digit. The fourth digit submits for
// verification immediately; digits beyond four, non-digits, and input
// while a verification is outstanding are ignored. A failed verification
// clears the entered digits and keeps the flow on the PIN screen.
func (f *Flow) EnterDigit(ctx context.Context, digit rune) {
	if f.phase != PhasePIN || f.verifying || digit < '0' || digit > '9' {
		return
	}
	if len(f.digits) >= pinLength {
		return
	}
	f.digits = append(f.digits, digit)
	f.pinError = ""

	if len(f.digits) < pinLength {
		return
	}

	f.verifying = true
	err := f.gate.Verify(ctx, *f.selected, string(f.digits))
	f.verifying = false
	if err != nil {
		f.digits = nil
		f.pinError = "PIN salah, coba lagi ya!"
		return
	}
	f.digits = nil
	f.phase = PhasePanel
	if f.OnVerified != nil {
		f.OnVerified(*f.selected)
	}
}

// Backspace removes the last entered digit.
func (f *Flow) Backspace() {
	if f.phase != PhasePIN || f.verifying || len(f.digits) == 0 {
		return
	}
	f.digits = f.digits[:len(f.digits)-1]
	f.pinError = ""
}

// ChangeProfile abandons PIN entry and returns to profile selection,
// discarding the selected profile and any entered digits.
func (f *Flow) ChangeProfile() {
	if f.phase != PhasePIN {
		return
	}
	f.reset()
}

// SwitchProfile leaves the task panel and returns to profile selection.
// Verification must be repeated for any profile, including the same one.
func (f *Flow) SwitchProfile() {
	if f.phase != PhasePanel {
		return
	}
	f.reset()
}
