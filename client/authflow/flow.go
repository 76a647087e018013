package authflow

import (
	"context"
	"strings"

	"github.com/safeshareapp/safeshare/internal/pkg/logger"
	"github.com/safeshareapp/safeshare/internal/pkg/models"
	"github.com/safeshareapp/safeshare/internal/utils"
)

// Step identifies where the user is in the identity challenge
type Step string

const (
	StepEmail    Step = "email"
	StepPassword Step = "password"
	StepSignup   Step = "signup"
	StepOTP      Step = "otp"
)

// Display messages. Remote rejections surface their own message instead.
const (
	msgNetworkError     = "Network error. Please try again."
	msgSessionExpired   = "Your session has expired. Please start over."
	msgAccountCreated   = "Account created successfully. Please sign in."
	msgCheckUserFailed  = "Failed to check email. Please try again."
	msgLoginFailed      = "Invalid credentials"
	msgSendOTPFailed    = "Failed to send verification code"
	msgVerifyOTPFailed  = "Invalid verification code"
	msgSignupFailed     = "Failed to create account"
	msgEmailRequired    = "Email is required"
	msgPasswordRequired = "Password is required"
	msgOTPShape         = "Enter the 6-digit verification code"
)

// SignupData is the immutable snapshot captured when OTP issuance is
// requested, so account creation does not depend on live form state
type SignupData struct {
	Name     string
	Email    string
	Password string
}

// State is the externally visible flow state
type State struct {
	Step  Step
	Busy  bool
	Error string
	Email string
}

// Navigator receives the flow's exit transitions
type Navigator interface {
	// NavigateHome is the authenticated exit
	NavigateHome()
	// NavigateSignIn is the soft exit after signup when auto-login failed;
	// notice carries the success-with-followup message
	NavigateSignIn(notice string)
}

// Flow sequences the identity challenge across the four steps. Methods are
// synchronous; the embedded busy flag makes a submit while another is in
// flight a no-op, matching a UI that disables resubmission while loading.
type Flow struct {
	client IdentityClient
	tokens *TokenStore
	nav    Navigator

	step       Step
	busy       bool
	errMsg     string
	email      string
	signupData *SignupData
}

// New creates a flow at the email step. Any persisted access token is read
// back and mirrored into the client's default Authorization header.
func New(client IdentityClient, tokens *TokenStore, nav Navigator) *Flow {
	f := &Flow{
		client: client,
		tokens: tokens,
		nav:    nav,
		step:   StepEmail,
	}

	if token := tokens.AccessToken(); token != "" {
		client.SetAuthToken(token)
	}

	return f
}

// State returns the current flow state
func (f *Flow) State() State {
	return State{
		Step:  f.step,
		Busy:  f.busy,
		Error: f.errMsg,
		Email: f.email,
	}
}

// RestoreSession attempts a silent refresh when no token is persisted.
// Failures are swallowed; the user simply signs in normally.
func (f *Flow) RestoreSession(ctx context.Context) bool {
	if f.tokens.AccessToken() != "" {
		return true
	}

	token, err := f.client.Refresh(ctx)
	if err != nil || token == "" {
		return false
	}

	f.persistToken(token)
	return true
}

// SubmitEmail resolves the email to the password step for known accounts
// and the signup step for new ones
func (f *Flow) SubmitEmail(ctx context.Context, email string) State {
	if f.busy {
		return f.State()
	}

	email = strings.TrimSpace(email)
	if email == "" {
		f.errMsg = msgEmailRequired
		return f.State()
	}

	f.beginRequest()
	defer f.endRequest()

	result, err := f.client.CheckUser(ctx, email)
	if err != nil {
		f.errMsg = displayError(err, msgCheckUserFailed)
		return f.State()
	}

	f.email = email
	if result == models.UserExists {
		f.setStep(StepPassword)
	} else {
		f.setStep(StepSignup)
	}
	return f.State()
}

// SubmitPassword logs in with the drafted email. Success persists the token
// and exits the flow.
func (f *Flow) SubmitPassword(ctx context.Context, password string) State {
	if f.busy {
		return f.State()
	}

	if strings.TrimSpace(password) == "" {
		f.errMsg = msgPasswordRequired
		return f.State()
	}

	f.beginRequest()
	defer f.endRequest()

	token, err := f.client.Login(ctx, f.email, password)
	if err != nil {
		f.errMsg = displayError(err, msgLoginFailed)
		return f.State()
	}

	f.persistToken(token)
	f.nav.NavigateHome()
	return f.State()
}

// SubmitSignup validates the form, captures the signup snapshot and
// requests a verification code for the email
func (f *Flow) SubmitSignup(ctx context.Context, input SignupInput) State {
	if f.busy {
		return f.State()
	}

	if unmet := input.Validate(); len(unmet) > 0 {
		f.errMsg = strings.Join(unmet, ". ")
		return f.State()
	}

	f.beginRequest()
	defer f.endRequest()

	if err := f.client.SendOTP(ctx, input.Email, models.OTPPurposeSignup); err != nil {
		f.errMsg = displayError(err, msgSendOTPFailed)
		return f.State()
	}

	f.signupData = &SignupData{
		Name:     strings.TrimSpace(input.Name),
		Email:    input.Email,
		Password: input.Password,
	}
	f.email = input.Email
	f.setStep(StepOTP)
	return f.State()
}

// SubmitOTP runs the composite pipeline: verify the code, create the
// account, then auto-login. Each stage must succeed before the next begins.
// An auto-login failure after the account exists is a soft exit to sign-in,
// not an error.
func (f *Flow) SubmitOTP(ctx context.Context, code string) State {
	if f.busy {
		return f.State()
	}

	if f.signupData == nil {
		// The draft is unrecoverable; restart the flow
		f.setStep(StepEmail)
		f.errMsg = msgSessionExpired
		return f.State()
	}

	code = strings.TrimSpace(code)
	if !utils.IsValidOTP(code) {
		f.errMsg = msgOTPShape
		return f.State()
	}

	f.beginRequest()
	defer f.endRequest()

	draft := *f.signupData

	verified, err := f.client.VerifyOTP(ctx, draft.Email, code)
	if err != nil {
		f.errMsg = displayError(err, msgVerifyOTPFailed)
		return f.State()
	}
	if !verified {
		f.errMsg = msgVerifyOTPFailed
		return f.State()
	}

	if _, err := f.client.SignUp(ctx, draft.Name, draft.Email, draft.Password); err != nil {
		f.errMsg = displayError(err, msgSignupFailed)
		return f.State()
	}

	token, err := f.client.Login(ctx, draft.Email, draft.Password)
	if err != nil {
		// The account exists; password retry is the recovery path
		logger.Warn("Auto-login after signup failed",
			logger.ErrorField(err))
		f.signupData = nil
		f.setStep(StepEmail)
		f.nav.NavigateSignIn(msgAccountCreated)
		return f.State()
	}

	f.signupData = nil
	f.persistToken(token)
	f.nav.NavigateHome()
	return f.State()
}

// ResendOTP re-requests a code for the captured signup email. The previous
// code stops working once the service issues a new one.
func (f *Flow) ResendOTP(ctx context.Context) State {
	if f.busy {
		return f.State()
	}

	if f.signupData == nil {
		f.setStep(StepEmail)
		f.errMsg = msgSessionExpired
		return f.State()
	}

	f.beginRequest()
	defer f.endRequest()

	if err := f.client.SendOTP(ctx, f.signupData.Email, models.OTPPurposeSignup); err != nil {
		f.errMsg = displayError(err, msgSendOTPFailed)
	}
	return f.State()
}

// Back returns one step without touching the network. Returning to the
// email step drops the signup draft.
func (f *Flow) Back() State {
	if f.busy {
		return f.State()
	}

	switch f.step {
	case StepPassword, StepSignup:
		f.signupData = nil
		f.setStep(StepEmail)
	case StepOTP:
		f.setStep(StepSignup)
	}
	return f.State()
}

func (f *Flow) beginRequest() {
	f.busy = true
	f.errMsg = ""
}

func (f *Flow) endRequest() {
	f.busy = false
}

// setStep changes step and clears any displayed error
func (f *Flow) setStep(step Step) {
	f.step = step
	f.errMsg = ""
}

func (f *Flow) persistToken(token string) {
	if err := f.tokens.SaveAccessToken(token); err != nil {
		logger.Warn("Failed to persist access token",
			logger.ErrorField(err))
	}
	f.client.SetAuthToken(token)
}

// displayError maps an error to its user-facing message: remote rejection
// messages verbatim, everything else collapses to the network fallback
func displayError(err error, fallback string) string {
	if remote, ok := AsRemoteError(err); ok {
		if remote.Message != "" {
			return remote.Message
		}
		return fallback
	}
	return msgNetworkError
}
