package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/stackquery/internal/client/gateway"
	"github.com/dmitrijs2005/stackquery/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Success(t *testing.T) {
	out := capturePrintln(t)
	stubInputs(t, []string{"Ada", "ada@example.com"}, "secret123")

	auth := &fakeAuth{createRes: session.Result{Success: true}}
	a := newTestApp(auth)

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, "Ada", auth.LastName)
	assert.Equal(t, "ada@example.com", auth.LastEmail)
	assert.Equal(t, "secret123", auth.LastPassword)
	assert.Contains(t, strings.Join(*out, "\n"), "Account created")
}

func TestRegister_FailureShowsReason(t *testing.T) {
	out := capturePrintln(t)
	stubInputs(t, []string{"Ada", "ada@example.com"}, "secret123")

	auth := &fakeAuth{createRes: session.Result{Err: &gateway.Error{Code: 409, Type: "user_already_exists", Message: "A user with the same email already exists."}}}
	a := newTestApp(auth)

	require.Error(t, a.Register(context.Background()))
	assert.Contains(t, strings.Join(*out, "\n"), "A user with the same email already exists.")
	assert.Contains(t, strings.Join(*out, "\n"), "Please try again.")
}

func TestLogin_Success(t *testing.T) {
	out := capturePrintln(t)
	stubInputs(t, []string{"ada@example.com"}, "pw")

	auth := &fakeAuth{state: session.State{Status: session.StatusAnonymous}, loginRes: session.Result{Success: true}}
	a := newTestApp(auth)

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, "ada@example.com", auth.LastEmail)
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, strings.Join(*out, "\n"), "Logged in as Ada")
}

func TestLogin_FailureIsGeneric(t *testing.T) {
	out := capturePrintln(t)
	stubInputs(t, []string{"ada@example.com"}, "bad")

	auth := &fakeAuth{state: session.State{Status: session.StatusAnonymous}}
	a := newTestApp(auth)

	require.ErrorIs(t, a.Login(context.Background()), errFailed)
	assert.Equal(t, []string{"Login failed. Please try again."}, *out)
}

func TestLogin_AlreadyLoggedIn(t *testing.T) {
	capturePrintln(t)
	auth := &fakeAuth{state: signedIn("u1", "Ada")}
	a := newTestApp(auth)

	require.ErrorIs(t, a.Login(context.Background()), errAlreadyLoggedIn)
	assert.Empty(t, auth.LastEmail)
}

func TestLogout(t *testing.T) {
	t.Run("clears session", func(t *testing.T) {
		out := capturePrintln(t)
		auth := &fakeAuth{state: signedIn("u1", "Ada"), logoutClear: true}
		a := newTestApp(auth)

		require.NoError(t, a.Logout(context.Background()))
		assert.False(t, a.isLoggedIn())
		assert.Equal(t, []string{"Logged out."}, *out)
	})

	t.Run("server unreachable keeps session", func(t *testing.T) {
		capturePrintln(t)
		auth := &fakeAuth{state: signedIn("u1", "Ada")}
		a := newTestApp(auth)

		require.ErrorIs(t, a.Logout(context.Background()), errFailed)
		assert.True(t, a.isLoggedIn())
		assert.Equal(t, 1, auth.logoutCalls)
	})

	t.Run("not logged in", func(t *testing.T) {
		capturePrintln(t)
		auth := &fakeAuth{state: session.State{Status: session.StatusAnonymous}}
		a := newTestApp(auth)

		require.ErrorIs(t, a.Logout(context.Background()), errNotLoggedIn)
		assert.Zero(t, auth.logoutCalls)
	})
}

func TestWhoAmI(t *testing.T) {
	out := capturePrintln(t)
	a := newTestApp(&fakeAuth{state: signedIn("u1", "Ada")})

	require.NoError(t, a.WhoAmI(context.Background()))
	assert.Equal(t, []string{"Ada <ada@example.com> id=u1 reputation=12"}, *out)
}
