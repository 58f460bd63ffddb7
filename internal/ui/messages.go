package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fishit/fishit/internal/authclient"
	"github.com/fishit/fishit/internal/hubeau"
	"github.com/fishit/fishit/internal/location"
	"github.com/fishit/fishit/internal/models"
)

// Message types for async operations

// departmentFetchedMsg is sent when a department's spot feed is fetched.
type departmentFetchedMsg struct {
	dept *models.DepartmentData
	err  error
}

// stationFetchedMsg is sent when a station detail fetch settles. The
// operation code routes the result to the screen instance that asked for
// it; a stale result for an abandoned screen is discarded.
type stationFetchedMsg struct {
	operationCode string
	detail        *models.StationDetail
	err           error
}

// locationResolvedMsg is sent when user-location acquisition settles.
type locationResolvedMsg struct {
	location *models.UserLocation
	err      error
}

// loginResultMsg is sent when a login attempt settles.
type loginResultMsg struct {
	err error
}

// registerResultMsg is sent when an account creation attempt settles.
type registerResultMsg struct {
	err error
}

// profileFetchedMsg carries the authenticated user's account data.
type profileFetchedMsg struct {
	user *authclient.User
	err  error
}

// profileUpdatedMsg is sent when an account update settles.
type profileUpdatedMsg struct {
	user *authclient.User
	err  error
}

// accountDeletedMsg is sent when account deletion settles.
type accountDeletedMsg struct {
	err error
}

// errMsg is a message type for errors
type errMsg struct {
	err error
}

// fetchDepartment fetches the consolidated department feed in the background.
func fetchDepartment(fetcher hubeau.StationFetcher, code string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		dept, err := fetcher.FetchDepartmentSpots(ctx, code)
		return departmentFetchedMsg{dept: dept, err: err}
	}
}

// fetchStation fetches one station detail in the background.
func fetchStation(fetcher hubeau.StationFetcher, operationCode string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		detail, err := fetcher.FetchStationDetail(ctx, operationCode)
		return stationFetchedMsg{operationCode: operationCode, detail: detail, err: err}
	}
}

// acquireLocation resolves the user's position in the background.
func acquireLocation(provider *location.Provider) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		loc, err := provider.Acquire(ctx)
		return locationResolvedMsg{location: loc, err: err}
	}
}

// attemptLogin logs in against the credential backend in the background.
func attemptLogin(client *authclient.Client, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return loginResultMsg{err: client.Login(ctx, email, password)}
	}
}

// attemptRegister creates an account in the background.
func attemptRegister(client *authclient.Client, name, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return registerResultMsg{err: client.Register(ctx, name, email, password)}
	}
}

// fetchProfile loads the authenticated user's account data.
func fetchProfile(client *authclient.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		user, err := client.Me(ctx)
		return profileFetchedMsg{user: user, err: err}
	}
}

// saveProfile applies account changes in the background.
func saveProfile(client *authclient.Client, updates authclient.UpdateData) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		user, err := client.Update(ctx, updates)
		return profileUpdatedMsg{user: user, err: err}
	}
}

// deleteAccount removes the account and its stored credential.
func deleteAccount(client *authclient.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return accountDeletedMsg{err: client.Delete(ctx)}
	}
}
