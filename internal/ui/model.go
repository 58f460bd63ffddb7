package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fishit/fishit/internal/authclient"
	"github.com/fishit/fishit/internal/hubeau"
	"github.com/fishit/fishit/internal/kvcache"
	"github.com/fishit/fishit/internal/location"
	"github.com/fishit/fishit/internal/models"
)

// AppState represents the current state of the application
type AppState int

const (
	StateLogin    AppState = iota // Authenticate or create an account
	StateSearch                   // Enter a department code
	StateLoading                  // Fetching the department spot feed
	StateSpotList                 // Browse the department's fishing spots
	StateDetail                   // Station detail with species and distance
	StateProfile                  // Account details and management
	StateError                    // Error state
)

// loginField tracks which credential input is focused
type loginField int

const (
	fieldName loginField = iota // register mode only
	fieldEmail
	fieldPassword
)

// Model represents the application's state
type Model struct {
	state  AppState
	width  int
	height int
	err    error

	// Login / register
	registering   bool
	nameInput     textinput.Model
	emailInput    textinput.Model
	passwordInput textinput.Model
	focusedField  loginField
	loginErr      error
	loginNotice   string
	loggingIn     bool

	// Profile
	profile          *authclient.User
	profileLoading   bool
	profileSaving    bool
	profileEditing   bool
	profileErr       error
	profileNameInput textinput.Model
	profileEmailInp  textinput.Model
	profileField     loginField

	// Department search
	searchInput textinput.Model
	searchCode  string

	// Spots
	department *models.DepartmentData
	spotList   list.Model

	// Station detail screen
	detail detailState

	// Dependencies
	cache     *kvcache.Cache
	fish      hubeau.StationFetcher
	locations *location.Provider
	auth      *authclient.Client

	spinner spinner.Model
}

// NewModel creates a new application model. The auth client may be nil
// when no account backend is configured, in which case login is skipped.
func NewModel(cache *kvcache.Cache, fetcher hubeau.StationFetcher, locations *location.Provider, auth *authclient.Client) Model {
	name := textinput.New()
	name.Placeholder = "nom"
	name.CharLimit = 100
	name.Width = 40

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 100
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "mot de passe"
	password.CharLimit = 100
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	search := textinput.New()
	search.Placeholder = "Code département (ex: 33)..."
	search.CharLimit = 3
	search.Width = 40

	profileName := textinput.New()
	profileName.Placeholder = "nom"
	profileName.CharLimit = 100
	profileName.Width = 40

	profileEmail := textinput.New()
	profileEmail.Placeholder = "email"
	profileEmail.CharLimit = 100
	profileEmail.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	state := StateLogin
	if auth == nil || auth.IsAuthenticated() {
		state = StateSearch
		search.Focus()
	}

	return Model{
		state:            state,
		focusedField:     fieldEmail,
		nameInput:        name,
		emailInput:       email,
		passwordInput:    password,
		searchInput:      search,
		profileNameInput: profileName,
		profileEmailInp:  profileEmail,
		cache:            cache,
		fish:             fetcher,
		locations:        locations,
		auth:             auth,
		spinner:          sp,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Handle window size
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		if m.state == StateSpotList {
			m.spotList.SetSize(msg.Width-4, msg.Height-10)
		}
		return m, nil
	}

	// Handle custom messages
	switch msg := msg.(type) {
	case errMsg:
		m.err = msg.err
		m.state = StateError
		return m, nil

	case loginResultMsg:
		m.loggingIn = false
		if msg.err != nil {
			m.loginErr = msg.err
			return m, nil
		}
		m.loginNotice = ""
		m.state = StateSearch
		m.searchInput.Focus()
		return m, textinput.Blink

	case registerResultMsg:
		m.loggingIn = false
		if msg.err != nil {
			m.loginErr = msg.err
			return m, nil
		}
		// The backend only confirms creation; the user logs in next
		m.registering = false
		m.loginNotice = "Compte créé, connectez-vous"
		m.passwordInput.SetValue("")
		m.focusToLoginField(fieldEmail)
		return m, textinput.Blink

	case profileFetchedMsg:
		m.profileLoading = false
		if msg.err != nil {
			if errors.Is(msg.err, authclient.ErrUnauthorized) {
				return m.backToLogin("Session expirée, reconnectez-vous"), textinput.Blink
			}
			m.profileErr = msg.err
			return m, nil
		}
		m.profile = msg.user
		m.profileNameInput.SetValue(msg.user.Name)
		m.profileEmailInp.SetValue(msg.user.Email)
		return m, nil

	case profileUpdatedMsg:
		m.profileSaving = false
		if msg.err != nil {
			m.profileErr = msg.err
			return m, nil
		}
		m.profile = msg.user
		m.profileEditing = false
		return m, nil

	case accountDeletedMsg:
		if msg.err != nil {
			m.profileErr = msg.err
			return m, nil
		}
		return m.backToLogin("Compte supprimé"), textinput.Blink

	case departmentFetchedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("chargement du département %s: %w", m.searchCode, msg.err)
			m.state = StateError
			return m, nil
		}
		if len(msg.dept.Spots) == 0 {
			m.err = fmt.Errorf("aucun spot trouvé dans le département %s", m.searchCode)
			m.state = StateError
			return m, nil
		}
		m.department = msg.dept
		m.spotList = createSpotList(msg.dept, m.width-4, m.height-10)
		m.state = StateSpotList
		return m, nil

	case stationFetchedMsg:
		m.handleStationFetched(msg)
		return m, nil

	case locationResolvedMsg:
		m.handleLocationResolved(msg)
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Handle keyboard input
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// Global keys
		if keyMsg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.state {
		case StateLogin:
			return m.handleLoginInput(keyMsg)

		case StateSearch:
			if keyMsg.String() == "q" && m.searchInput.Value() == "" {
				return m, tea.Quit
			}
			if keyMsg.Type == tea.KeyTab && m.auth != nil && m.auth.IsAuthenticated() {
				m.state = StateProfile
				m.profileLoading = true
				m.profileErr = nil
				m.profileEditing = false
				return m, fetchProfile(m.auth)
			}
			return m.handleSearchInput(keyMsg)

		case StateSpotList:
			return m.handleSpotList(msg)

		case StateDetail:
			return m.handleDetailKeys(keyMsg)

		case StateProfile:
			return m.handleProfileKeys(keyMsg)

		case StateError:
			if keyMsg.String() == "q" {
				return m, tea.Quit
			}
			// Any other key returns to search
			m.state = StateSearch
			m.err = nil
			m.searchInput.Focus()
			return m, textinput.Blink
		}
	}

	switch m.state {
	case StateLogin:
		switch m.focusedField {
		case fieldName:
			m.nameInput, cmd = m.nameInput.Update(msg)
		case fieldEmail:
			m.emailInput, cmd = m.emailInput.Update(msg)
		case fieldPassword:
			m.passwordInput, cmd = m.passwordInput.Update(msg)
		}
	case StateProfile:
		if m.profileEditing {
			if m.profileField == fieldName {
				m.profileNameInput, cmd = m.profileNameInput.Update(msg)
			} else {
				m.profileEmailInp, cmd = m.profileEmailInp.Update(msg)
			}
		}
	case StateSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case StateSpotList:
		m.spotList, cmd = m.spotList.Update(msg)
	}

	return m, cmd
}

// handleLoginInput handles keyboard input on the credential form, in
// both login and register mode
func (m Model) handleLoginInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.loginErr != nil && msg.Type != tea.KeyEnter {
		m.loginErr = nil
	}

	if msg.String() == "ctrl+r" {
		m.registering = !m.registering
		m.loginErr = nil
		m.loginNotice = ""
		if m.registering {
			m.focusToLoginField(fieldName)
		} else {
			m.focusToLoginField(fieldEmail)
		}
		return m, textinput.Blink
	}

	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		m.focusToLoginField(m.nextLoginField(1))
		return m, textinput.Blink

	case tea.KeyShiftTab, tea.KeyUp:
		m.focusToLoginField(m.nextLoginField(-1))
		return m, textinput.Blink

	case tea.KeyEnter:
		if m.loggingIn {
			return m, nil
		}
		name := strings.TrimSpace(m.nameInput.Value())
		email := strings.TrimSpace(m.emailInput.Value())
		password := m.passwordInput.Value()
		if email == "" || password == "" || (m.registering && name == "") {
			return m, nil
		}
		m.loggingIn = true
		m.loginErr = nil
		m.loginNotice = ""
		if m.registering {
			return m, attemptRegister(m.auth, name, email, password)
		}
		return m, attemptLogin(m.auth, email, password)
	}

	switch m.focusedField {
	case fieldName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case fieldEmail:
		m.emailInput, cmd = m.emailInput.Update(msg)
	case fieldPassword:
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

// nextLoginField cycles focus through the visible credential inputs.
// The name field only exists in register mode.
func (m *Model) nextLoginField(dir int) loginField {
	fields := []loginField{fieldEmail, fieldPassword}
	if m.registering {
		fields = []loginField{fieldName, fieldEmail, fieldPassword}
	}
	cur := 0
	for i, f := range fields {
		if f == m.focusedField {
			cur = i
			break
		}
	}
	return fields[(cur+dir+len(fields))%len(fields)]
}

// focusToLoginField moves focus among the credential inputs.
func (m *Model) focusToLoginField(f loginField) {
	m.focusedField = f
	m.nameInput.Blur()
	m.emailInput.Blur()
	m.passwordInput.Blur()
	switch f {
	case fieldName:
		m.nameInput.Focus()
	case fieldEmail:
		m.emailInput.Focus()
	case fieldPassword:
		m.passwordInput.Focus()
	}
}

// backToLogin clears account state and returns to the credential form
// with an informational notice.
func (m Model) backToLogin(notice string) Model {
	m.profile = nil
	m.profileEditing = false
	m.profileErr = nil
	m.registering = false
	m.loginErr = nil
	m.loginNotice = notice
	m.passwordInput.SetValue("")
	m.state = StateLogin
	m.focusToLoginField(fieldEmail)
	return m
}

// handleProfileKeys handles input on the account screen
func (m Model) handleProfileKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.profileEditing {
		switch msg.Type {
		case tea.KeyEsc:
			m.profileEditing = false
			m.profileErr = nil
			if m.profile != nil {
				m.profileNameInput.SetValue(m.profile.Name)
				m.profileEmailInp.SetValue(m.profile.Email)
			}
			return m, nil

		case tea.KeyTab, tea.KeyShiftTab, tea.KeyDown, tea.KeyUp:
			m.profileNameInput.Blur()
			m.profileEmailInp.Blur()
			if m.profileField == fieldName {
				m.profileField = fieldEmail
				m.profileEmailInp.Focus()
			} else {
				m.profileField = fieldName
				m.profileNameInput.Focus()
			}
			return m, textinput.Blink

		case tea.KeyEnter:
			if m.profileSaving {
				return m, nil
			}
			name := strings.TrimSpace(m.profileNameInput.Value())
			email := strings.TrimSpace(m.profileEmailInp.Value())
			if name == "" || email == "" {
				return m, nil
			}
			m.profileSaving = true
			m.profileErr = nil
			return m, saveProfile(m.auth, authclient.UpdateData{Name: name, Email: email})
		}

		if m.profileField == fieldName {
			m.profileNameInput, cmd = m.profileNameInput.Update(msg)
		} else {
			m.profileEmailInp, cmd = m.profileEmailInp.Update(msg)
		}
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "e":
		if m.profile == nil {
			return m, nil
		}
		m.profileEditing = true
		m.profileField = fieldName
		m.profileEmailInp.Blur()
		m.profileNameInput.Focus()
		return m, textinput.Blink
	case "ctrl+l":
		m.auth.Logout()
		return m.backToLogin("Déconnecté"), textinput.Blink
	case "ctrl+x":
		return m, deleteAccount(m.auth)
	case "esc", "b":
		m.state = StateSearch
		m.searchInput.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

// handleSearchInput handles keyboard input in search state
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.err != nil && msg.Type != tea.KeyEnter {
		m.err = nil
	}

	if msg.Type == tea.KeyEnter {
		code := strings.TrimSpace(m.searchInput.Value())
		if code == "" {
			return m, nil
		}
		m.searchCode = code
		m.err = nil
		m.state = StateLoading
		return m, fetchDepartment(m.fish, code)
	}

	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleSpotList handles input while browsing the spot list
func (m Model) handleSpotList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// While the list filter is active, every key belongs to it
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.spotList.FilterState() != list.Filtering {
		if keyMsg.Type == tea.KeyEnter {
			if item, ok := m.spotList.SelectedItem().(spotItem); ok {
				m.state = StateDetail
				return m, m.startDetail(item.spot.OperationCode, item.spot.Name)
			}
		}
		if keyMsg.String() == "s" || keyMsg.Type == tea.KeyEsc {
			m.state = StateSearch
			m.searchInput.Focus()
			return m, textinput.Blink
		}
	}

	m.spotList, cmd = m.spotList.Update(msg)
	return m, cmd
}

// handleDetailKeys handles input on the station detail screen
func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r":
		if cmd := m.retryStation(); cmd != nil {
			return m, cmd
		}
		return m, nil
	case "esc", "b":
		// Dropping the operation code routes any in-flight result to nowhere
		m.detail = detailState{}
		m.state = StateSpotList
		return m, nil
	}
	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Chargement..."
	}

	switch m.state {
	case StateLogin:
		return m.viewLogin()
	case StateSearch:
		return m.viewSearch()
	case StateLoading:
		return m.viewLoading()
	case StateSpotList:
		return m.viewSpotList()
	case StateDetail:
		return m.viewDetail()
	case StateProfile:
		return m.viewProfile()
	case StateError:
		return m.viewError()
	}

	return ""
}

// viewLogin renders the credential form, in login or register mode
func (m Model) viewLogin() string {
	title := titleStyle.Render("🎣 FishIt")

	subtitle := mutedStyle.Render("Connexion")
	fields := []string{m.emailInput.View(), "", m.passwordInput.View()}
	action := "Se connecter"
	toggle := "Ctrl+R: Créer un compte"
	if m.registering {
		subtitle = mutedStyle.Render("Inscription")
		fields = []string{m.nameInput.View(), "", m.emailInput.View(), "", m.passwordInput.View()}
		action = "S'inscrire"
		toggle = "Ctrl+R: Déjà un compte"
	}

	form := inputBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, fields...))

	var status string
	if m.loggingIn {
		status = fmt.Sprintf("%s Veuillez patienter...", m.spinner.View())
	} else if m.loginErr != nil {
		status = errorStyle.Render("✗ " + m.loginErr.Error())
	} else if m.loginNotice != "" {
		status = successStyle.Render("✓ " + m.loginNotice)
	}

	help := helpStyle.Render(fmt.Sprintf("Tab: Champ suivant • Entrée: %s • %s • Ctrl+C: Quitter", action, toggle))

	sections := []string{title, subtitle, "", form}
	if status != "" {
		sections = append(sections, "", status)
	}
	sections = append(sections, "", help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewProfile renders the account screen
func (m Model) viewProfile() string {
	title := titleStyle.Render("👤 Profil")

	var sections []string
	sections = append(sections, title, "")

	switch {
	case m.profileLoading:
		sections = append(sections, fmt.Sprintf("%s Chargement du profil...", m.spinner.View()))

	case m.profileEditing:
		form := inputBoxStyle.Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.profileNameInput.View(),
			"",
			m.profileEmailInp.View(),
		))
		sections = append(sections, form)
		if m.profileSaving {
			sections = append(sections, "", fmt.Sprintf("%s Enregistrement...", m.spinner.View()))
		}

	case m.profile != nil:
		sections = append(sections,
			labelStyle.Render("Nom: ")+valueStyle.Render(m.profile.Name),
			labelStyle.Render("Email: ")+valueStyle.Render(m.profile.Email),
		)
	}

	if m.profileErr != nil {
		sections = append(sections, "", errorStyle.Render("✗ "+m.profileErr.Error()))
	}

	help := helpStyle.Render("E: Modifier • Ctrl+L: Déconnexion • Ctrl+X: Supprimer le compte • Échap: Retour")
	if m.profileEditing {
		help = helpStyle.Render("Tab: Champ suivant • Entrée: Enregistrer • Échap: Annuler")
	}
	sections = append(sections, "", help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewSearch renders the department search view
func (m Model) viewSearch() string {
	title := titleStyle.Render("🎣 FishIt")
	subtitle := mutedStyle.Render("Spots de pêche par département")

	searchBox := inputBoxStyle.Render(m.searchInput.View())

	var errorMsg string
	if m.err != nil {
		errorMsg = errorStyle.Padding(0, 2).Render("✗ " + m.err.Error())
	}

	examples := mutedStyle.Render("Exemples: 33 (Gironde) | 69 (Rhône) | 44 (Loire-Atlantique)")
	helpText := "Entrée: Rechercher • Ctrl+C: Quitter"
	if m.auth != nil && m.auth.IsAuthenticated() {
		helpText = "Entrée: Rechercher • Tab: Profil • Ctrl+C: Quitter"
	}
	help := helpStyle.Render(helpText)

	sections := []string{title, subtitle, "", searchBox}
	if errorMsg != "" {
		sections = append(sections, "", errorMsg)
	}
	sections = append(sections, "", examples, "", help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewLoading renders the department fetch progress
func (m Model) viewLoading() string {
	return fmt.Sprintf("%s Chargement des spots du département %s...", m.spinner.View(), m.searchCode)
}

// viewSpotList renders the department's spot list
func (m Model) viewSpotList() string {
	title := titleStyle.Render("🎣 Spots de pêche")
	subtitle := mutedStyle.Render(fmt.Sprintf("%d spots dans le département %s", len(m.department.Spots), m.searchCode))

	help := helpStyle.Render("↑/↓: Naviguer • Entrée: Détails • S/Échap: Recherche • Ctrl+C: Quitter")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		subtitle,
		"",
		m.spotList.View(),
		"",
		help,
	)
}

// viewDetail renders the station detail screen
func (m Model) viewDetail() string {
	var sections []string

	header := titleStyle.Padding(0, 1).MarginBottom(1).Render("🎣 " + m.detail.spotName)
	sections = append(sections, header)

	if m.detail.loadingStation {
		sections = append(sections, fmt.Sprintf("%s Chargement de la station...", m.spinner.View()))
	} else if m.detail.stationErr != nil {
		sections = append(sections,
			errorStyle.Render("✗ Station indisponible: "+m.detail.stationErr.Error()),
			mutedStyle.Render("R: Réessayer"),
		)
	} else if m.detail.station != nil {
		sections = append(sections, m.renderStation(m.detail.station))
	}

	sections = append(sections, m.renderDistance())

	if m.detail.station != nil && len(m.detail.station.SpeciesFound) > 0 {
		sections = append(sections,
			sectionHeaderStyle.Render("🐟 ESPÈCES OBSERVÉES"),
			m.renderSpecies(m.detail.station.SpeciesFound),
		)
	}

	help := helpStyle.Render("Échap/B: Retour • R: Réessayer • Q: Quitter")
	sections = append(sections, "", help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderStation(s *models.StationDetail) string {
	var lines []string
	lines = append(lines, labelStyle.Render("Station: ")+valueStyle.Render(s.StationLabel))
	lines = append(lines, labelStyle.Render("Commune: ")+valueStyle.Render(s.CommuneLabel))
	lines = append(lines, labelStyle.Render("Département: ")+valueStyle.Render(s.DepartementLabel))
	if s.DepthMeters > 0 {
		lines = append(lines, labelStyle.Render("Profondeur: ")+valueStyle.Render(fmt.Sprintf("%.1f m", s.DepthMeters)))
	}
	lines = append(lines, labelStyle.Render("Coordonnées: ")+valueStyle.Render(
		fmt.Sprintf("%.5f, %.5f", s.Coordinates.Latitude, s.Coordinates.Longitude)))
	lines = append(lines, mutedStyle.Render("Mis à jour "+freshness(s)))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderDistance shows the route estimate, or a placeholder when the
// user's position could not be resolved.
func (m Model) renderDistance() string {
	if m.detail.loadingLocation {
		return mutedStyle.Render("📍 Localisation en cours...")
	}
	if m.detail.distance != nil {
		from := m.detail.userLoc.CityLabel
		return successStyle.Render(fmt.Sprintf("📍 ~%.0f km depuis %s (%.0f km à vol d'oiseau)",
			m.detail.distance.EstimatedRouteKm, from, m.detail.distance.StraightLineKm))
	}
	return mutedStyle.Render("📍 Position indisponible")
}

func (m Model) renderSpecies(species []models.Species) string {
	var lines []string
	for _, sp := range species {
		lines = append(lines, fmt.Sprintf("  %s %s",
			valueStyle.Render(sp.Name),
			mutedStyle.Render(fmt.Sprintf("(%d)", sp.CountFound))))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// viewError renders the error view
func (m Model) viewError() string {
	title := errorStyle.Render("✗ Erreur")

	errorMsg := "Une erreur inconnue est survenue"
	if m.err != nil {
		errorMsg = m.err.Error()
	}

	help := helpStyle.Render("Appuyez sur une touche pour revenir à la recherche • Q: Quitter")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		errorMsg,
		"",
		help,
	)
}

// freshness reports the age of the cached station for the status line.
func freshness(s *models.StationDetail) string {
	age := time.Since(time.UnixMilli(s.FetchedAt))
	if age < time.Minute {
		return "à l'instant"
	}
	return fmt.Sprintf("il y a %d min", int(age.Minutes()))
}
