package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultServerURL = "http://localhost:3000"

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

type step int

const (
	stepEnteringServer step = iota
	stepEnteringUsername
	stepEnteringEmail
	stepEnteringPassword
	stepRegistering
	stepLoggingIn
	stepVerifying
	stepComplete
)

type model struct {
	step         step
	serverURL    string
	username     string
	email        string
	password     string
	currentInput string
	authToken    string
	userID       string
	message      string
	quitting     bool
}

type registerSuccessMsg struct{ userID string }
type loginSuccessMsg struct{ token string }
type verifySuccessMsg struct{}
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel() model {
	return model{step: stepEnteringServer}
}

func (m model) Init() tea.Cmd {
	return nil
}

func apiClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

func registerUser(serverURL, username, email, password string) tea.Cmd {
	return func() tea.Msg {
		payload := map[string]string{
			"user_name": username,
			"email":     email,
			"password":  password,
		}
		jsonData, _ := json.Marshal(payload)

		resp, err := apiClient().Post(serverURL+"/api/v1/users", "application/json", bytes.NewBuffer(jsonData))
		if err != nil {
			return errMsg{fmt.Errorf("could not reach server at %s: %w", serverURL, err)}
		}
		defer resp.Body.Close()

		var result struct {
			Message string `json:"message"`
			Data    struct {
				ID string `json:"_id"`
			} `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return errMsg{fmt.Errorf("unexpected response from server")}
		}
		if resp.StatusCode != http.StatusOK {
			return errMsg{fmt.Errorf("registration failed: %s", result.Message)}
		}
		return registerSuccessMsg{userID: result.Data.ID}
	}
}

func loginUser(serverURL, username, password string) tea.Cmd {
	return func() tea.Msg {
		payload := map[string]string{
			"user_name": username,
			"password":  password,
		}
		jsonData, _ := json.Marshal(payload)

		resp, err := apiClient().Post(serverURL+"/api/v1/auth/login", "application/json", bytes.NewBuffer(jsonData))
		if err != nil {
			return errMsg{fmt.Errorf("could not reach server: %w", err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return errMsg{fmt.Errorf("login failed with status %d", resp.StatusCode)}
		}

		var result struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil || result.Token == "" {
			return errMsg{fmt.Errorf("login response did not include a token")}
		}
		return loginSuccessMsg{token: result.Token}
	}
}

func verifyToken(serverURL, token string) tea.Cmd {
	return func() tea.Msg {
		req, _ := http.NewRequest(http.MethodGet, serverURL+"/api/v1/users/token", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := apiClient().Do(req)
		if err != nil {
			return errMsg{fmt.Errorf("could not reach server: %w", err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return errMsg{fmt.Errorf("token check failed with status %d", resp.StatusCode)}
		}
		return verifySuccessMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleEnter()
		case tea.KeyBackspace:
			if len(m.currentInput) > 0 {
				m.currentInput = m.currentInput[:len(m.currentInput)-1]
			}
			return m, nil
		case tea.KeyRunes, tea.KeySpace:
			m.currentInput += string(msg.Runes)
			return m, nil
		}

	case registerSuccessMsg:
		m.userID = msg.userID
		m.step = stepLoggingIn
		m.message = "Account created, logging in..."
		return m, loginUser(m.serverURL, m.username, m.password)

	case loginSuccessMsg:
		m.authToken = msg.token
		m.step = stepVerifying
		m.message = "Logged in, verifying token..."
		return m, verifyToken(m.serverURL, m.authToken)

	case verifySuccessMsg:
		m.step = stepComplete
		m.message = ""
		return m, nil

	case errMsg:
		m.message = msg.Error()
		// Drop back to the password prompt so the user can retry
		m.step = stepEnteringPassword
		m.currentInput = ""
		return m, nil
	}

	return m, nil
}

func (m model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.currentInput)
	switch m.step {
	case stepEnteringServer:
		if input == "" {
			input = defaultServerURL
		}
		m.serverURL = strings.TrimRight(input, "/")
		m.step = stepEnteringUsername
	case stepEnteringUsername:
		if input == "" {
			m.message = "username cannot be empty"
			return m, nil
		}
		m.username = input
		m.step = stepEnteringEmail
	case stepEnteringEmail:
		if !strings.Contains(input, "@") {
			m.message = "enter a valid email address"
			return m, nil
		}
		m.email = input
		m.step = stepEnteringPassword
	case stepEnteringPassword:
		if len(input) < 5 {
			m.message = "password must be at least 5 characters"
			return m, nil
		}
		m.password = input
		m.step = stepRegistering
		m.message = "Creating account..."
		m.currentInput = ""
		return m, registerUser(m.serverURL, m.username, m.email, m.password)
	case stepComplete:
		m.quitting = true
		return m, tea.Quit
	}
	m.message = ""
	m.currentInput = ""
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Cat Server - Account Setup"))
	b.WriteString("\n\n")

	switch m.step {
	case stepEnteringServer:
		b.WriteString(promptStyle.Render("Server URL") + fmt.Sprintf(" (enter for %s):\n", defaultServerURL))
		b.WriteString(inputStyle.Render("> " + m.currentInput))
	case stepEnteringUsername:
		b.WriteString(promptStyle.Render("Username:") + "\n")
		b.WriteString(inputStyle.Render("> " + m.currentInput))
	case stepEnteringEmail:
		b.WriteString(promptStyle.Render("Email:") + "\n")
		b.WriteString(inputStyle.Render("> " + m.currentInput))
	case stepEnteringPassword:
		b.WriteString(promptStyle.Render("Password:") + "\n")
		b.WriteString(inputStyle.Render("> " + strings.Repeat("*", len(m.currentInput))))
	case stepRegistering, stepLoggingIn, stepVerifying:
		b.WriteString(m.message)
	case stepComplete:
		b.WriteString(successStyle.Render("Account ready!"))
		b.WriteString(fmt.Sprintf("\n\nUser ID: %s\nToken:   %s\n", m.userID, m.authToken))
		b.WriteString("\nPress enter to exit.")
	}

	if m.message != "" && m.step <= stepEnteringPassword {
		b.WriteString("\n\n" + errorStyle.Render(m.message))
	}

	b.WriteString("\n\n(esc to quit)\n")
	return b.String()
}

func main() {
	if _, err := tea.NewProgram(initialModel()).Run(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}
