// Package tui implements the interactive panel: the current catalog page,
// pagination, search, and the notifications overlay, all driven by the
// session engine.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/refka/mediatray/internal/domain"
	"github.com/refka/mediatray/internal/engine"
)

// refreshInterval drives the periodic re-render so background feed events
// become visible without a keypress.
const refreshInterval = time.Second

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	badgeStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	likedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the bubbletea model of the panel.
type Model struct {
	eng *engine.Engine

	page   domain.Page
	cursor int

	searchMode    bool
	searchInput   textinput.Model
	showNotifs    bool
	notifCursor   int
	status        string
	categoryIndex int

	width  int
	height int
}

// NewModel creates a panel model over a started engine.
func NewModel(eng *engine.Engine) Model {
	input := textinput.New()
	input.Placeholder = "search title or description"
	input.CharLimit = 80

	m := Model{
		eng:         eng,
		searchInput: input,
	}
	m.refresh()
	return m
}

// Init starts the refresh ticker.
func (m Model) Init() tea.Cmd {
	return tick()
}

// refresh re-derives the visible page and clamps the cursor.
func (m *Model) refresh() {
	m.page = m.eng.CurrentPage()
	if m.cursor >= len(m.page.Items) {
		m.cursor = len(m.page.Items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selected returns the item under the cursor.
func (m *Model) selected() (domain.CatalogItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.page.Items) {
		return domain.CatalogItem{}, false
	}
	return m.page.Items[m.cursor], true
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.refresh()
		return m, tick()

	case tea.KeyMsg:
		if m.searchMode {
			return m.updateSearch(msg)
		}
		if m.showNotifs {
			return m.updateNotifications(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

// updateSearch handles keys while the search input is focused.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchMode = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.eng.SetQuery("")
		m.refresh()
		return m, nil
	case tea.KeyEnter:
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.eng.SetQuery(m.searchInput.Value())
	m.refresh()
	return m, cmd
}

// updateNotifications handles keys while the overlay is open.
func (m Model) updateNotifications(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.eng.Notifications()
	switch msg.String() {
	case "esc", "N", "q":
		m.showNotifs = false
	case "j", "down":
		if m.notifCursor < len(list)-1 {
			m.notifCursor++
		}
	case "k", "up":
		if m.notifCursor > 0 {
			m.notifCursor--
		}
	case "r":
		m.eng.MarkAllRead()
	case "enter":
		if m.notifCursor < len(list) {
			n := list[m.notifCursor]
			if m.eng.OpenNotification(n.ID) {
				m.status = fmt.Sprintf("Playing %q", n.Title)
				m.showNotifs = false
				m.refresh()
			} else {
				m.status = "Item is no longer in the library"
			}
		}
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// updateBrowse handles keys in the main browse view.
func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.page.Items)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "l", "right":
		m.eng.NextPage()
		m.cursor = 0
		m.refresh()
	case "h", "left":
		m.eng.PrevPage()
		m.cursor = 0
		m.refresh()
	case "/":
		m.searchMode = true
		m.searchInput.Focus()
	case "c":
		m.cycleCategory()
	case "s":
		m.cycleSort()
	case "enter":
		if it, ok := m.selected(); ok {
			m.eng.Play(it.ID)
			m.status = fmt.Sprintf("Playing %q", it.Title)
			m.refresh()
		}
	case "L":
		if it, ok := m.selected(); ok {
			if liked, ok := m.eng.ToggleLike(it.ID); ok {
				if liked {
					m.status = fmt.Sprintf("Liked %q", it.Title)
				} else {
					m.status = fmt.Sprintf("Unliked %q", it.Title)
				}
			}
			m.refresh()
		}
	case "f":
		if it, ok := m.selected(); ok {
			if favorited, err := m.eng.ToggleFavorite(it.ID); err == nil {
				if favorited {
					m.status = fmt.Sprintf("Favorited %q", it.Title)
				} else {
					m.status = fmt.Sprintf("Unfavorited %q", it.Title)
				}
			} else {
				m.status = err.Error()
			}
			m.refresh()
		}
	case "N":
		m.showNotifs = true
		m.notifCursor = 0
	}
	return m, nil
}

// cycleCategory advances to the next category filter.
func (m *Model) cycleCategory() {
	categories := domain.Categories()
	m.categoryIndex = (m.categoryIndex + 1) % len(categories)
	m.eng.SetCategory(categories[m.categoryIndex])
	m.cursor = 0
	m.refresh()
}

// cycleSort rotates recency desc -> recency asc -> popularity desc.
func (m *Model) cycleSort() {
	current := m.eng.Sort()
	var next domain.SortOptions
	switch {
	case current.Field == domain.SortByRecency && current.Order == domain.SortOrderDesc:
		next = domain.SortOptions{Field: domain.SortByRecency, Order: domain.SortOrderAsc}
	case current.Field == domain.SortByRecency:
		next = domain.SortOptions{Field: domain.SortByPopularity, Order: domain.SortOrderDesc}
	default:
		next = domain.DefaultSortOptions()
	}
	m.eng.SetSort(next)
	m.cursor = 0
	m.refresh()
}

// View renders the panel.
func (m Model) View() string {
	if m.showNotifs {
		return m.viewNotifications()
	}

	var b strings.Builder

	header := fmt.Sprintf("mediatray  [%s / %s]", m.eng.Section(), m.eng.Category())
	b.WriteString(titleStyle.Render(header))
	if unread := m.eng.UnreadCount(); unread > 0 {
		b.WriteString("  " + badgeStyle.Render(fmt.Sprintf("(%d new)", unread)))
	}
	b.WriteString("\n")

	if m.searchMode || m.searchInput.Value() != "" {
		b.WriteString(m.searchInput.View() + "\n")
	}
	b.WriteString("\n")

	if len(m.page.Items) == 0 {
		b.WriteString(dimStyle.Render("No items") + "\n")
	}
	for i, it := range m.page.Items {
		line := fmt.Sprintf("%-40s %-12s %6d views %5d likes",
			truncateTitle(it.Title, 40), it.Category, it.Views, it.LikesCount)
		if it.Liked {
			line += likedStyle.Render(" ♥")
		}
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("\n")
	if m.page.TotalPages > 1 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("Page %d/%d", m.page.Number, m.page.TotalPages)) + "\n")
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}
	b.WriteString(dimStyle.Render("j/k move · h/l page · enter play · L like · f favorite · / search · c category · s sort · N notifications · q quit"))
	return b.String()
}

// viewNotifications renders the overlay.
func (m Model) viewNotifications() string {
	var b strings.Builder

	list := m.eng.Notifications()
	b.WriteString(titleStyle.Render(fmt.Sprintf("Notifications (%d unread)", m.eng.UnreadCount())) + "\n\n")

	if len(list) == 0 {
		b.WriteString(dimStyle.Render("No notifications") + "\n")
	}
	for i, n := range list {
		marker := "  "
		if !n.Read {
			marker = badgeStyle.Render("! ")
		}
		line := fmt.Sprintf("%s%s  %s", marker, n.CreatedAt, n.Message)
		if i == m.notifCursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("j/k move · enter open · r mark all read · esc back · ctrl+c quit"))
	return b.String()
}

// truncateTitle cuts on rune boundaries so a multibyte title never renders
// as invalid UTF-8.
func truncateTitle(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width < 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// Run starts the panel program and blocks until it exits.
func Run(eng *engine.Engine) error {
	program := tea.NewProgram(NewModel(eng), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
