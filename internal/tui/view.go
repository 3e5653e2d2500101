package tui

import (
	"fmt"
	"strings"

	"github.com/aanand-mishra/student-registration/internal/roster"
	"github.com/aanand-mishra/student-registration/internal/route"
	"github.com/aanand-mishra/student-registration/internal/types"
)

var labels = map[string]string{
	types.FieldFullName: "Full Name",
	types.FieldEmail:    "Email",
	types.FieldPhone:    "Phone Number",
	types.FieldDOB:      "Date of Birth (YYYY-MM-DD)",
	types.FieldGender:   "Gender",
	types.FieldAddress:  "Address",
	types.FieldCourse:   "Course Enrolled",
	types.FieldPassword: "Password",
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	switch m.route {
	case route.Register:
		m.viewRegister(&b)
	case route.Login:
		m.viewLogin(&b)
	case route.List:
		m.viewList(&b)
	}

	if m.status != "" {
		fmt.Fprintf(&b, "\n! %s\n", m.status)
	}
	if m.busy {
		b.WriteString("\nworking...\n")
	}
	if m.alert != "" {
		fmt.Fprintf(&b, "\n┌ %s ┐\n  press any key\n", m.alert)
	}
	if m.toast != "" {
		fmt.Fprintf(&b, "\n✔ %s\n", m.toast)
	}
	return b.String()
}

func cursor(focused bool) string {
	if focused {
		return "> "
	}
	return "  "
}

func (m Model) viewRegister(b *strings.Builder) {
	b.WriteString("Student Registration Form\n\n")

	values := m.register.Values()
	errs := m.register.Errors()

	for i, field := range types.Fields {
		v, _ := values.Get(field)
		switch {
		case field == types.FieldPassword && !m.register.ShowPassword():
			v = strings.Repeat("*", len([]rune(v)))
		case options(field) != nil:
			v = "‹ " + v + " ›"
		}
		fmt.Fprintf(b, "%s%-27s %s\n", cursor(i == m.regFocus), labels[field]+":", v)
		if msg := errs[field]; msg != "" {
			fmt.Fprintf(b, "  %-27s %s\n", "", msg)
		}
	}

	b.WriteString("\ntab/shift+tab move · ←/→ choose · ctrl+p show password · enter submit\n")
	b.WriteString("Already signed up? ctrl+l to log in · ctrl+c quit\n")
}

func (m Model) viewLogin(b *strings.Builder) {
	b.WriteString("Login\n\n")

	creds := m.login.Credentials()
	fmt.Fprintf(b, "%sEmail:    %s\n", cursor(m.loginFocus == 0), creds.Email)
	fmt.Fprintf(b, "%sPassword: %s\n", cursor(m.loginFocus == 1), strings.Repeat("*", len([]rune(creds.Password))))

	if msg := m.login.Message(); msg != "" {
		fmt.Fprintf(b, "\n%s\n", msg)
	}

	b.WriteString("\ntab move · enter log in · ctrl+r sign up · ctrl+c quit\n")
}

func (m Model) viewList(b *strings.Builder) {
	if m.roster.Loading() {
		b.WriteString("Loading students...\n")
		return
	}

	b.WriteString("Student List\n\n")

	students := m.roster.Students()
	fmt.Fprintf(b, "  %-8s %-18s %-22s %-15s %-10s %-6s %-16s %s\n",
		"ID", "Full Name", "Email", "Phone", "DOB", "Gender", "Address", "Course")
	for i, s := range students {
		fmt.Fprintf(b, "%s%-8s %-18s %-22s %-15s %-10s %-6s %-16s %s\n",
			cursor(i == m.selected),
			clip(string(s.ID), 8), clip(s.FullName, 18), clip(s.Email, 22),
			clip(s.Phone, 15), clip(s.DOB, 10), clip(s.Gender, 6),
			clip(s.Address, 16), s.Course)
	}
	if len(students) == 0 {
		b.WriteString("  (no students)\n")
	}

	if draft, ok := m.roster.Draft(); ok {
		b.WriteString("\nEdit Student\n")
		for i, field := range editFields {
			v, _ := draft.Get(field)
			fmt.Fprintf(b, "%s%-27s %s\n", cursor(i == m.editFocus), labels[field]+":", v)
		}
		b.WriteString("enter save · esc cancel\n")
		return
	}

	if m.pendingDelete != "" {
		fmt.Fprintf(b, "\n%s (y/n)\n", roster.MsgConfirmDelete)
		return
	}

	b.WriteString("\n↑/↓ select · e edit · d delete · r refresh · q quit\n")
}

// clip shortens s to n runes for table cells.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
