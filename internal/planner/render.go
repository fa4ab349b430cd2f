package planner

import (
	"strings"

	"github.com/teemow/weekplanner/internal/week"
)

// RenderUser renders one user's schedule as text, grouped by start day.
func RenderUser(u User) string {
	byDay := groupByDay(u.Events)

	var b strings.Builder
	b.WriteString("User: " + u.ID + "\n")
	for i, day := range week.Days() {
		if i != 0 {
			b.WriteString("\n")
		}
		b.WriteString(day.String() + ":")
		for k, e := range byDay[i] {
			b.WriteString("\n" + e.String())
			if k < len(byDay[i])-1 {
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

// RenderAll renders every user separated by a blank line.
func RenderAll(users []User) string {
	parts := make([]string, 0, len(users))
	for _, u := range users {
		parts = append(parts, RenderUser(u))
	}
	return strings.Join(parts, "\n\n")
}

// Render renders the named user, or every user when userID is empty.
func (p *Planner) Render(userID string) (string, error) {
	if userID == "" {
		return RenderAll(p.Users()), nil
	}
	u, err := p.User(userID)
	if err != nil {
		return "", err
	}
	return RenderUser(u), nil
}
