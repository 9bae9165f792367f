package tui

import (
	"fmt"
	"strings"

	"github.com/mmynk/tasklist/internal/models"
)

const skeletonRows = 3

// Partition splits tasks into pending and completed, keeping their order.
func Partition(tasks []models.Task) (pending, completed []models.Task) {
	for _, t := range tasks {
		if t.Completed {
			completed = append(completed, t)
		} else {
			pending = append(pending, t)
		}
	}
	return pending, completed
}

// TaskList renders items grouped into pending and completed.
type TaskList struct {
	Items   []TaskItem
	Loading bool
	// Cursor indexes Order(); negative means no selection.
	Cursor int
}

// Order returns indexes into Items in display order: pending first, then
// completed.
func (l TaskList) Order() []int {
	order := make([]int, 0, len(l.Items))
	for i, it := range l.Items {
		if !it.Task.Completed {
			order = append(order, i)
		}
	}
	for i, it := range l.Items {
		if it.Task.Completed {
			order = append(order, i)
		}
	}
	return order
}

func (l TaskList) View() string {
	var b strings.Builder

	if l.Loading {
		for i := 0; i < skeletonRows; i++ {
			b.WriteString("  " + skeletonText + "\n")
		}
		return b.String()
	}

	if len(l.Items) == 0 {
		b.WriteString("  No tasks yet\n")
		b.WriteString("  " + mutedStyle.Render("Get started by creating your first task.") + "\n")
		return b.String()
	}

	order := l.Order()
	selected := -1
	if l.Cursor >= 0 && l.Cursor < len(order) {
		selected = order[l.Cursor]
	}

	pendingCount := 0
	for _, i := range order {
		if !l.Items[i].Task.Completed {
			pendingCount++
		}
	}
	completedCount := len(order) - pendingCount

	if pendingCount > 0 {
		b.WriteString(headerStyle.Render(fmt.Sprintf("Pending Tasks (%d)", pendingCount)) + "\n")
		for _, i := range order[:pendingCount] {
			b.WriteString(l.Items[i].View(i == selected) + "\n")
		}
	}
	if completedCount > 0 {
		if pendingCount > 0 {
			b.WriteString("\n")
		}
		b.WriteString(headerStyle.Render(fmt.Sprintf("Completed Tasks (%d)", completedCount)) + "\n")
		for _, i := range order[pendingCount:] {
			b.WriteString(l.Items[i].View(i == selected) + "\n")
		}
	}
	return b.String()
}
