package components

import (
	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/templui/goalboard/internal/model"
)

const badgeBase = "inline-flex items-center rounded-full px-2 py-0.5 text-xs font-medium bg-gray-100 text-gray-700"

var statusClasses = map[model.Status]string{
	model.GoalStatusTodo:       "bg-slate-100 text-slate-700",
	model.GoalStatusInProgress: "bg-amber-100 text-amber-800",
	model.GoalStatusDone:       "bg-green-100 text-green-800",
}

var statusLabels = map[model.Status]string{
	model.GoalStatusTodo:       "To Do",
	model.GoalStatusInProgress: "In Progress",
	model.GoalStatusDone:       "Done",
}

func StatusLabel(s model.Status) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// BadgeClass merges the base badge classes with the status colour and any
// extra classes, later classes winning.
func BadgeClass(s model.Status, extra ...string) string {
	return twmerge.Merge(append([]string{badgeBase, statusClasses[s]}, extra...)...)
}
