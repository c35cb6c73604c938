package rules

import (
	"sort"
	"strings"
	"time"

	"github.com/foyerapp/foyer/internal/constants"
	"github.com/foyerapp/foyer/internal/models"
	"github.com/foyerapp/foyer/internal/utils"
)

// shortActionKeywords mark tasks that take a few minutes to knock out:
// send a form, make a call, confirm a slot.
var shortActionKeywords = []string{
	"envoyer",
	"appeler",
	"confirmer",
	"relancer",
	"signer",
	"répondre",
	"imprimer",
	"payer",
}

// longActionKeywords mark multi-step chores that have no place in a
// low-effort Saturday digest. The same list doubles as a hard veto.
var longActionKeywords = []string{
	"impôts",
	"impots",
	"dossier",
	"déclaration",
	"declaration",
	"rendez-vous",
	"caf",
	"inscription",
	"démarche",
	"demarche",
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func matchesAny(task models.Task, keywords []string) bool {
	for _, kw := range keywords {
		if containsFold(task.Title, kw) || containsFold(task.Description, kw) {
			return true
		}
	}
	return false
}

// WeekendSimpleTasks selects up to three low-effort tasks for the
// Saturday digest.
//
// A task is eligible when its deadline is neither today, in the past,
// nor within the next 48 hours, and either has no deadline at all or
// one strictly beyond now+3 days. Among eligible tasks, at least one of
// the following must hold: the task is PDF-ready and not done, its text
// matches a short-action keyword, or its text is free of long-action
// keywords. Urgent tasks and tasks matching a long-action keyword are
// vetoed outright.
//
// Ordering: PDF-ready-and-undone tasks first, then deadline-less tasks
// before dated ones, ties broken by oldest CreatedAt. The first three
// survivors are returned.
func WeekendSimpleTasks(tasks []models.Task, now time.Time, pdfReadyIDs map[string]bool) []models.Task {
	nearHorizon := utils.AddDays(now, constants.WeekendMinLeadDays)
	rushHorizon := utils.AddDays(now, constants.WeekendNoRushDays)

	var eligible []models.Task
	for _, t := range tasks {
		if t.IsDone() {
			continue
		}

		if t.Deadline != nil {
			deadlineDay := utils.StartOfDay(t.Deadline.In(now.Location()))
			if !deadlineDay.After(nearHorizon) {
				continue // today, past, or within 48h
			}
			if !deadlineDay.After(rushHorizon) {
				continue
			}
		}

		// Hard vetoes
		if IsUrgentTask(t, now) {
			continue
		}
		if matchesAny(t, longActionKeywords) {
			continue
		}

		pdfReady := pdfReadyIDs[t.ID] && !t.IsDone()
		shortAction := matchesAny(t, shortActionKeywords)
		notLongAction := !matchesAny(t, longActionKeywords)

		if !pdfReady && !shortAction && !notLongAction {
			continue
		}

		eligible = append(eligible, t)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]

		aPdf := pdfReadyIDs[a.ID] && !a.IsDone()
		bPdf := pdfReadyIDs[b.ID] && !b.IsDone()
		if aPdf != bPdf {
			return aPdf
		}

		aDated := a.Deadline != nil
		bDated := b.Deadline != nil
		if aDated != bDated {
			return !aDated // no deadline sorts first
		}

		return a.CreatedAt.Before(b.CreatedAt)
	})

	if len(eligible) > constants.MaxWeekendTasks {
		eligible = eligible[:constants.MaxWeekendTasks]
	}
	return eligible
}

// PdfReadyIDs builds the id set consumed by WeekendSimpleTasks from the
// persisted per-task flag.
func PdfReadyIDs(tasks []models.Task) map[string]bool {
	ids := make(map[string]bool)
	for _, t := range tasks {
		if t.PdfReady {
			ids[t.ID] = true
		}
	}
	return ids
}
