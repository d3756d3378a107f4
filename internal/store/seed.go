package store

import (
	"taskgrid-cli/internal/dates"
	"taskgrid-cli/internal/model"
)

// SeedTasks returns the sample rows a brand-new store starts with, and what
// "reset tasks" restores.
func SeedTasks() []model.Task {
	mk := func(sr int, title string, prio int, resource, status, due, remarks string) model.Task {
		d, _ := dates.Parse(due)
		return model.Task{SR: sr, Title: title, Priority: prio, Resource: resource, Status: status, DueDate: d, Remarks: remarks}
	}
	return []model.Task{
		mk(1, "Provisional Staff Data Entry & Rights Allocation", 0, "Vyom", model.StatusCompleted, "07-06-2025", ""),
		mk(2, "School Logo Design", 1, "RGV + Tarangbhai", model.StatusAssigned, "12-06-2025", ""),
		mk(3, "Add, Edit, List Page Redesign", 1, "Jay", model.StatusAssigned, "10-06-2025", ""),
		mk(4, "Payment Integration - School Team Changes", 1, "Sagar - Reet", model.StatusAssigned, "10-06-2025", ""),
		mk(5, "Payment Integration - Common Generic Changes", 1, "Sukhubha", model.StatusAssigned, "10-06-2025", ""),
		mk(6, "Whatsapp Integration", 1, "", model.StatusBlocked, "", "Who will do it & how we will do it?"),
		mk(7, "Metronic Physibility Check", 1, "Mayur + Sagar", model.StatusCompleted, "06-06-2025", "For more complex project, Metronic is preffered & for less complex project, Minimal is prefered"),
		mk(8, "Qurterly Fee Collection Effect", 1, "Mayur + Devloper", model.StatusPending, "", ""),
		mk(9, "Subject Wise Marks Entry While Admission", 1, "Mayur + Devloper", model.StatusPending, "", ""),
		mk(10, "Mobile App Student Content Design on Paper - Fee", 2, "Mayur", model.StatusPending, "", ""),
	}
}
