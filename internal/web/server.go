// Package web serves a read-only browser view of the task grid: the current
// list rendered through the same filter pipeline the CLI and TUI use, plus a
// JSON endpoint. The page is a per-request snapshot; editing stays in the
// CLI and TUI.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"taskgrid-cli/internal/filter"
	"taskgrid-cli/internal/model"
	"taskgrid-cli/internal/sorting"
	"taskgrid-cli/internal/store"
)

//go:embed templates/*.html
var templatesFS embed.FS

var gridTemplate = template.Must(template.New("grid.html").Funcs(template.FuncMap{
	"markdown": markdownCell,
}).ParseFS(templatesFS, "templates/grid.html"))

type Server struct {
	Store store.Store
	Addr  string
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleGrid)
	mux.HandleFunc("GET /tasks.json", s.handleTasksJSON)
	return mux
}

// ListenAndServe blocks until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

type gridRow struct {
	SR    int
	Cells []gridCell
}

type gridCell struct {
	Value    string
	Markdown bool
	Align    model.Alignment
}

type gridPage struct {
	ListName string
	Search   string
	Quick    string
	Columns  []model.Column
	Rows     []gridRow
	Total    int
}

// view loads the state fresh and applies per-request query overrides on top
// of the persisted filter settings.
func (s *Server) view(r *http.Request) (*store.DB, []model.Task, error) {
	db, err := s.Store.Load()
	if err != nil {
		return nil, nil, err
	}

	q := r.URL.Query()
	if list := q.Get("list"); list != "" {
		l, ok := db.FindList(list)
		if !ok {
			l, ok = db.FindListByName(list)
		}
		if !ok {
			return nil, nil, fmt.Errorf("unknown list %q", list)
		}
		db.CurrentListID = l.ID
	}
	if quick := q.Get("quick"); quick != "" {
		if _, ok := filter.Find(db.AllColumns(), quick); !ok {
			return nil, nil, fmt.Errorf("unknown quick filter %q", quick)
		}
		db.ActiveQuickFilter = quick
	}

	tasks := filter.VisibleTasks(db, time.Now())
	if sortID := q.Get("sort"); sortID != "" {
		col, ok := db.FindColumn(sortID)
		if !ok || !col.Sortable {
			return nil, nil, fmt.Errorf("cannot sort by %q", sortID)
		}
		dir := sorting.Asc
		if q.Get("dir") == "desc" {
			dir = sorting.Desc
		}
		sorting.Tasks(tasks, col, dir)
	}
	return db, tasks, nil
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	db, tasks, err := s.view(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cols := db.VisibleColumns()
	page := gridPage{
		Search:  db.FilterSettings.SearchText,
		Quick:   db.ActiveQuickFilter,
		Columns: cols,
		Total:   len(tasks),
	}
	if l := db.CurrentList(); l != nil {
		page.ListName = l.Name
	}
	for _, t := range tasks {
		row := gridRow{SR: t.SR}
		for _, c := range cols {
			row.Cells = append(row.Cells, gridCell{
				Value:    t.ValueString(c.ID),
				Markdown: c.Type == model.TypeTextarea,
				Align:    c.Alignment,
			})
		}
		page.Rows = append(page.Rows, row)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := gridTemplate.Execute(w, page); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleTasksJSON(w http.ResponseWriter, r *http.Request) {
	db, tasks, err := s.view(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	listName := ""
	if l := db.CurrentList(); l != nil {
		listName = l.Name
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"list":    listName,
		"columns": db.VisibleColumns(),
		"tasks":   tasks,
	})
}
