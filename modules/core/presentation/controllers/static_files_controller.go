package controllers

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/benbjohnson/hashfs"
	"github.com/gorilla/mux"

	"github.com/worktrack/worktrack/pkg/application"
	"github.com/worktrack/worktrack/pkg/configuration"
)

type StaticFilesController struct {
	fsInstances []*hashfs.FS
	production  bool
}

func (s *StaticFilesController) Key() string {
	return "/assets"
}

// lookup returns the first filesystem holding name, hashed or not.
func (s *StaticFilesController) lookup(name string) *hashfs.FS {
	for _, fsys := range s.fsInstances {
		if _, err := fs.Stat(fsys, name); err == nil {
			return fsys
		}
	}
	return nil
}

func (s *StaticFilesController) Register(r *mux.Router) {
	cacheControl := "public, max-age=3600"
	if !s.production {
		cacheControl = "no-cache, no-store, must-revalidate"
	}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/assets/")
		fsys := s.lookup(name)
		if fsys == nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", cacheControl)
		http.StripPrefix("/assets", hashfs.FileServer(fsys)).ServeHTTP(w, r)
	})
	r.PathPrefix("/assets/").Handler(handler).Methods(http.MethodGet, http.MethodHead)
}

func NewStaticFilesController(fsInstances []*hashfs.FS, cfg *configuration.Configuration) application.Controller {
	return &StaticFilesController{
		fsInstances: fsInstances,
		production:  cfg != nil && cfg.GoAppEnvironment == configuration.Production,
	}
}
