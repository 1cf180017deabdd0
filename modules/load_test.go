package modules_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/worktrack/worktrack/modules"
	"github.com/worktrack/worktrack/pkg/itf"
	"github.com/worktrack/worktrack/pkg/session"
)

func TestBuiltInModules_GuardEveryList(t *testing.T) {
	s := itf.Setup(t,
		itf.WithModules(modules.BuiltInModules()...),
		itf.WithUser(session.User{ID: 1, Name: "Mia Manager", Email: "mia@example.com"}),
	)

	names := make([]string, 0, len(modules.BuiltInModules()))
	for _, m := range modules.BuiltInModules() {
		names = append(names, m.Name())
	}
	assert.Equal(t, []string{"core", "projects", "timesheets", "leave"}, names)

	for _, path := range []string{"/projects", "/tasks", "/timesheets", "/leave"} {
		res := s.GET(path).Do()
		assert.Equal(t, http.StatusForbidden, res.Status(), path)
	}
	assert.Empty(t, s.Backend.Calls())
}
