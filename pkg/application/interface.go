package application

import (
	"embed"
	"fmt"
	"reflect"

	"github.com/benbjohnson/hashfs"
	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"

	"github.com/worktrack/worktrack/pkg/apiclient"
	"github.com/worktrack/worktrack/pkg/eventbus"
	"github.com/worktrack/worktrack/pkg/session"
	"github.com/worktrack/worktrack/pkg/spotlight"
	"github.com/worktrack/worktrack/pkg/types"
)

type Controller interface {
	Register(r *mux.Router)
	Key() string
}

type Module interface {
	Register(app Application) error
	Name() string
}

// Application is the registry modules populate at startup.
type Application interface {
	API() *apiclient.Client
	Sessions() session.Store
	EventPublisher() eventbus.EventBus
	Controllers() []Controller
	Middleware() []mux.MiddlewareFunc
	Assets() []*embed.FS
	HashFsAssets() []*hashfs.FS
	QuickLinks() *spotlight.QuickLinks
	NavItems(localizer *i18n.Localizer) []types.NavigationItem
	PermissionSchema() *PermissionSchema
	Bundle() *i18n.Bundle
	GetSupportedLanguages() []string

	RegisterNavItems(items ...types.NavigationItem)
	RegisterControllers(controllers ...Controller)
	RegisterHashFsAssets(fs ...*hashfs.FS)
	RegisterAssets(fs ...*embed.FS)
	RegisterLocaleFiles(fs ...*embed.FS)
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	RegisterPermissionSchema(data []byte) error
	RegisterServices(services ...interface{})
	Service(service interface{}) interface{}
	Services() map[reflect.Type]interface{}
}

// LoadModules registers modules in order and stops at the first failure.
func LoadModules(app Application, modules ...Module) error {
	for _, m := range modules {
		if err := m.Register(app); err != nil {
			return fmt.Errorf("module %s: %w", m.Name(), err)
		}
	}
	return nil
}
